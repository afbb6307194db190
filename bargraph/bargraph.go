// Package bargraph drives an HT16K33-based 24-segment bi-color LED bargraph
// (the Adafruit bi-color backpack) over an injected I2C transport.
//
// The controller keeps a 6-byte buffer mirroring the display registers.
// SetBar only stages changes; call Update to push the buffer to the device.
package bargraph

import (
	"fmt"
	"time"
)

// HT16K33 command bytes.
const (
	CMD_DATA          byte = 0x00
	CMD_SYSTEM_OFF    byte = 0x20
	CMD_SYSTEM_ON     byte = 0x21
	CMD_INT_FLAG_DFLT byte = 0x60
	CMD_DISPLAY_OFF   byte = 0x80
	CMD_DISPLAY_ON    byte = 0x81
	CMD_ROW_OUTPUT    byte = 0xA0
	CMD_BRIGHTNESS    byte = 0xE0
	CMD_NO_DIMMING    byte = 0xEF
)

// Blink rates for SetBlinkRate.
const (
	BLINK_OFF    uint8 = 0
	BLINK_2HZ    uint8 = 1
	BLINK_1HZ    uint8 = 2
	BLINK_HALFHZ uint8 = 3
)

const DFLT_ADDRESS uint16 = 0x70

const NumBars = 24

// Settle time the controller needs between setup commands.
const initSettle = 200 * time.Millisecond

// Each bar maps to one bit in a red byte and the same bit in the green byte
// right after it. Bars 1-4 and 13-16 share bytes 0/1, 5-8 and 17-20 share
// 2/3, 9-12 and 21-24 share 4/5; that is the controller's multiplexing
// order, not a typo.
type barSlot struct {
	index int
	mask  byte
}

var bars = [NumBars]barSlot{
	{0, 0x01}, {0, 0x02}, {0, 0x04}, {0, 0x08},
	{2, 0x01}, {2, 0x02}, {2, 0x04}, {2, 0x08},
	{4, 0x01}, {4, 0x02}, {4, 0x04}, {4, 0x08},
	{0, 0x10}, {0, 0x20}, {0, 0x40}, {0, 0x80},
	{2, 0x10}, {2, 0x20}, {2, 0x40}, {2, 0x80},
	{4, 0x10}, {4, 0x20}, {4, 0x40}, {4, 0x80},
}

// Dev drives one 24-segment bi-color bargraph. It is not safe for concurrent
// use: it assumes a single writer and exclusive ownership of its bus address.
type Dev struct {
	t       Transport
	address uint16
	blink   uint8
	buffer  [6]byte
}

// New brings up a bargraph at the default address 0x70.
func New(t Transport) (*Dev, error) {
	return NewAt(t, DFLT_ADDRESS)
}

// NewAt brings up a bargraph at a custom address: system on, row output mode,
// default interrupt flag, display on, no dimming, each command followed by a
// 200ms settle, then clears the display. Any write failure aborts and is
// returned as-is.
func NewAt(t Transport, address uint16) (*Dev, error) {
	d := &Dev{
		t:       t,
		address: address,
	}
	setup := [...]byte{CMD_SYSTEM_ON, CMD_ROW_OUTPUT, CMD_INT_FLAG_DFLT, CMD_DISPLAY_ON, CMD_NO_DIMMING}
	for _, cmd := range setup {
		if err := t.TransactWrite(address, cmd); err != nil {
			return nil, err
		}
		t.Delay(initSettle)
	}
	if err := d.Clear(); err != nil {
		return nil, err
	}
	return d, nil
}

// Clear turns every bar off and pushes the empty frame to the display.
func (d *Dev) Clear() error {
	d.buffer = [6]byte{}
	return d.Update()
}

// Update ships the whole buffer in one transaction: the data command byte
// followed by the 6 register bytes. There is no partial update.
func (d *Dev) Update() error {
	frame := make([]byte, 0, 7)
	frame = append(frame, CMD_DATA)
	frame = append(frame, d.buffer[:]...)
	return d.t.TransactWrite(d.address, frame...)
}

// SetBar stages a color for one bar, 1-24. Out-of-range bars are ignored.
// The display is not touched until Update is called.
func (d *Dev) SetBar(bar int, c Color) {
	if bar < 1 || bar > NumBars {
		return
	}
	b := bars[bar-1]
	switch c {
	case Red:
		d.on(b.index, b.mask)
		d.off(b.index+1, b.mask)
	case Green:
		d.off(b.index, b.mask)
		d.on(b.index+1, b.mask)
	case Yellow:
		d.on(b.index, b.mask)
		d.on(b.index+1, b.mask)
	default:
		d.off(b.index, b.mask)
		d.off(b.index+1, b.mask)
	}
}

// SetPercentage fills the given fraction of the display with c, starting at
// bar 1, and turns the rest off. The fraction is clamped to [0,1] and the lit
// bar count truncates (0.521 lights 12 bars, not 13). Exactly one transaction
// is issued regardless of how many bars changed.
func (d *Dev) SetPercentage(fraction float64, c Color) error {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	lit := int(NumBars * fraction)
	for i := 1; i <= lit; i++ {
		d.SetBar(i, c)
	}
	for i := lit + 1; i <= NumBars; i++ {
		d.SetBar(i, Off)
	}
	return d.Update()
}

// DisplayOn switches the LED output on or off without losing the buffer.
// Turning on re-applies the current blink rate.
func (d *Dev) DisplayOn(on bool) error {
	cmd := CMD_DISPLAY_OFF
	if on {
		cmd = CMD_DISPLAY_ON | d.blink<<1
	}
	return d.t.TransactWrite(d.address, cmd)
}

// SetBlinkRate sets the whole-display blink rate, BLINK_OFF to BLINK_HALFHZ,
// and turns the display on.
func (d *Dev) SetBlinkRate(rate uint8) error {
	if rate > BLINK_HALFHZ {
		return fmt.Errorf("bargraph: bad blink rate %d", rate)
	}
	d.blink = rate
	return d.DisplayOn(true)
}

// SetBrightness sets the dimming level, 0 (dim) to 15 (no dimming).
func (d *Dev) SetBrightness(level uint8) error {
	if level > 15 {
		return fmt.Errorf("bargraph: bad brightness level %d", level)
	}
	return d.t.TransactWrite(d.address, CMD_BRIGHTNESS|level)
}

func (d *Dev) on(index int, mask byte) {
	d.buffer[index] |= mask
}

func (d *Dev) off(index int, mask byte) {
	d.buffer[index] &^= mask
}

// FrameColors decodes a display register frame (the 6 bytes following the
// data command) back into per-bar colors. Frames shorter than 6 bytes read
// as all off.
func FrameColors(frame []byte) [NumBars]Color {
	var out [NumBars]Color
	if len(frame) < 6 {
		return out
	}
	for i, b := range bars {
		red := frame[b.index]&b.mask != 0
		green := frame[b.index+1]&b.mask != 0
		switch {
		case red && green:
			out[i] = Yellow
		case red:
			out[i] = Red
		case green:
			out[i] = Green
		}
	}
	return out
}
