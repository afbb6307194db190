// Package sim renders bargraph frames at the console in place of hardware.
package sim

import (
	"image"
	"time"

	"github.com/rs/zerolog/log"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-bargraph/bargraph"
)

// Display pretends to be the bargraph's bus. Data frames are drawn as 24
// ANSI color blocks on stdout; setup commands are only logged.
type Display struct {
	drawer *screen.Dev
	colors [bargraph.NumBars]bargraph.Color
}

func New() *Display {
	return &Display{drawer: screen.New(bargraph.NumBars)}
}

// TransactWrite implements bargraph.Transport.
func (s *Display) TransactWrite(addr uint16, data ...byte) error {
	if len(data) < 7 || data[0] != bargraph.CMD_DATA {
		log.Debug().Uint16("addr", addr).Hex("cmd", data).Msg("bargraph command")
		return nil
	}
	s.colors = bargraph.FrameColors(data[1:])
	return s.drawer.Draw(s.drawer.Bounds(), s.Image(), image.Point{})
}

// Delay implements bargraph.Transport. It waits for real so the demo paces
// like hardware.
func (s *Display) Delay(d time.Duration) {
	time.Sleep(d)
}

// Colors returns the bar state decoded from the last data frame.
func (s *Display) Colors() [bargraph.NumBars]bargraph.Color {
	return s.colors
}

// Image renders the current bar state as a 24x1 strip.
func (s *Display) Image() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, bargraph.NumBars, 1))
	for x := 0; x < im.Rect.Max.X; x++ {
		im.SetNRGBA(x, 0, s.colors[x].ToRGB())
	}
	return im
}

var _ bargraph.Transport = &Display{}
