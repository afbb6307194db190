package bargraph

import (
	"time"

	"periph.io/x/conn/v3/i2c"
)

// Transport is the bus capability the controller needs: one atomic write
// transaction with start/stop framing, and a blocking wait. Any I2C backend
// can satisfy it - an FTDI bridge or /dev/i2c bus registered with periph, or
// a console simulator.
type Transport interface {
	TransactWrite(addr uint16, data ...byte) error
	Delay(d time.Duration)
}

// I2CTransport adapts a periph i2c.Bus to the Transport capability.
type I2CTransport struct {
	bus i2c.Bus
}

func NewI2CTransport(bus i2c.Bus) *I2CTransport {
	return &I2CTransport{bus: bus}
}

// TransactWrite issues one write transaction to addr.
func (t *I2CTransport) TransactWrite(addr uint16, data ...byte) error {
	return t.bus.Tx(addr, data, nil)
}

// Delay blocks the calling goroutine.
func (t *I2CTransport) Delay(d time.Duration) {
	time.Sleep(d)
}

var _ Transport = &I2CTransport{}
