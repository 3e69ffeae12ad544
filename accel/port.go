// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Waveform timing, in system ticks. Half a clock period must leave the
// protocol engine enough cycles to step through its longest inter byte
// sequence (pop entry, prepare, load) before the next bit is clocked.
const (
	halfPeriod = 8
	csLead     = 8 // chip select asserted before the first clock edge
	csTail     = 8 // chip select held after the last clock edge
	csIdle     = 4 // chip select de-asserted between transactions
)

// Port exposes a simulated Core as a periph.io SPI port. Any host driver
// written against spi.PortCloser can talk to the simulated chip through
// it; every Tx generates the full bit level waveform and ticks the model.
type Port struct {
	c      *Core
	closed bool
	csHeld bool
}

// NewPort returns an SPI port wired to the simulated chip.
func NewPort(c *Core) *Port {
	return &Port{c: c}
}

func (p *Port) String() string { return "accelsim" }

// Close implements spi.PortCloser.
func (p *Port) Close() error {
	if p.closed {
		return fmt.Errorf("accel: port already closed")
	}
	p.closed = true
	return nil
}

// LimitSpeed implements spi.PortCloser. The simulated bus runs in model
// time, so the requested speed is accepted and ignored.
func (p *Port) LimitSpeed(f physic.Frequency) error { return nil }

// Connect implements spi.PortCloser. The device operates in mode 0 with 8
// bit words, MSB first.
func (p *Port) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if p.closed {
		return nil, fmt.Errorf("accel: port is closed")
	}
	if bits != 8 {
		return nil, fmt.Errorf("accel: only 8 bit words are supported, got %d", bits)
	}
	if mode&spi.LSBFirst != 0 {
		return nil, fmt.Errorf("accel: LSB first is not supported")
	}
	if mode&spi.Mode3 != spi.Mode0 {
		return nil, fmt.Errorf("accel: only mode 0 is supported, got %s", mode)
	}
	return &portConn{p: p}, nil
}

// portConn is the spi.Conn returned by Port.Connect.
type portConn struct {
	p *Port
}

func (c *portConn) String() string { return c.p.String() }

// Duplex implements conn.Conn; the bus is full duplex.
func (c *portConn) Duplex() conn.Duplex { return conn.Full }

// Tx implements conn.Conn. One Tx is one transaction: chip select is
// asserted for the whole transfer and released at the end, which is what
// resets the protocol engine.
func (c *portConn) Tx(w, r []byte) error {
	if err := c.check(w, r); err != nil {
		return err
	}
	c.p.assertCS()
	c.shift(w, r)
	c.p.releaseCS()
	return nil
}

// TxPackets implements spi.Conn. A packet with KeepCS keeps the chip
// selected into the next packet, extending the transaction.
func (c *portConn) TxPackets(pkts []spi.Packet) error {
	for i := range pkts {
		pkt := &pkts[i]
		if pkt.BitsPerWord != 0 && pkt.BitsPerWord != 8 {
			return fmt.Errorf("accel: only 8 bit words are supported, got %d", pkt.BitsPerWord)
		}
		if err := c.check(pkt.W, pkt.R); err != nil {
			return err
		}
		if !c.p.csHeld {
			c.p.assertCS()
		}
		c.shift(pkt.W, pkt.R)
		if !pkt.KeepCS {
			c.p.releaseCS()
		}
	}
	return nil
}

func (c *portConn) check(w, r []byte) error {
	if c.p.closed {
		return fmt.Errorf("accel: port is closed")
	}
	if len(w) != 0 && len(r) != 0 && len(w) != len(r) {
		return fmt.Errorf("accel: write and read buffer sizes differ: %d != %d", len(w), len(r))
	}
	return nil
}

// shift clocks max(len(w), len(r)) bytes over the bus, MSB first. The
// device samples MOSI around the falling clock edge; the host samples
// MISO at the end of the high half period, after the protocol engine had
// the whole low half to stage the next byte.
func (c *portConn) shift(w, r []byte) {
	n := len(w)
	if len(r) > n {
		n = len(r)
	}
	for i := 0; i < n; i++ {
		var out byte
		if i < len(w) {
			out = w[i]
		}
		var in byte
		for bit := 7; bit >= 0; bit-- {
			mosi := gpio.Level(out&(1<<uint(bit)) != 0)
			for t := 0; t < halfPeriod; t++ {
				c.p.c.Tick(gpio.High, gpio.Low, mosi)
			}
			if miso, driven := c.p.c.MISO(); driven && miso == gpio.High {
				in |= 1 << uint(bit)
			}
			for t := 0; t < halfPeriod; t++ {
				c.p.c.Tick(gpio.Low, gpio.Low, mosi)
			}
		}
		if i < len(r) {
			r[i] = in
		}
	}
}

func (p *Port) assertCS() {
	for t := 0; t < csIdle; t++ {
		p.c.Tick(gpio.Low, gpio.High, gpio.Low)
	}
	for t := 0; t < csLead; t++ {
		p.c.Tick(gpio.Low, gpio.Low, gpio.Low)
	}
	p.csHeld = true
}

func (p *Port) releaseCS() {
	for t := 0; t < csTail; t++ {
		p.c.Tick(gpio.Low, gpio.Low, gpio.Low)
	}
	for t := 0; t < csIdle; t++ {
		p.c.Tick(gpio.Low, gpio.High, gpio.Low)
	}
	p.csHeld = false
}

var _ spi.PortCloser = &Port{}
var _ spi.Conn = &portConn{}
