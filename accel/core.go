// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Opts holds the configuration of the simulated chip.
type Opts struct {
	// Freq is the system clock the model is ticked at.
	Freq physic.Frequency
	// BaseRate is the ODR base frequency; the FILTER_CTL selector divides
	// it down to the configured output data rate.
	BaseRate physic.Frequency
	// Int1 and Int2, when set, mirror the interrupt lines onto host pins
	// (gpiotest.Pin in tests).
	Int1 gpio.PinOut
	Int2 gpio.PinOut
	// Probe, when set, receives the bus line levels once per tick.
	Probe Probe
}

// DefaultOpts is the recommended configuration.
var DefaultOpts = Opts{
	Freq:     50 * physic.MegaHertz,
	BaseRate: 400 * physic.Hertz,
}

// Probe receives one snapshot per system tick. Implemented by
// trace.Recorder.
type Probe interface {
	Record(s ProbeSample)
}

// ProbeSample is the bus state of one tick as seen at the pads.
type ProbeSample struct {
	Tick uint64
	SCK  bool
	CSN  bool
	MOSI bool
	MISO bool // level the device would drive; tri-stated while CSN is high
	INT1 bool
	INT2 bool
}

// Core is the simulated accelerometer. All state machines advance one
// logical step per Tick; within a tick every sequential update is computed
// from the previous tick's values, so evaluation order cannot race.
//
// Core is not safe for concurrent use; it models a single clock domain.
type Core struct {
	opts Opts

	reg    registerFile
	fifo   sampleFIFO
	proto  protoEngine
	loader sampleLoader
	odr    *odrController

	// Bit sampler delay lines for the three host driven lines.
	sck  edgeDetector
	csn  edgeDetector
	mosi edgeDetector

	// RX/TX shift stage.
	bitcnt   uint8 // 3 bit counter, wraps
	rxd      byte
	byteDone bool // registered: a byte completed on the previous tick
	txbuf    byte

	csnLevel bool // last raw chip select level, for the MISO tri-state

	// Host control surface, the CSR block a SoC would drive.
	weLevel  bool
	armed    bool
	ready    bool // sample ready pulse
	resetReq bool // system reset request pulse

	tick       uint64
	int1, int2 bool
}

// New returns a powered up Core. Pass nil for the default options.
func New(opts *Opts) (*Core, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Freq <= 0 {
		return nil, fmt.Errorf("accel: invalid system frequency %s", o.Freq)
	}
	if o.BaseRate <= 0 || o.BaseRate*2 > o.Freq {
		return nil, fmt.Errorf("accel: base rate %s does not divide system frequency %s", o.BaseRate, o.Freq)
	}
	c := &Core{opts: o, odr: newODRController(o.Freq, o.BaseRate)}
	c.powerOn()
	return c, nil
}

func (c *Core) String() string {
	return fmt.Sprintf("accel{%s}", c.opts.Freq)
}

// powerOn is the full reset entered at power up and on a soft reset.
func (c *Core) powerOn() {
	c.reg.reset()
	c.fifo.reset()
	c.proto.reset()
	c.loader.reset()
	c.odr.reset()
	c.sck.reset()
	c.csn.reset()
	c.mosi.reset()
	c.bitcnt = 0
	c.rxd = 0
	c.byteDone = false
	c.txbuf = 0
	c.ready = false
}

// Tick advances the whole model by one system clock cycle. sck, csn and
// mosi are the raw host driven line levels during that cycle.
func (c *Core) Tick(sck, csn, mosi gpio.Level) {
	// Phase 1: wires. Everything here reflects state registered on
	// previous ticks, never the raw inputs of this one.
	sckF := c.sck.Falling()
	csnR := c.csn.Rising()
	csnF := c.csn.Falling()
	mosiS := c.mosi.Delayed()
	byteDone := c.byteDone

	// Phase 2: sequential updates.

	// RX shift register, MSB first. A byte is complete on the falling
	// edge of its 8th clock pulse; byteDone reports it one tick later.
	c.byteDone = false
	if csnF {
		c.bitcnt = 0
		c.rxd = 0
		c.txbuf = 0
	} else if sckF {
		was := c.bitcnt
		c.rxd <<= 1
		if mosiS {
			c.rxd |= 1
		}
		c.bitcnt = (c.bitcnt + 1) & 7
		c.byteDone = !bool(csn) && was == 7
		// TX shift happens on the same edge; a load from the protocol
		// engine below takes precedence.
		c.txbuf <<= 1
	}

	// Protocol engine. A TX load overrides the shift above.
	if txLoad, load := c.proto.step(protoWires{
		csn:       bool(csn),
		byteDone:  byteDone,
		rxd:       c.rxd,
		csnRising: csnR,
	}, &c.reg, &c.fifo); load {
		c.txbuf = txLoad
	}

	// Sample load engine.
	mode := c.reg.read(RegFIFOControl) & 0x03
	if s, loaded := c.loader.step(c.weLevel, mode, &c.fifo); loaded {
		c.mirrorAxes(s)
	}

	// Status, FIFO entry count mirrors and watermark hysteresis.
	c.updateStatus()

	// Soft reset: the stored key arms a one tick pulse that resets the
	// register file and FIFO and propagates a system reset request.
	if c.reg.softResetArmed() {
		c.powerOn()
		c.resetReq = true
	} else {
		c.resetReq = false
	}

	// ODR controller, gated by measurement mode.
	ena := c.reg.read(RegPowerCtl)&0x03 == PowerCtlMeasure
	pulse := c.odr.tick(ena, c.reg.read(RegFilterCtl)&0x07)
	c.ready = pulse && c.armed

	// Interrupt lines.
	c.driveInterrupts()

	if c.opts.Probe != nil {
		miso, _ := c.MISO()
		c.opts.Probe.Record(ProbeSample{
			Tick: c.tick,
			SCK:  bool(sck), CSN: bool(csn), MOSI: bool(mosi),
			MISO: bool(miso), INT1: c.int1, INT2: c.int2,
		})
	}

	// Phase 3: shift the raw inputs into the delay lines for the next
	// tick. Last on purpose; everything above must see the old samples.
	c.sck.sample(bool(sck))
	c.csn.sample(bool(csn))
	c.mosi.sample(bool(mosi))
	c.csnLevel = bool(csn)
	c.tick++
}

// mirrorAxes copies the most recently buffered sample into the axis data
// registers. The 8 bit XDATA/YDATA/ZDATA slots hold the high byte.
func (c *Core) mirrorAxes(s Sample) {
	c.reg.setInternal(RegXDataL, byte(s.X))
	c.reg.setInternal(RegXDataH, byte(uint16(s.X)>>8))
	c.reg.setInternal(RegYDataL, byte(s.Y))
	c.reg.setInternal(RegYDataH, byte(uint16(s.Y)>>8))
	c.reg.setInternal(RegZDataL, byte(s.Z))
	c.reg.setInternal(RegZDataH, byte(uint16(s.Z)>>8))
	c.reg.setInternal(RegXData, byte(uint16(s.X)>>8))
	c.reg.setInternal(RegYData, byte(uint16(s.Y)>>8))
	c.reg.setInternal(RegZData, byte(uint16(s.Z)>>8))
}

// watermarkThreshold is the 9 bit FIFO_SAMPLES value, in axis values: the
// AH bit of FIFO_CONTROL extends the 8 bit register.
func (c *Core) watermarkThreshold() int {
	t := int(c.reg.read(RegFIFOSamples))
	if c.reg.read(RegFIFOControl)&0x08 != 0 {
		t |= 0x100
	}
	return t
}

func (c *Core) updateStatus() {
	// FIFO_ENTRIES counts buffered axis values, three per entry.
	axisLevel := 3 * c.fifo.level
	c.reg.setInternal(RegFIFOEntriesL, byte(axisLevel))
	c.reg.setInternal(RegFIFOEntriesH, byte(axisLevel>>8))

	status := c.reg.read(RegStatus)
	if c.fifo.level >= FIFODepth {
		status |= StatusFIFOOverrun
	} else {
		status &^= StatusFIFOOverrun
	}
	threshold := c.watermarkThreshold()
	if axisLevel >= threshold {
		status |= StatusFIFOWatermark
	}
	// The watermark clears only once the host drained a proportional
	// number of entries; the clear wins over the set in the same tick.
	if 3*c.proto.drained >= threshold {
		c.proto.drained = 0
		status &^= StatusFIFOWatermark
	}
	if c.fifo.level >= 1 {
		status |= StatusFIFOReady | StatusDataReady
	} else {
		status &^= StatusFIFOReady | StatusDataReady
	}
	c.reg.setInternal(RegStatus, status)
}

func (c *Core) driveInterrupts() {
	status := c.reg.read(RegStatus)
	c.int1 = intLevel(c.reg.read(RegIntMap1), status)
	c.int2 = intLevel(c.reg.read(RegIntMap2), status)
	if c.opts.Int1 != nil {
		_ = c.opts.Int1.Out(gpio.Level(c.int1))
	}
	if c.opts.Int2 != nil {
		_ = c.opts.Int2.Out(gpio.Level(c.int2))
	}
}

// intLevel combines one INTMAP register with the status register: active
// high is map AND status, active low (bit 7) the inverted combination.
func intLevel(intmap, status byte) bool {
	hit := intmap&IntFIFOWatermarkBit != 0 && status&StatusFIFOWatermark != 0
	if intmap&IntLowBit != 0 {
		return !hit
	}
	return hit
}

// MISO returns the level of the device data out line. The second return
// is false while chip select is high and the line is tri-stated.
func (c *Core) MISO() (gpio.Level, bool) {
	return gpio.Level(c.txbuf&0x80 != 0), !c.csnLevel
}

// INT1 returns the first interrupt line level.
func (c *Core) INT1() gpio.Level { return gpio.Level(c.int1) }

// INT2 returns the second interrupt line level.
func (c *Core) INT2() gpio.Level { return gpio.Level(c.int2) }

// SetSample stages one 3 axis sample on the host interface. It is loaded
// into the FIFO on the next rising edge of the write enable line.
func (c *Core) SetSample(x, y, z int16) {
	c.loader.pending = Sample{X: x, Y: y, Z: z}
}

// SetWriteEnable drives the host write enable line. The sample load
// engine triggers on its rising edge.
func (c *Core) SetWriteEnable(level bool) { c.weLevel = level }

// SetArmed gates the sample ready event: when armed, each ODR pulse is
// reported through SampleReady for one tick.
func (c *Core) SetArmed(armed bool) { c.armed = armed }

// SetTemperature updates the temperature mirror registers.
func (c *Core) SetTemperature(raw int16) {
	c.reg.setInternal(RegTempL, byte(raw))
	c.reg.setInternal(RegTempH, byte(uint16(raw)>>8))
}

// Done reports that the last staged sample was consumed by the FIFO. It
// clears on the next write enable edge.
func (c *Core) Done() bool { return c.loader.done }

// Full reports that a non streaming push would be dropped.
func (c *Core) Full() bool {
	return c.fifo.level >= FIFODepth &&
		c.reg.read(RegFIFOControl)&0x03 != FIFOModeStream
}

// SampleReady reports the one tick ODR event pulse, gated by SetArmed.
func (c *Core) SampleReady() bool { return c.ready }

// ResetRequested reports the one tick system reset pulse raised by a soft
// reset command.
func (c *Core) ResetRequested() bool { return c.resetReq }

// FIFOLevel returns the number of buffered but unread FIFO entries.
func (c *Core) FIFOLevel() int { return c.fifo.level }
