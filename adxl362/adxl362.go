// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl362

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPI command bytes. Every transaction opens with one of these.
const (
	cmdWriteRegister = 0x0A
	cmdReadRegister  = 0x0B
	cmdReadFIFO      = 0x0D
)

// ODR selects the output data rate in FILTER_CTL bits 2:0.
type ODR byte

// FIFOMode selects the FIFO behavior in FIFO_CONTROL bits 1:0.
type FIFOMode byte

const (
	DevIDAD  = 0x00 // Analog Devices vendor ID, always 0xAD
	DevIDMST = 0x01 // Analog Devices MEMS ID, always 0x1D
	PartID   = 0x02 // Part ID, always 0xF2
	RevID    = 0x03 // Silicon revision

	XData = 0x08 // X-axis data, high 8 bits
	YData = 0x09 // Y-axis data, high 8 bits
	ZData = 0x0A // Z-axis data, high 8 bits

	Status       = 0x0B // Status flags
	FIFOEntriesL = 0x0C // Number of buffered axis values, low byte
	FIFOEntriesH = 0x0D // Number of buffered axis values, bits 9:8

	XDataL = 0x0E // X-axis data, low byte
	XDataH = 0x0F // X-axis data, high byte
	YDataL = 0x10
	YDataH = 0x11
	ZDataL = 0x12
	ZDataH = 0x13
	TempL  = 0x14 // Temperature, low byte
	TempH  = 0x15 // Temperature, high byte

	SoftReset = 0x1F // Write SoftResetKey to reset the device

	ThreshActL   = 0x20 // Activity threshold
	ThreshActH   = 0x21
	TimeAct      = 0x22 // Activity time
	ThreshInactL = 0x23 // Inactivity threshold
	ThreshInactH = 0x24
	TimeInactL   = 0x25 // Inactivity time
	TimeInactH   = 0x26
	ActInactCtl  = 0x27 // Activity/inactivity control

	// Control registers

	FIFOControl = 0x28 // FIFO mode and the AH watermark bit
	FIFOSamples = 0x29 // FIFO watermark threshold, low 8 bits
	IntMap1     = 0x2A // INT1 function map
	IntMap2     = 0x2B // INT2 function map
	FilterCtl   = 0x2C // Data rate and filter control
	PowerCtl    = 0x2D // Power mode control

	SoftResetKey = 0x52 // The only value SoftReset reacts to

	ODR12  ODR = 0x00 // 12.5 Hz
	ODR25  ODR = 0x01 // 25 Hz
	ODR50  ODR = 0x02 // 50 Hz
	ODR100 ODR = 0x03 // 100 Hz
	ODR200 ODR = 0x04 // 200 Hz
	ODR400 ODR = 0x05 // 400 Hz

	FIFODisabled    FIFOMode = 0x00 // FIFO off
	FIFOOldestSaved FIFOMode = 0x01 // stop storing when full
	FIFOStream      FIFOMode = 0x02 // overwrite oldest when full
	FIFOTriggered   FIFOMode = 0x03 // store around an activity event

	// Status register bits.
	StatusDataReady     = 1 << 0
	StatusFIFOReady     = 1 << 1
	StatusFIFOWatermark = 1 << 2
	StatusFIFOOverrun   = 1 << 3

	// INTMAP function bits. IntActiveLow flips the polarity of the line.
	IntDataReady     = 1 << 0
	IntFIFOReady     = 1 << 1
	IntFIFOWatermark = 1 << 2
	IntFIFOOverrun   = 1 << 3
	IntActiveLow     = 1 << 7

	// PowerCtl bits 1:0 value that enables measurement mode.
	MeasurementMode = 0x02

	// FIFODepth is the number of samples the on-chip FIFO can buffer.
	FIFODepth = 170
)

// SPI bus parameters for the device. The ADXL362 clocks up to 8 MHz in
// mode 0 with 8 bit words.
var (
	SpiFrequency = physic.MegaHertz
	SpiMode      = spi.Mode0
	SpiBits      = 8
)

// DefaultOpts turns measurement mode on and checks the fixed identity
// registers during New.
var DefaultOpts = Opts{
	TurnOnOnStart:  true,
	ExpectedPartID: 0xF2,
	ODR:            ODR100,
}

type Opts struct {
	TurnOnOnStart  bool // Enter measurement mode during New.
	ExpectedPartID byte // Part ID used to verify the device is an ADXL362.
	ODR            ODR  // Output data rate programmed during New.
}

// Dev is a driver for the ADXL362 accelerometer.
type Dev struct {
	name string
	s    spi.Conn
}

func (d *Dev) String() string {
	return d.name
}

// Halt leaves measurement mode. It implements conn.Resource.
func (d *Dev) Halt() error {
	return d.TurnOff()
}

// New connects to an ADXL362 on the given SPI port, verifies its
// identity registers and applies o.
func New(p spi.Port, o *Opts) (*Dev, error) {
	c, err := p.Connect(SpiFrequency, SpiMode, SpiBits)
	if err != nil {
		return nil, err
	}
	d := &Dev{
		name: "ADXL362",
		s:    c,
	}
	id, err := d.ReadRegisters(DevIDAD, 3)
	if err != nil {
		return nil, err
	}
	if id[0] != 0xAD || id[1] != 0x1D || id[2] != o.ExpectedPartID {
		return nil, fmt.Errorf("adxl362: unexpected identity %#02x %#02x %#02x, want 0xAD 0x1D %#02x", id[0], id[1], id[2], o.ExpectedPartID)
	}
	if err := d.SetODR(o.ODR); err != nil {
		return nil, err
	}
	if o.TurnOnOnStart {
		if err := d.TurnOn(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// ReadRegister reads one register.
func (d *Dev) ReadRegister(addr byte) (byte, error) {
	rx, err := d.ReadRegisters(addr, 1)
	if err != nil {
		return 0, err
	}
	return rx[0], nil
}

// ReadRegisters reads n consecutive registers starting at addr in a
// single auto incrementing transaction.
func (d *Dev) ReadRegisters(addr byte, n int) ([]byte, error) {
	tx := make([]byte, 2+n)
	tx[0] = cmdReadRegister
	tx[1] = addr
	rx := make([]byte, len(tx))
	if err := d.s.Tx(tx, rx); err != nil {
		return nil, err
	}
	// The first register value is clocked out while the third byte of the
	// command goes in.
	return rx[2:], nil
}

// WriteRegister writes one register.
func (d *Dev) WriteRegister(addr, value byte) error {
	return d.WriteRegisters(addr, value)
}

// WriteRegisters writes consecutive registers starting at addr in a
// single auto incrementing transaction.
func (d *Dev) WriteRegisters(addr byte, values ...byte) error {
	tx := make([]byte, 2, 2+len(values))
	tx[0] = cmdWriteRegister
	tx[1] = addr
	tx = append(tx, values...)
	return d.s.Tx(tx, nil)
}

// Update reads the current acceleration of the three axes.
func (d *Dev) Update() (Acceleration, error) {
	rx, err := d.ReadRegisters(XDataL, 6)
	if err != nil {
		return Acceleration{}, err
	}
	return decodeAcceleration(rx), nil
}

// Temperature reads the raw temperature output. The scale is 0.065 °C
// per LSB.
func (d *Dev) Temperature() (int16, error) {
	rx, err := d.ReadRegisters(TempL, 2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(rx)), nil
}

// Status reads the status register.
func (d *Dev) Status() (byte, error) {
	return d.ReadRegister(Status)
}

// FIFOEntries returns the number of buffered axis values, three per
// stored sample.
func (d *Dev) FIFOEntries() (int, error) {
	rx, err := d.ReadRegisters(FIFOEntriesL, 2)
	if err != nil {
		return 0, err
	}
	return int(rx[0]) | int(rx[1]&0x03)<<8, nil
}

// ReadFIFO drains up to n samples from the FIFO in one burst. Bytes
// clocked past the fill level are not valid samples, so callers should
// size n from FIFOEntries.
func (d *Dev) ReadFIFO(n int) ([]Acceleration, error) {
	tx := make([]byte, 1+6*n)
	tx[0] = cmdReadFIFO
	rx := make([]byte, len(tx))
	if err := d.s.Tx(tx, rx); err != nil {
		return nil, err
	}
	out := make([]Acceleration, n)
	for i := range out {
		out[i] = decodeAcceleration(rx[1+6*i:])
	}
	return out, nil
}

// ConfigureFIFO programs the FIFO mode and the watermark threshold in
// axis values. The threshold has 9 bits: the low 8 live in FIFO_SAMPLES
// and the 9th is the AH bit of FIFO_CONTROL.
func (d *Dev) ConfigureFIFO(mode FIFOMode, watermark int) error {
	if watermark < 0 || watermark > 511 {
		return fmt.Errorf("adxl362: watermark %d out of range 0..511", watermark)
	}
	ctl := byte(mode)
	if watermark > 0xFF {
		ctl |= 1 << 3
	}
	return d.WriteRegisters(FIFOControl, ctl, byte(watermark))
}

// SetODR programs the output data rate.
func (d *Dev) SetODR(odr ODR) error {
	if odr > ODR400 {
		return fmt.Errorf("adxl362: invalid output data rate %d", odr)
	}
	cur, err := d.ReadRegister(FilterCtl)
	if err != nil {
		return err
	}
	return d.WriteRegister(FilterCtl, cur&^0x07|byte(odr))
}

// MapInterrupt routes the given function bits to one of the interrupt
// pins. Set IntActiveLow in functions for an active low line.
func (d *Dev) MapInterrupt(pin int, functions byte) error {
	switch pin {
	case 1:
		return d.WriteRegister(IntMap1, functions)
	case 2:
		return d.WriteRegister(IntMap2, functions)
	default:
		return fmt.Errorf("adxl362: no interrupt pin %d", pin)
	}
}

// TurnOn enters measurement mode. Sampling and the FIFO only run while
// measurement mode is on.
func (d *Dev) TurnOn() error {
	return d.WriteRegister(PowerCtl, MeasurementMode)
}

// TurnOff enters standby.
func (d *Dev) TurnOff() error {
	return d.WriteRegister(PowerCtl, 0x00)
}

// Reset performs a soft reset. All configuration registers return to
// their defaults and the FIFO is flushed.
func (d *Dev) Reset() error {
	return d.WriteRegister(SoftReset, SoftResetKey)
}

// Acceleration is one sample of the three axes, in raw counts.
type Acceleration struct {
	X int16
	Y int16
	Z int16
}

// String returns a string representation of the Acceleration.
func (a Acceleration) String() string {
	return fmt.Sprintf("X:%d Y:%d Z:%d", a.X, a.Y, a.Z)
}

func decodeAcceleration(b []byte) Acceleration {
	return Acceleration{
		X: int16(binary.LittleEndian.Uint16(b[0:2])),
		Y: int16(binary.LittleEndian.Uint16(b[2:4])),
		Z: int16(binary.LittleEndian.Uint16(b[4:6])),
	}
}
