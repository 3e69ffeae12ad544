// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

// Register addresses. The map matches the ADXL362 register file up to and
// including POWER_CTL; everything else in the 8 bit address space is
// reserved and reads as zero.
const (
	RegDevIDAD      = 0x00 // Analog Devices vendor ID, fixed 0xAD
	RegDevIDMST     = 0x01 // Analog Devices MEMS ID, fixed 0x1D
	RegPartID       = 0x02 // Part ID, fixed 0xF2
	RegRevID        = 0x03 // Silicon revision, fixed 0x01
	RegXData        = 0x08 // X axis, high 8 bits
	RegYData        = 0x09 // Y axis, high 8 bits
	RegZData        = 0x0A // Z axis, high 8 bits
	RegStatus       = 0x0B // Status bits, see Status* constants
	RegFIFOEntriesL = 0x0C // Buffered axis value count, low byte
	RegFIFOEntriesH = 0x0D // Buffered axis value count, high bits
	RegXDataL       = 0x0E // X axis, low byte
	RegXDataH       = 0x0F // X axis, high byte
	RegYDataL       = 0x10
	RegYDataH       = 0x11
	RegZDataL       = 0x12
	RegZDataH       = 0x13
	RegTempL        = 0x14 // Temperature, low byte
	RegTempH        = 0x15 // Temperature, high byte
	RegSoftReset    = 0x1F // Write SoftResetKey here to reset the device
	RegThreshActL   = 0x20
	RegThreshActH   = 0x21
	RegTimeAct      = 0x22
	RegThreshInactL = 0x23
	RegThreshInactH = 0x24
	RegTimeInactL   = 0x25
	RegTimeInactH   = 0x26
	RegActInactCtl  = 0x27
	RegFIFOControl  = 0x28 // FIFO mode in bits 1:0, AH bit in bit 3
	RegFIFOSamples  = 0x29 // Watermark threshold, low 8 bits
	RegIntMap1      = 0x2A // INT1 function map, bit 7 selects active low
	RegIntMap2      = 0x2B // INT2 function map, bit 7 selects active low
	RegFilterCtl    = 0x2C // ODR selector in bits 2:0
	RegPowerCtl     = 0x2D // Measurement mode in bits 1:0
)

// RegLast is the highest implemented register address. Burst register
// reads stop auto incrementing here instead of running off the map.
const RegLast = RegPowerCtl

// SoftResetKey is the only value RegSoftReset reacts to.
const SoftResetKey = 0x52

// Status register bits.
const (
	StatusDataReady     = 1 << 0 // a valid sample is buffered
	StatusFIFOReady     = 1 << 1 // the FIFO holds at least one entry
	StatusFIFOWatermark = 1 << 2 // fill level reached the configured threshold
	StatusFIFOOverrun   = 1 << 3 // the FIFO is at capacity
)

// IntLowBit in an INTMAP register selects active low behavior for that
// interrupt line; IntFIFOWatermarkBit enables the watermark function.
const (
	IntFIFOWatermarkBit = 1 << 2
	IntLowBit           = 1 << 7
)

// PowerCtlMeasure is the POWER_CTL bits 1:0 encoding that enables
// measurement mode and with it the ODR controller.
const PowerCtlMeasure = 0x02

type regAccess uint8

const (
	regUnmapped  regAccess = iota
	regReadOnly            // fixed identity, never written
	regInternal            // host readable, written only by internal logic
	regWriteOnly           // command slot, reads as zero
	regReadWrite           // host configuration
)

func accessOf(addr byte) regAccess {
	switch addr {
	case RegDevIDAD, RegDevIDMST, RegPartID, RegRevID:
		return regReadOnly
	case RegXData, RegYData, RegZData, RegStatus,
		RegFIFOEntriesL, RegFIFOEntriesH,
		RegXDataL, RegXDataH, RegYDataL, RegYDataH, RegZDataL, RegZDataH,
		RegTempL, RegTempH:
		return regInternal
	case RegSoftReset:
		return regWriteOnly
	case RegThreshActL, RegThreshActH, RegTimeAct,
		RegThreshInactL, RegThreshInactH, RegTimeInactL, RegTimeInactH,
		RegActInactCtl, RegFIFOControl, RegFIFOSamples,
		RegIntMap1, RegIntMap2, RegFilterCtl, RegPowerCtl:
		return regReadWrite
	default:
		return regUnmapped
	}
}

// registerFile is the byte addressed store behind the protocol engine.
// Two access paths guard the same backing cells: write is the host path
// and honors the access class, setInternal is the device internal path
// used for status and data mirrors.
type registerFile struct {
	regs [RegLast + 1]byte
}

func (r *registerFile) reset() {
	r.regs = [RegLast + 1]byte{}
	r.regs[RegDevIDAD] = 0xAD
	r.regs[RegDevIDMST] = 0x1D
	r.regs[RegPartID] = 0xF2
	r.regs[RegRevID] = 0x01
	r.regs[RegStatus] = 0x40
	r.regs[RegFIFOSamples] = 0x80
	r.regs[RegFilterCtl] = 0x13
}

// read returns the addressed slot. Unmapped and write only slots read as
// zero.
func (r *registerFile) read(addr byte) byte {
	switch accessOf(addr) {
	case regUnmapped, regWriteOnly:
		return 0
	default:
		return r.regs[addr]
	}
}

// write is the host write path. Only read/write and write only slots
// accept the value; everything else absorbs the write silently.
func (r *registerFile) write(addr, v byte) {
	switch accessOf(addr) {
	case regReadWrite, regWriteOnly:
		r.regs[addr] = v
	}
}

// setInternal is the device internal write path for status and data
// mirrors. Writes to any other class are a programming error and are
// dropped.
func (r *registerFile) setInternal(addr, v byte) {
	if accessOf(addr) == regInternal {
		r.regs[addr] = v
	}
}

// softResetArmed reports that the host stored the reset key. The pulse it
// arms clears the stored key again, so it is observed for one tick only.
func (r *registerFile) softResetArmed() bool {
	return r.regs[RegSoftReset] == SoftResetKey
}
