// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

// SPI command bytes. Anything else aborts the transaction.
const (
	CmdWriteRegister = 0x0A // burst register write
	CmdReadRegister  = 0x0B // burst register read
	CmdReadFIFO      = 0x0D // FIFO burst read
)

type protoState uint8

const (
	protoIdle protoState = iota
	protoCmd
	protoDecode
	protoAddr
	protoAccess
	protoWriteShiftIn
	protoWriteStrobe
	protoWriteValue
	protoWriteNext
	protoReadLoad
	protoReadTxBuf
	protoShiftingOut
	protoShiftOutDone
	protoFIFORead
	protoFIFOEntryStrobe
	protoFIFOEntry
	protoFIFOPrepare
	protoFIFOShiftByte
)

var protoStateNames = [...]string{
	protoIdle:            "IDLE",
	protoCmd:             "CMD_PHASE",
	protoDecode:          "CMD_DECODE",
	protoAddr:            "ADDR_PHASE",
	protoAccess:          "DETERMINE_REG_ACCESS",
	protoWriteShiftIn:    "REG_VALUE_SHIFTIN",
	protoWriteStrobe:     "REG_WRITE_STROBE",
	protoWriteValue:      "REG_WRITE_VALUE",
	protoWriteNext:       "REG_WRITE_NEXT",
	protoReadLoad:        "LOAD_SHIFT_OUT_DATA",
	protoReadTxBuf:       "LOAD_TX_BUF",
	protoShiftingOut:     "SHIFTING_OUT",
	protoShiftOutDone:    "SHIFT_OUT_DONE",
	protoFIFORead:        "READ_FIFO",
	protoFIFOEntryStrobe: "READ_FIFO_ENTRY_STROBE",
	protoFIFOEntry:       "READ_FIFO_ENTRY",
	protoFIFOPrepare:     "PREPARE_SHIFT_BYTE_OUT",
	protoFIFOShiftByte:   "SHIFT_BYTE_OUT",
}

func (s protoState) String() string {
	if int(s) < len(protoStateNames) {
		return protoStateNames[s]
	}
	return "UNKNOWN"
}

// protoWires are the per tick inputs the engine samples. They carry the
// previous tick's bus state, never the raw pin levels.
type protoWires struct {
	csn       bool // raw chip select level, high forces IDLE
	byteDone  bool // one tick pulse, a full byte sits in rxd
	rxd       byte // the received byte, valid with byteDone
	csnRising bool // chip select de-assert edge
}

// protoEngine is the command/register protocol FSM. It exclusively owns
// the per transaction state (command, address, FIFO byte counter) and
// holds non owning handles into the register file and FIFO of the
// enclosing Core.
type protoEngine struct {
	state protoState
	cmd   byte
	addr  byte
	data  byte // staged write value or latched read value

	entry    Sample // FIFO entry currently being shifted out
	byteSent uint8  // bytes of entry already emitted, 0..6 (7 = entry done)

	// drained counts FIFO entries handed to the host since the watermark
	// was last cleared. It survives chip select de-assertion: watermark
	// hysteresis spans transactions.
	drained int
}

func (p *protoEngine) reset() {
	*p = protoEngine{}
}

// step advances the FSM one tick. It returns the byte to load into the TX
// shift register, valid only when load is true.
func (p *protoEngine) step(w protoWires, rf *registerFile, f *sampleFIFO) (txLoad byte, load bool) {
	if w.csn {
		// Chip select de-assertion is the sole cancellation mechanism:
		// it aborts any state immediately. The FIFO byte counter is per
		// transaction state and dies with it; drained persists.
		p.state = protoIdle
		p.byteSent = 0
		return 0, false
	}

	switch p.state {
	case protoIdle:
		p.state = protoCmd

	case protoCmd:
		if w.byteDone {
			p.cmd = w.rxd
			p.state = protoDecode
		}

	case protoDecode:
		switch p.cmd {
		case CmdWriteRegister, CmdReadRegister:
			p.state = protoAddr
		case CmdReadFIFO:
			p.state = protoFIFORead
		default:
			// Unrecognized command: silent abort, no error byte.
			p.state = protoIdle
		}

	case protoAddr:
		if w.byteDone {
			p.addr = w.rxd
			p.state = protoAccess
		}

	case protoAccess:
		if p.cmd == CmdWriteRegister {
			p.state = protoWriteShiftIn
		} else {
			p.state = protoReadLoad
		}

	case protoWriteShiftIn:
		if w.byteDone {
			p.data = w.rxd
			p.state = protoWriteStrobe
		}

	case protoWriteStrobe:
		rf.write(p.addr, p.data)
		p.state = protoWriteValue

	case protoWriteValue:
		p.state = protoWriteNext

	case protoWriteNext:
		if w.csnRising {
			p.state = protoIdle
		} else if w.byteDone {
			// Burst write: commit each byte, then auto increment.
			p.addr++
			p.data = w.rxd
			p.state = protoWriteStrobe
		}

	case protoReadLoad:
		p.data = rf.read(p.addr)
		p.state = protoReadTxBuf

	case protoReadTxBuf:
		p.state = protoShiftingOut
		return p.data, true

	case protoShiftingOut:
		if w.byteDone {
			p.state = protoShiftOutDone
		}

	case protoShiftOutDone:
		switch {
		case w.csnRising:
			p.state = protoIdle
		case p.addr < RegLast:
			// Burst read: auto increment until the last register.
			p.addr++
			p.state = protoReadLoad
		default:
			p.state = protoIdle
		}

	case protoFIFORead:
		if p.byteSent == 0 {
			if f.readable() {
				p.state = protoFIFOEntryStrobe
			}
			// Otherwise wait here; the host is obligated to check the
			// FIFO ready status bit before issuing the command.
		} else {
			p.state = protoFIFOPrepare
		}

	case protoFIFOEntryStrobe:
		p.state = protoFIFOEntry

	case protoFIFOEntry:
		p.entry, _ = f.pop()
		p.drained++
		p.byteSent = 1
		p.state = protoFIFOPrepare

	case protoFIFOPrepare:
		if p.byteSent >= 1 && p.byteSent <= 6 {
			p.state = protoFIFOShiftByte
			return p.entry.Bytes()[p.byteSent-1], true
		}
		// All 6 bytes out; pop the next entry while still selected.
		p.byteSent = 0
		p.state = protoFIFORead

	case protoFIFOShiftByte:
		if w.byteDone {
			p.byteSent++
			p.state = protoFIFOPrepare
		}
	}
	return 0, false
}
