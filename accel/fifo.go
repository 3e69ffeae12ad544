// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

// FIFODepth is the number of 48 bit sample entries the FIFO holds,
// including the buffered output stage of a synchronous FIFO.
const FIFODepth = 170

// FIFO_CONTROL bits 1:0 select the buffering mode.
const (
	FIFOModeDisabled    = 0x00
	FIFOModeOldestSaved = 0x01 // new samples are dropped while full
	FIFOModeStream      = 0x02 // the oldest entry is evicted while full
	FIFOModeTriggered   = 0x03
)

// Sample is one 3 axis acceleration reading as it sits in the FIFO: three
// signed 16 bit axis values packed into a single 48 bit entry.
type Sample struct {
	X, Y, Z int16
}

// Bytes returns the 6 byte wire encoding of the entry, emitted from the
// low 8 bits of the 48 bit word toward the high 8 bits: X low byte first,
// Z high byte last.
func (s Sample) Bytes() [6]byte {
	return [6]byte{
		byte(s.X), byte(uint16(s.X) >> 8),
		byte(s.Y), byte(uint16(s.Y) >> 8),
		byte(s.Z), byte(uint16(s.Z) >> 8),
	}
}

// DecodeSample reassembles a Sample from its 6 byte wire encoding.
func DecodeSample(b []byte) Sample {
	return Sample{
		X: int16(uint16(b[0]) | uint16(b[1])<<8),
		Y: int16(uint16(b[2]) | uint16(b[3])<<8),
		Z: int16(uint16(b[4]) | uint16(b[5])<<8),
	}
}

// sampleFIFO is the fixed depth queue between the sample load engine
// (producer) and the protocol engine (consumer). Each owner performs at
// most one operation per multi tick FSM sequence, so no locking exists.
type sampleFIFO struct {
	entries [FIFODepth]Sample
	head    int // index of the oldest entry
	level   int // buffered but unread entries, 0..FIFODepth
}

func (f *sampleFIFO) reset() {
	f.head = 0
	f.level = 0
}

// readable reports that pop is legal. Consumers must check it first; pop
// on an empty FIFO is a caller bug.
func (f *sampleFIFO) readable() bool { return f.level > 0 }

// writable reports that a push will be accepted.
func (f *sampleFIFO) writable() bool { return f.level < FIFODepth }

// push appends an entry and reports whether it was accepted. Past
// capacity the entry is dropped and push returns false.
func (f *sampleFIFO) push(s Sample) bool {
	if f.level >= FIFODepth {
		return false
	}
	f.entries[(f.head+f.level)%FIFODepth] = s
	f.level++
	return true
}

// pushEvict appends an entry unconditionally, evicting the oldest one
// when full. This is the stream mode overflow policy.
func (f *sampleFIFO) pushEvict(s Sample) {
	if f.level >= FIFODepth {
		f.head = (f.head + 1) % FIFODepth
		f.level--
	}
	f.push(s)
}

// pop removes and returns the oldest entry. ok is false when the FIFO is
// empty and the queue state is untouched.
func (f *sampleFIFO) pop() (s Sample, ok bool) {
	if f.level == 0 {
		return Sample{}, false
	}
	s = f.entries[f.head]
	f.head = (f.head + 1) % FIFODepth
	f.level--
	return s, true
}
