// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

import "testing"

func TestFIFOOrder(t *testing.T) {
	var f sampleFIFO
	for i := 0; i < 10; i++ {
		if !f.push(Sample{X: int16(i), Y: int16(-i), Z: int16(i * 2)}) {
			t.Fatalf("push %d rejected", i)
		}
	}
	for i := 0; i < 10; i++ {
		s, ok := f.pop()
		if !ok {
			t.Fatalf("pop %d failed", i)
		}
		if want := (Sample{X: int16(i), Y: int16(-i), Z: int16(i * 2)}); s != want {
			t.Errorf("pop %d = %+v, want %+v", i, s, want)
		}
	}
	if f.readable() {
		t.Error("FIFO still readable after draining")
	}
}

func TestFIFOCapacity(t *testing.T) {
	var f sampleFIFO
	for i := 0; i < FIFODepth; i++ {
		if !f.push(Sample{X: int16(i)}) {
			t.Fatalf("push %d rejected below capacity", i)
		}
	}
	if f.writable() {
		t.Error("FIFO writable at capacity")
	}
	if f.push(Sample{X: 9999}) {
		t.Error("push accepted past capacity")
	}
	if f.level != FIFODepth {
		t.Errorf("level = %d, want %d", f.level, FIFODepth)
	}
	// The dropped sample must not be retained.
	for i := 0; i < FIFODepth; i++ {
		s, _ := f.pop()
		if s.X == 9999 {
			t.Fatal("dropped sample surfaced")
		}
	}
}

func TestFIFOStreamEvictsOldest(t *testing.T) {
	var f sampleFIFO
	for i := 0; i < FIFODepth; i++ {
		f.push(Sample{X: int16(i)})
	}
	f.pushEvict(Sample{X: 9999})
	if f.level != FIFODepth {
		t.Errorf("level = %d, want %d", f.level, FIFODepth)
	}
	s, _ := f.pop()
	if s.X != 1 {
		t.Errorf("oldest entry after eviction = %d, want 1", s.X)
	}
	var last Sample
	for f.readable() {
		last, _ = f.pop()
	}
	if last.X != 9999 {
		t.Errorf("newest entry = %d, want 9999", last.X)
	}
}

func TestFIFOPopEmpty(t *testing.T) {
	var f sampleFIFO
	if _, ok := f.pop(); ok {
		t.Error("pop succeeded on an empty FIFO")
	}
}

func TestSampleBytes(t *testing.T) {
	s := Sample{X: 100, Y: -50, Z: 200}
	b := s.Bytes()
	// Low 8 bits of the 48 bit word first: X low byte through Z high byte.
	want := [6]byte{0x64, 0x00, 0xCE, 0xFF, 0xC8, 0x00}
	if b != want {
		t.Errorf("Bytes() = %#v, want %#v", b, want)
	}
	if got := DecodeSample(b[:]); got != s {
		t.Errorf("DecodeSample() = %+v, want %+v", got, s)
	}
}
