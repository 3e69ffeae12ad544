// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

// edgeDetector recovers clock edges from a raw bus line using a two slot
// delay line sampled once per system tick. An edge is reported exactly one
// tick after it happened and a single tick glitch never produces both a
// rising and a falling report in the same tick.
type edgeDetector struct {
	// cnt bit1 holds the sample from two ticks ago, bit0 the last one.
	cnt uint8
}

// Rising reports a 0 to 1 transition between the two buffered samples.
func (e *edgeDetector) Rising() bool { return e.cnt == 1 }

// Falling reports a 1 to 0 transition between the two buffered samples.
func (e *edgeDetector) Falling() bool { return e.cnt == 2 }

// Delayed returns the line level as sampled two ticks ago. Data lines are
// read through this so they carry the same latency as the edge reports of
// the clock they are qualified by.
func (e *edgeDetector) Delayed() bool { return e.cnt&2 != 0 }

// sample shifts the current line level into the delay line. Must be called
// exactly once per tick, after the Rising/Falling/Delayed values for the
// tick have been consumed.
func (e *edgeDetector) sample(level bool) {
	e.cnt = (e.cnt << 1) & 3
	if level {
		e.cnt |= 1
	}
}

func (e *edgeDetector) reset() { e.cnt = 0 }
