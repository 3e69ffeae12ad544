// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

type loadState uint8

const (
	loadIdle loadState = iota
	loadWriteStrobe
	loadWrite
)

// sampleLoader copies one host supplied 3 axis sample into the FIFO per
// rising edge of the write enable line. In stream mode the push always
// lands (evicting the oldest entry when full); in every other mode a full
// FIFO silently drops the new sample.
type sampleLoader struct {
	state   loadState
	we      edgeDetector
	pending Sample // staged by Core.SetSample
	staged  Sample // latched at the accept edge
	done    bool   // set after the staged sample is in the FIFO
}

func (l *sampleLoader) reset() {
	l.state = loadIdle
	l.we.reset()
	l.done = false
}

// step advances the FSM one tick. weLevel is the raw write enable line,
// mode the FIFO_CONTROL mode bits. It returns the sample and true on the
// tick the push committed.
func (l *sampleLoader) step(weLevel bool, mode byte, f *sampleFIFO) (Sample, bool) {
	edge := l.we.Rising()
	l.we.sample(weLevel)

	switch l.state {
	case loadIdle:
		if edge {
			l.done = false
			if mode == FIFOModeStream {
				l.staged = l.pending
				l.state = loadWriteStrobe
			} else if f.writable() {
				l.staged = l.pending
				l.state = loadWriteStrobe
			}
			// Full and not streaming: the sample is dropped, done stays
			// low. Overrun is reported through the status register only.
		}

	case loadWriteStrobe:
		if mode == FIFOModeStream {
			f.pushEvict(l.staged)
		} else {
			f.push(l.staged)
		}
		l.state = loadWrite
		return l.staged, true

	case loadWrite:
		l.done = true
		l.state = loadIdle
	}
	return Sample{}, false
}
