// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package accelsim is a container for an SPI accelerometer simulator and
// its host side tooling.
//
// The accel package models the chip itself at the clock cycle level, the
// adxl362 package is a periph.io style host driver that works against the
// simulated chip or the real part, and the trace/scope packages capture
// and render the resulting bus waveforms.
package accelsim
