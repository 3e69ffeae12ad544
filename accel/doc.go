// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package accel simulates an ADXL362 style 3-axis accelerometer attached
// to a 4-wire SPI bus, at the granularity of one system clock cycle.
//
// The chip is modeled as synchronous logic: a register file with
// heterogeneous access classes, a 170 entry sample FIFO, a protocol
// engine decoding the 0x0A/0x0B/0x0D command set, a programmable output
// data rate divider and watermark/overrun interrupt logic. Core.Tick
// advances every state machine by one cycle; all sequential state is
// computed from the previous cycle's values, so composition is
// deterministic and race free.
//
// Sensor values are not derived from physics. The host side injects them
// through SetSample and a write enable strobe, the way a SoC would feed
// the chip through a CSR block.
//
// Port wraps a Core in a periph.io spi.PortCloser so that ordinary host
// drivers can talk to the simulated chip without knowing it is not real.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/adxl362.pdf
package accel
