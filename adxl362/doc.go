// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package adxl362 controls an ADXL362 3-axis accelerometer over SPI.
//
// The ADXL362 is a micropower accelerometer with a 170 sample FIFO and a
// command based SPI protocol: every transaction starts with a command
// byte (write register, read register or read FIFO) instead of encoding
// the direction in the address byte. Register reads and writes auto
// increment, so a single transaction can transfer a whole register bank.
//
// The driver works against any spi.Port, including the simulated port
// from the accel package.
//
// Datasheet: https://www.analog.com/media/en/technical-documentation/data-sheets/adxl362.pdf
package adxl362
