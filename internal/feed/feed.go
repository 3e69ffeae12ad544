// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package feed drives the simulated accelerometer with synthetic motion
// and reads it back through the adxl362 driver, so the commands have a
// self-contained data source when no hardware is attached.
package feed

import (
	"math"
	"time"

	"github.com/henrydang80/accelsim/accel"
	"github.com/henrydang80/accelsim/adxl362"
)

// Reading is one timestamped sample, in raw counts (1 mg per LSB).
type Reading struct {
	X    int16  `json:"x"`
	Y    int16  `json:"y"`
	Z    int16  `json:"z"`
	Time string `json:"time"`
}

// Options configures the simulated feed.
type Options struct {
	// Probe, when set, receives the bus line levels of every model tick.
	Probe accel.Probe
}

// Feed owns a simulated chip and the driver talking to it.
type Feed struct {
	core *Core
	dev  *adxl362.Dev
	t    float64
}

// Core aliases the simulated chip so callers can reach the host surface.
type Core = accel.Core

// New builds the simulated chip, connects the driver through the bit
// level port and puts the FIFO into stream mode.
func New(o *Options) (*Feed, error) {
	opts := accel.DefaultOpts
	if o != nil {
		opts.Probe = o.Probe
	}
	c, err := accel.New(&opts)
	if err != nil {
		return nil, err
	}
	d, err := adxl362.New(accel.NewPort(c), &adxl362.DefaultOpts)
	if err != nil {
		return nil, err
	}
	if err := d.ConfigureFIFO(adxl362.FIFOStream, 48); err != nil {
		return nil, err
	}
	return &Feed{core: c, dev: d}, nil
}

// Core returns the simulated chip.
func (f *Feed) Core() *Core { return f.core }

// Dev returns the driver attached to the simulated chip.
func (f *Feed) Dev() *adxl362.Dev { return f.dev }

// Next synthesizes one motion sample, loads it into the chip and reads
// it back over the bus. The motion is a slow tumble with gravity on Z.
func (f *Feed) Next() (Reading, error) {
	f.t += 0.05
	x := int16(400 * math.Sin(2*math.Pi*0.23*f.t))
	y := int16(300 * math.Sin(2*math.Pi*0.31*f.t+1.0))
	z := int16(1000 * math.Cos(2*math.Pi*0.11*f.t))
	f.inject(x, y, z)

	a, err := f.dev.Update()
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		X:    a.X,
		Y:    a.Y,
		Z:    a.Z,
		Time: time.Now().Format(time.RFC3339Nano),
	}, nil
}

// inject clocks one sample through the load port of the chip.
func (f *Feed) inject(x, y, z int16) {
	f.core.SetSample(x, y, z)
	f.core.SetWriteEnable(true)
	f.idle(8)
	f.core.SetWriteEnable(false)
	f.idle(8)
}

func (f *Feed) idle(n int) {
	for i := 0; i < n; i++ {
		f.core.Tick(false, true, false)
	}
}
