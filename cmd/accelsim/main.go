// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// accelsim samples the accelerometer and prints the readings. By
// default it runs against the built-in simulated chip; with -port it
// talks to real hardware through the spireg registry instead.
//
// With -trace it renders the bus activity of the simulated run to a
// PNG, with -scope it draws the waveforms in the terminal.
package main

import (
	"flag"
	"log"
	"time"

	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/henrydang80/accelsim/adxl362"
	"github.com/henrydang80/accelsim/internal/feed"
	"github.com/henrydang80/accelsim/scope"
	"github.com/henrydang80/accelsim/trace"
)

func main() {
	port := flag.String("port", "", "spireg SPI port of a real device; empty runs the simulation")
	n := flag.Int("n", 20, "number of samples to read")
	interval := flag.Duration("interval", 50*time.Millisecond, "sampling interval")
	tracePNG := flag.String("trace", "", "write a waveform PNG of the simulated bus to this path")
	showScope := flag.Bool("scope", false, "draw the simulated bus waveforms in the terminal")
	flag.Parse()

	if *port != "" {
		if err := runHardware(*port, *n, *interval); err != nil {
			log.Fatalf("fatal: %v", err)
		}
		return
	}
	if err := runSimulated(*n, *interval, *tracePNG, *showScope); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func runSimulated(n int, interval time.Duration, tracePNG string, showScope bool) error {
	rec := &trace.Recorder{}
	f, err := feed.New(&feed.Options{Probe: rec})
	if err != nil {
		return err
	}
	log.Printf("sampling the simulated chip: %s", f.Dev())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := 0; i < n; i++ {
		<-ticker.C
		r, err := f.Next()
		if err != nil {
			return err
		}
		log.Printf("sample %2d: x=%5d y=%5d z=%5d", i, r.X, r.Y, r.Z)
	}

	if showScope {
		s := scope.New(&scope.Opts{Width: 100})
		if err := s.Draw(rec.Samples()); err != nil {
			return err
		}
		if err := s.Halt(); err != nil {
			return err
		}
	}
	if tracePNG != "" {
		if err := rec.RenderPNG(tracePNG, 1200); err != nil {
			return err
		}
		log.Printf("bus trace written to %s (%d ticks)", tracePNG, rec.Len())
	}
	return nil
}

func runHardware(port string, n int, interval time.Duration) error {
	if _, err := host.Init(); err != nil {
		return err
	}
	p, err := spireg.Open(port)
	if err != nil {
		return err
	}
	defer p.Close()

	d, err := adxl362.New(p, &adxl362.DefaultOpts)
	if err != nil {
		return err
	}
	log.Printf("sampling %s on %s", d, port)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := 0; i < n; i++ {
		<-ticker.C
		a, err := d.Update()
		if err != nil {
			return err
		}
		log.Printf("sample %2d: %s", i, a)
	}
	return d.Halt()
}
