// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package scope renders recorded bus activity as colored waveforms in
// the terminal, using ANSI color codes.
//
// Useful to eyeball a transaction without leaving the console: each bus
// line becomes one row of colored blocks, bright while the line is high.
package scope

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/henrydang80/accelsim/accel"
)

// Opts represents the options available for the scope.
type Opts struct {
	// Width is the number of columns of the waveform area, excluding the
	// line labels. Ticks are decimated to fit.
	Width int
	// Palette maps colors to the closest ANSI code. Defaults to
	// ansi256.Default.
	Palette *ansi256.Palette
	// W is the output stream. Defaults to a colorable stdout.
	W io.Writer
}

// Dev draws probe recordings to the console.
type Dev struct {
	w       io.Writer
	width   int
	palette ansi256.Palette

	buf bytes.Buffer
}

// line label plus high/low colors for one bus line.
type line struct {
	name string
	high color.NRGBA
	low  color.NRGBA
	at   func(s accel.ProbeSample) bool
}

var lines = []line{
	{"SCK ", color.NRGBA{255, 200, 0, 255}, color.NRGBA{60, 45, 0, 255}, func(s accel.ProbeSample) bool { return s.SCK }},
	{"CS# ", color.NRGBA{255, 80, 80, 255}, color.NRGBA{60, 20, 20, 255}, func(s accel.ProbeSample) bool { return s.CSN }},
	{"MOSI", color.NRGBA{80, 255, 80, 255}, color.NRGBA{20, 60, 20, 255}, func(s accel.ProbeSample) bool { return s.MOSI }},
	{"MISO", color.NRGBA{80, 160, 255, 255}, color.NRGBA{20, 40, 60, 255}, func(s accel.ProbeSample) bool { return s.MISO }},
	{"INT1", color.NRGBA{255, 80, 255, 255}, color.NRGBA{60, 20, 60, 255}, func(s accel.ProbeSample) bool { return s.INT1 }},
	{"INT2", color.NRGBA{80, 255, 255, 255}, color.NRGBA{20, 60, 60, 255}, func(s accel.ProbeSample) bool { return s.INT2 }},
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	return &Dev{
		w:       w,
		width:   width,
		palette: *p,
	}
}

func (d *Dev) String() string {
	return "Scope"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Draw writes one row of colored blocks per bus line. Ticks are
// decimated to the configured width; a cell is bright if the line was
// high at any point inside its slice of ticks.
func (d *Dev) Draw(samples []accel.ProbeSample) error {
	if len(samples) == 0 {
		return fmt.Errorf("scope: nothing to draw")
	}
	cols := d.width
	if len(samples) < cols {
		cols = len(samples)
	}
	d.buf.Reset()
	for _, l := range lines {
		_, _ = d.buf.WriteString("\033[0m")
		_, _ = d.buf.WriteString(l.name)
		_, _ = d.buf.WriteString(" ")
		for col := 0; col < cols; col++ {
			lo := col * len(samples) / cols
			hi := (col + 1) * len(samples) / cols
			level := false
			for i := lo; i < hi; i++ {
				if l.at(samples[i]) {
					level = true
					break
				}
			}
			c := l.low
			if level {
				c = l.high
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ fmt.Stringer = &Dev{}
