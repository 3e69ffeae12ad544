// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package trace records the pad level activity of a simulated
// accelerometer and renders it as a logic analyzer style waveform image.
//
// A Recorder plugs into accel.Opts.Probe and keeps one snapshot per
// system tick. Render draws the six bus lines into an image, RenderPNG
// writes it to disk.
package trace

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/henrydang80/accelsim/accel"
)

// Recorder buffers one ProbeSample per tick. The zero value records
// without bound; set Limit to keep only the most recent ticks.
type Recorder struct {
	// Limit caps the number of buffered ticks. Zero means unlimited.
	Limit int

	samples []accel.ProbeSample
}

// Record implements accel.Probe.
func (r *Recorder) Record(s accel.ProbeSample) {
	if r.Limit > 0 && len(r.samples) >= r.Limit {
		n := copy(r.samples, r.samples[len(r.samples)-r.Limit+1:])
		r.samples = r.samples[:n]
	}
	r.samples = append(r.samples, s)
}

// Len returns the number of buffered ticks.
func (r *Recorder) Len() int { return len(r.samples) }

// Samples returns the buffered ticks. The slice is owned by the
// Recorder and valid until the next Record.
func (r *Recorder) Samples() []accel.ProbeSample { return r.samples }

// Reset drops all buffered ticks.
func (r *Recorder) Reset() { r.samples = r.samples[:0] }

// lanes in render order, top to bottom.
var lanes = []struct {
	name string
	at   func(s accel.ProbeSample) bool
}{
	{"SCK", func(s accel.ProbeSample) bool { return s.SCK }},
	{"CS#", func(s accel.ProbeSample) bool { return s.CSN }},
	{"MOSI", func(s accel.ProbeSample) bool { return s.MOSI }},
	{"MISO", func(s accel.ProbeSample) bool { return s.MISO }},
	{"INT1", func(s accel.ProbeSample) bool { return s.INT1 }},
	{"INT2", func(s accel.ProbeSample) bool { return s.INT2 }},
}

// Layout constants, in pixels.
const (
	labelWidth = 64
	laneHeight = 48
	lanePad    = 10
	margin     = 12
)

// Render draws the buffered ticks as one waveform lane per bus line.
// width is the total image width; the height follows from the number of
// lanes.
func (r *Recorder) Render(width int) (image.Image, error) {
	if len(r.samples) == 0 {
		return nil, fmt.Errorf("trace: nothing recorded")
	}
	if width <= labelWidth+2*margin {
		return nil, fmt.Errorf("trace: width %d is too narrow", width)
	}
	height := 2*margin + len(lanes)*laneHeight
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 13}))

	plotW := float64(width - labelWidth - 2*margin)
	perTick := plotW / float64(len(r.samples))
	x0 := float64(margin + labelWidth)

	for i, lane := range lanes {
		top := float64(margin + i*laneHeight + lanePad)
		bottom := float64(margin + (i+1)*laneHeight - lanePad)

		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(lane.name, float64(margin), (top+bottom)/2, 0, 0.35)

		// Faint baseline for the low level.
		dc.SetRGB(0.9, 0.9, 0.9)
		dc.SetLineWidth(1)
		dc.DrawLine(x0, bottom, x0+plotW, bottom)
		dc.Stroke()

		dc.SetRGB(0.1, 0.3, 0.7)
		dc.SetLineWidth(1.5)
		y := func(level bool) float64 {
			if level {
				return top
			}
			return bottom
		}
		prev := lane.at(r.samples[0])
		dc.MoveTo(x0, y(prev))
		for t, s := range r.samples {
			cur := lane.at(s)
			x := x0 + float64(t)*perTick
			if cur != prev {
				dc.LineTo(x, y(prev))
				dc.LineTo(x, y(cur))
				prev = cur
			}
		}
		dc.LineTo(x0+plotW, y(prev))
		dc.Stroke()
	}
	return dc.Image(), nil
}

// RenderPNG renders the waveform and writes it to path.
func (r *Recorder) RenderPNG(path string, width int) error {
	img, err := r.Render(width)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
