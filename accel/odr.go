// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accel

import "periph.io/x/conn/v3/physic"

// ODR selector values, FILTER_CTL bits 2:0. Encodings above ODR400
// default to the full base rate.
const (
	ODR12 = iota // 12.5 Hz, base/32
	ODR25        // 25 Hz, base/16
	ODR50        // 50 Hz, base/8
	ODR100       // 100 Hz, base/4
	ODR200       // 200 Hz, base/2
	ODR400       // 400 Hz, full base rate
)

// odrController is the programmable frequency divider behind the "sample
// ready" pulse. It runs an internal toggle at twice the selected rate and
// edge detects the toggle into a single tick pulse, so the pulse rate is
// exactly the configured ODR.
type odrController struct {
	// prescalerMax divides the system clock down to the toggle clock,
	// which runs at twice the base rate so that the full rate selector
	// can still toggle once per prescaler period.
	prescalerMax int

	prescaler int
	cnt       int
	fout      bool
	edge      edgeDetector
}

func newODRController(freq, base physic.Frequency) *odrController {
	max := int(freq/(2*base)) - 1
	if max < 0 {
		max = 0
	}
	return &odrController{prescalerMax: max}
}

// divisor returns the toggle period in toggle clock ticks for a selector.
func (o *odrController) divisor(odr uint8) int {
	if odr >= ODR400 {
		return 0
	}
	return 1<<(ODR400-odr) - 1
}

func (o *odrController) reset() {
	o.prescaler = 0
	o.cnt = 0
	o.fout = false
	o.edge.reset()
}

// tick advances the divider one system clock cycle and reports the sample
// ready pulse. While ena is low the output is forced low and the counters
// are held.
func (o *odrController) tick(ena bool, odr uint8) bool {
	pulse := o.edge.Rising()
	if !ena {
		o.edge.reset()
		o.fout = false
		return false
	}
	o.edge.sample(o.fout)
	if o.prescaler == o.prescalerMax {
		o.prescaler = 0
		if cpt := o.divisor(odr); o.cnt >= cpt {
			o.cnt = 0
			o.fout = !o.fout
		} else {
			o.cnt++
		}
	} else {
		o.prescaler++
	}
	return pulse
}
