// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package scope

import (
	"bytes"
	"strings"
	"testing"

	"github.com/henrydang80/accelsim/accel"
)

func TestDrawEmpty(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Width: 40, W: &out})
	if err := d.Draw(nil); err == nil {
		t.Error("Draw succeeded with no samples")
	}
}

func TestDrawLayout(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Width: 16, W: &out})
	samples := make([]accel.ProbeSample, 64)
	for i := range samples {
		samples[i].SCK = i/4%2 == 1
		samples[i].CSN = true
	}
	if err := d.Draw(samples); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("drew %d rows, want 6", len(lines))
	}
	for _, name := range []string{"SCK", "CS#", "MOSI", "MISO", "INT1", "INT2"} {
		if !strings.Contains(got, name) {
			t.Errorf("output misses the %s label", name)
		}
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "\033[0m\n") {
		t.Error("Halt did not reset the terminal colors")
	}
}

func TestDrawDecimation(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{Width: 8, W: &out})
	// 3 samples with fewer ticks than columns still draw.
	if err := d.Draw(make([]accel.ProbeSample, 3)); err != nil {
		t.Fatal(err)
	}
	if out.Len() == 0 {
		t.Fatal("no output")
	}
}
