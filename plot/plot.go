// Copyright 2019 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package plot renders diagnostics of the mosaic creation, for example the
// decrease of the total error during a stochastic assignment.
package plot

import (
	"errors"
	"fmt"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoSamples is returned if there is nothing to plot.
var ErrNoSamples = errors.New("No samples to plot")

// Sample is the total error of a grid after some generation.
type Sample struct {
	Generation int
	Error      float64
}

// TraceRecorder collects samples, its Record method can be used as the
// trace function of a stochastic assignment.
type TraceRecorder struct {
	samples []Sample
}

// NewTraceRecorder returns an empty recorder.
func NewTraceRecorder() *TraceRecorder {
	return &TraceRecorder{samples: make([]Sample, 0, 100)}
}

// Record adds a sample.
func (rec *TraceRecorder) Record(generation int, totalError float64) {
	rec.samples = append(rec.samples, Sample{Generation: generation, Error: totalError})
}

// Samples returns all recorded samples.
func (rec *TraceRecorder) Samples() []Sample {
	return rec.samples
}

// Len returns the number of recorded samples.
func (rec *TraceRecorder) Len() int {
	return len(rec.samples)
}

// WriteErrorCurve plots the total error against the generation and saves the
// plot to path. The format is chosen by the extension of path (.png, .svg,
// .pdf, ...).
func WriteErrorCurve(path string, samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	p := gonumplot.New()
	p.Title.Text = "Stochastic assignment"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Total error"

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = float64(s.Generation)
		pts[i].Y = s.Error
	}
	line, lineErr := plotter.NewLine(pts)
	if lineErr != nil {
		return lineErr
	}
	p.Add(line, plotter.NewGrid())

	if saveErr := p.Save(8*vg.Inch, 4*vg.Inch, path); saveErr != nil {
		return fmt.Errorf("Can't save plot to %s: %w", path, saveErr)
	}
	return nil
}
