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
package mosaicify

import (
	"math"
	"math/rand"
	"testing"
)

func TestEuclideanRGB(t *testing.T) {
	tests := []struct {
		a, b     RGB
		expected float64
	}{
		{NewRGB(0, 0, 0), NewRGB(0, 0, 0), 0},
		{NewRGB(0, 0, 0), NewRGB(3, 4, 0), 5},
		{NewRGB(10, 10, 10), NewRGB(10, 10, 11), 1},
		{NewRGB(0, 0, 0), NewRGB(255, 255, 255), math.Sqrt(3 * 255 * 255)},
	}
	for _, tc := range tests {
		if got := EuclideanRGB(tc.a, tc.b); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Expected distance %f between %v and %v, got %f", tc.expected, tc.a, tc.b, got)
		}
	}
}

func TestColorMetricsSymmetric(t *testing.T) {
	randGen := rand.New(rand.NewSource(42))
	colors := randomColors(randGen, 200)
	for _, name := range GetColorMetricNames() {
		metric, _ := GetColorMetric(name)
		for i := 0; i+1 < len(colors); i += 2 {
			a, b := colors[i], colors[i+1]
			if metric(a, b) != metric(b, a) {
				t.Errorf("Metric %s is not symmetric for %v and %v", name, a, b)
			}
			if metric(a, a) != 0 {
				t.Errorf("Metric %s: distance of %v to itself is not 0", name, a)
			}
			if a != b && metric(a, b) <= 0 {
				t.Errorf("Metric %s: distance between different colors %v and %v is not positive", name, a, b)
			}
		}
	}
}

func TestVectorColorMetric(t *testing.T) {
	a, b := NewRGB(1, 2, 3), NewRGB(4, 0, 3)
	if got := VectorColorMetric(Manhattan)(a, b); got != 5 {
		t.Errorf("Expected manhattan distance 5, got %f", got)
	}
	if got := VectorColorMetric(ChessboardDistance)(a, b); got != 3 {
		t.Errorf("Expected chessboard distance 3, got %f", got)
	}
	euclid := VectorColorMetric(EuclideanDistance)(a, b)
	if math.Abs(euclid-EuclideanRGB(a, b)) > 1e-9 {
		t.Errorf("Vector euclidean distance %f differs from %f", euclid, EuclideanRGB(a, b))
	}
}

func TestColorMetricRegistry(t *testing.T) {
	for _, name := range []string{"euclid", "manhattan", "chessboard"} {
		if _, has := GetColorMetric(name); !has {
			t.Errorf("Metric %s not registered", name)
		}
	}
	if RegisterColorMetric("euclid", EuclideanRGB) {
		t.Error("Registered euclid twice")
	}
	if _, has := GetColorMetric("no-such-metric"); has {
		t.Error("Found unregistered metric")
	}
}
