// Copyright 2018 Fabian Wenzelmann
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
	"strings"
)

// ColorMetric computes the distance between two RGB colors.
// The smaller the metric value is the more equal the colors are considered.
// Metric values must be ≥ 0.
type ColorMetric func(a, b RGB) float64

// EuclideanRGB returns the euclidean distance of the colors, that is
// sqrt( (r1 - r2)² + (g1 - g2)² + (b1 - b2)² ).
//
// It is the default metric and is used whenever a metric is nil.
func EuclideanRGB(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// VectorMetric is a function that takes two vectors of the same length and
// returns a metric value ("distance") of the two.
type VectorMetric func(p, q []float64) float64

// VectorColorMetric converts a vector metric to a color metric by treating
// colors as vectors (r, g, b).
func VectorColorMetric(vm VectorMetric) ColorMetric {
	return func(a, b RGB) float64 {
		v1 := []float64{float64(a.R), float64(a.G), float64(a.B)}
		v2 := []float64{float64(b.R), float64(b.G), float64(b.B)}
		return vm(v1, v2)
	}
}

// Manhattan returns the manhattan distance of two vectors, that is
// |p1 - q1| + ... + |pn - qn|.
func Manhattan(p, q []float64) float64 {
	var result float64
	for i, e1 := range p {
		result += math.Abs(e1 - q[i])
	}
	return result
}

// EuclideanDistance returns the euclidean distance of two
// vectors, that is sqrt( (p1 - q1)² + ... + (pn - qn)² ).
func EuclideanDistance(p, q []float64) float64 {
	var sum float64
	for i, e1 := range p {
		e2 := q[i]
		diff := (e1 - e2)
		sum += (diff * diff)
	}
	return math.Sqrt(sum)
}

// ChessboardDistance is the max over all absolute distances,
// see https://reference.wolfram.com/language/ref/ChessboardDistance.html
func ChessboardDistance(p, q []float64) float64 {
	res := 0.0
	for i, e1 := range p {
		e2 := q[i]
		res = math.Max(res, math.Abs(e1-e2))
	}
	return res
}

func metricOrDefault(metric ColorMetric) ColorMetric {
	if metric == nil {
		return EuclideanRGB
	}
	return metric
}

// The following variables are used for registering named
// metrics.

var (
	colorMetrics map[string]ColorMetric
)

// RegisterColorMetric is used to register a named color metric.
// It will only add the metric if the name does not exist yet. The result is
// true if the metric was successfully registered and false otherwise.
// Some metrics are registered by default.
// All names must be lowercase strings, the register and get
// methods will always transform a string to lowercase.
//
// All metrics should be registered by an init method.
func RegisterColorMetric(name string, metric ColorMetric) bool {
	name = strings.ToLower(name)
	if _, has := colorMetrics[name]; has {
		return false
	}
	colorMetrics[name] = metric
	return true
}

// GetColorMetricNames returns a list of all registered
// named color metrics. See RegisterColorMetric for
// details.
func GetColorMetricNames() []string {
	res := make([]string, 0, len(colorMetrics))
	for key := range colorMetrics {
		res = append(res, key)
	}
	return res
}

// GetColorMetric returns a registered color metric.
// Returns the metric and true on success and nil and false
// otherwise.
func GetColorMetric(name string) (ColorMetric, bool) {
	name = strings.ToLower(name)
	if metric, has := colorMetrics[name]; has {
		return metric, true
	}
	return nil, false
}

func init() {
	colorMetrics = make(map[string]ColorMetric)
	RegisterColorMetric("euclid", EuclideanRGB)
	RegisterColorMetric("manhattan", VectorColorMetric(Manhattan))
	RegisterColorMetric("chessboard", VectorColorMetric(ChessboardDistance))
}
