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
	"image"
	"math"
	"strings"
)

// ColorMethod computes the representative color of an image, for example
// its average color.
type ColorMethod func(img image.Image) RGB

// AverageColor computes the average color of an image. Each component is
// truncated to an integer.
func AverageColor(img image.Image) RGB {
	// just to be sure we use big integers, depending on the image size we might
	// get problems

	bounds := img.Bounds()

	// don't do anything for empty images
	if bounds.Empty() {
		return RGB{}
	}
	var r, g, b uint64
	numPixels := uint64(bounds.Dx() * bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// get generic color
			c := img.At(x, y)
			// convert to internal rgb representation
			rgb := ConvertRGB(c)
			r += uint64(rgb.R)
			g += uint64(rgb.G)
			b += uint64(rgb.B)
		}
	}
	r /= numPixels
	g /= numPixels
	b /= numPixels
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// rgbLess orders colors by r, then g, then b.
func rgbLess(a, b RGB) bool {
	switch {
	case a.R != b.R:
		return a.R < b.R
	case a.G != b.G:
		return a.G < b.G
	default:
		return a.B < b.B
	}
}

// CommonestColor returns the color that appears most often in the image.
// If several colors appear equally often the greatest color (compared by
// r, then g, then b) wins.
func CommonestColor(img image.Image) RGB {
	bounds := img.Bounds()
	if bounds.Empty() {
		return RGB{}
	}
	counts := make(map[RGB]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			counts[ConvertRGB(img.At(x, y))]++
		}
	}
	var best RGB
	bestCount := -1
	for c, count := range counts {
		if count > bestCount || (count == bestCount && rgbLess(best, c)) {
			best, bestCount = c, count
		}
	}
	return best
}

// PerceivedLuminance computes the perceived brightness of a color,
// see http://alienryderflex.com/hsp.html
func PerceivedLuminance(c RGB) float64 {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	return math.Sqrt(0.299*r*r + 0.587*g*g + 0.114*b*b)
}

var (
	colorMethods map[string]ColorMethod
)

// RegisterColorMethod registers a named color method, it works as
// RegisterColorMetric.
func RegisterColorMethod(name string, method ColorMethod) bool {
	name = strings.ToLower(name)
	if _, has := colorMethods[name]; has {
		return false
	}
	colorMethods[name] = method
	return true
}

// GetColorMethod returns a registered color method.
func GetColorMethod(name string) (ColorMethod, bool) {
	method, has := colorMethods[strings.ToLower(name)]
	return method, has
}

// GetColorMethodNames returns the names of all registered color methods.
func GetColorMethodNames() []string {
	res := make([]string, 0, len(colorMethods))
	for key := range colorMethods {
		res = append(res, key)
	}
	return res
}

func init() {
	colorMethods = make(map[string]ColorMethod)
	RegisterColorMethod("average", AverageColor)
	RegisterColorMethod("commonest", CommonestColor)
}
