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
	"image"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// PixelOrder returns the cells of a reference in the order in which they
// should be assigned a tile. The result must contain each cell exactly once.
// randGen is only used by random orders, it may be nil.
type PixelOrder func(ref Reference, randGen *rand.Rand) []image.Point

// OrderedPixels returns the cells column by column: first all cells with
// x = 0 (top to bottom), then all cells with x = 1 and so on.
func OrderedPixels(ref Reference, randGen *rand.Rand) []image.Point {
	width, height := ref.Width(), ref.Height()
	if width <= 0 || height <= 0 {
		return nil
	}
	res := make([]image.Point, 0, width*height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			res = append(res, image.Pt(x, y))
		}
	}
	return res
}

// RandomPixels returns the cells in random order.
func RandomPixels(ref Reference, randGen *rand.Rand) []image.Point {
	if randGen == nil {
		randGen = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	res := OrderedPixels(ref, randGen)
	randGen.Shuffle(len(res), func(i, j int) {
		res[i], res[j] = res[j], res[i]
	})
	return res
}

type pointLuminance struct {
	p   image.Point
	lum float64
}

func pixelsWithLuminance(ref Reference) []pointLuminance {
	points := OrderedPixels(ref, nil)
	res := make([]pointLuminance, len(points))
	for i, p := range points {
		res[i] = pointLuminance{p, PerceivedLuminance(ref.ColorAt(p.X, p.Y))}
	}
	return res
}

func sortedPoints(values []pointLuminance, key func(pointLuminance) float64) []image.Point {
	sort.SliceStable(values, func(i, j int) bool {
		return key(values[i]) < key(values[j])
	})
	res := make([]image.Point, len(values))
	for i, v := range values {
		res[i] = v.p
	}
	return res
}

// DarkestPixels returns the cells ordered by their perceived luminance,
// darkest first. Cells of the same luminance are in the order of
// OrderedPixels.
func DarkestPixels(ref Reference, randGen *rand.Rand) []image.Point {
	return sortedPoints(pixelsWithLuminance(ref), func(v pointLuminance) float64 {
		return v.lum
	})
}

// BrightestPixels is the reverse of DarkestPixels.
func BrightestPixels(ref Reference, randGen *rand.Rand) []image.Point {
	res := DarkestPixels(ref, randGen)
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// MidtonePixels returns the cells ordered by how far their luminance is from
// the average luminance of all cells.
func MidtonePixels(ref Reference, randGen *rand.Rand) []image.Point {
	values := pixelsWithLuminance(ref)
	if len(values) == 0 {
		return nil
	}
	var total float64
	for _, v := range values {
		total += v.lum
	}
	avg := total / float64(len(values))
	return sortedPoints(values, func(v pointLuminance) float64 {
		return math.Abs(avg - v.lum)
	})
}

var (
	pixelOrders map[string]PixelOrder
)

// RegisterPixelOrder registers a named order, it works as
// RegisterColorMetric.
func RegisterPixelOrder(name string, order PixelOrder) bool {
	name = strings.ToLower(name)
	if _, has := pixelOrders[name]; has {
		return false
	}
	pixelOrders[name] = order
	return true
}

// GetPixelOrder returns a registered order.
func GetPixelOrder(name string) (PixelOrder, bool) {
	order, has := pixelOrders[strings.ToLower(name)]
	return order, has
}

// GetPixelOrderNames returns the names of all registered orders.
func GetPixelOrderNames() []string {
	res := make([]string, 0, len(pixelOrders))
	for key := range pixelOrders {
		res = append(res, key)
	}
	return res
}

func init() {
	pixelOrders = make(map[string]PixelOrder)
	RegisterPixelOrder("ordered", OrderedPixels)
	RegisterPixelOrder("random", RandomPixels)
	RegisterPixelOrder("darkest", DarkestPixels)
	RegisterPixelOrder("brightest", BrightestPixels)
	RegisterPixelOrder("midtone", MidtonePixels)
}
