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
	"math/rand"
	"testing"
)

func isPermutation(t *testing.T, name string, points []image.Point, width, height int) {
	t.Helper()
	if len(points) != width*height {
		t.Fatalf("%s: expected %d points, got %d", name, width*height, len(points))
	}
	seen := make(map[image.Point]bool, len(points))
	for _, p := range points {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			t.Fatalf("%s: point %v outside of grid", name, p)
		}
		if seen[p] {
			t.Fatalf("%s: point %v appears twice", name, p)
		}
		seen[p] = true
	}
}

func TestPixelOrdersArePermutations(t *testing.T) {
	randGen := rand.New(rand.NewSource(1))
	ref := randomReference(t, randGen, 6, 4)
	for _, name := range GetPixelOrderNames() {
		order, _ := GetPixelOrder(name)
		isPermutation(t, name, order(ref, randGen), 6, 4)
	}
}

func TestOrderedPixels(t *testing.T) {
	ref, _ := ColorReference([][]RGB{
		{{}, {}},
		{{}, {}},
		{{}, {}},
	})
	expected := []image.Point{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	got := OrderedPixels(ref, nil)
	for i, p := range expected {
		if got[i] != p {
			t.Errorf("Expected %v at position %d, got %v", p, i, got[i])
		}
	}
}

func TestLuminanceOrders(t *testing.T) {
	dark, mid, bright := NewRGB(10, 10, 10), NewRGB(120, 120, 120), NewRGB(250, 250, 250)
	ref, _ := ColorReference([][]RGB{
		{bright, dark},
		{mid, dark},
	})
	darkest := DarkestPixels(ref, nil)
	expected := []image.Point{{1, 0}, {1, 1}, {0, 1}, {0, 0}}
	for i, p := range expected {
		if darkest[i] != p {
			t.Errorf("darkest: expected %v at position %d, got %v", p, i, darkest[i])
		}
	}
	brightest := BrightestPixels(ref, nil)
	for i := range brightest {
		if brightest[i] != darkest[len(darkest)-1-i] {
			t.Fatalf("brightest is not the reverse of darkest: %v and %v", brightest, darkest)
		}
	}
	// average luminance is 97.5, mid is closest
	midtone := MidtonePixels(ref, nil)
	if midtone[0] != image.Pt(0, 1) {
		t.Errorf("midtone: expected (0, 1) first, got %v", midtone[0])
	}
	if midtone[3] != image.Pt(0, 0) {
		t.Errorf("midtone: expected (0, 0) last, got %v", midtone[3])
	}
}

func TestRandomPixelsSeeded(t *testing.T) {
	ref := randomReference(t, rand.New(rand.NewSource(2)), 5, 5)
	p1 := RandomPixels(ref, rand.New(rand.NewSource(3)))
	p2 := RandomPixels(ref, rand.New(rand.NewSource(3)))
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatal("Random order with the same seed differs")
		}
	}
}
