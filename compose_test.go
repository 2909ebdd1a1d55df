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
	"errors"
	"image"
	"testing"
)

func TestComposeMosaicQuadrants(t *testing.T) {
	colors := []RGB{NewRGB(255, 0, 0), NewRGB(0, 255, 0), NewRGB(0, 0, 255), NewRGB(255, 255, 255)}
	grid := NewGrid(2, 2)
	grid.Set(0, 0, solidTile(colors[0], 10))
	grid.Set(1, 0, solidTile(colors[1], 10))
	grid.Set(0, 1, solidTile(colors[2], 10))
	grid.Set(1, 1, solidTile(colors[3], 10))
	mosaic, err := ComposeMosaic(grid, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if mosaic.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Fatalf("Expected a 20x20 canvas, got %v", mosaic.Bounds())
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			expected := grid.Get(x/10, y/10).Color
			if got := ConvertRGB(mosaic.At(x, y)); got != expected {
				t.Fatalf("Expected %v at (%d, %d), got %v", expected, x, y, got)
			}
		}
	}
}

func TestComposeMosaicSmallTile(t *testing.T) {
	grid := NewGrid(1, 1)
	grid.Set(0, 0, solidTile(NewRGB(200, 100, 50), 4))
	mosaic, err := ComposeMosaic(grid, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := ConvertRGB(mosaic.At(2, 2)); got != NewRGB(200, 100, 50) {
		t.Errorf("Expected tile color inside the tile, got %v", got)
	}
	if got := mosaic.RGBAAt(6, 6); got.R != 0 || got.G != 0 || got.B != 0 || got.A != 255 {
		t.Errorf("Expected black outside of the tile, got %v", got)
	}
}

func TestComposeMosaicOffsetTile(t *testing.T) {
	// tile images are not required to start at (0, 0)
	img := solidImage(10, 10, NewRGB(9, 9, 9)).SubImage(image.Rect(5, 5, 10, 10))
	grid := NewGrid(2, 1)
	grid.Set(0, 0, NewTile(img, NewRGB(9, 9, 9), ""))
	grid.Set(1, 0, solidTile(NewRGB(1, 1, 1), 5))
	mosaic, err := ComposeMosaic(grid, 5, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := ConvertRGB(mosaic.At(0, 0)); got != NewRGB(9, 9, 9) {
		t.Errorf("Expected color of sub image, got %v", got)
	}
	if got := ConvertRGB(mosaic.At(7, 3)); got != NewRGB(1, 1, 1) {
		t.Errorf("Expected color of second tile, got %v", got)
	}
}

func TestComposeMosaicErrors(t *testing.T) {
	grid := NewGrid(2, 1)
	grid.Set(0, 0, solidTile(NewRGB(0, 0, 0), 2))
	if _, err := ComposeMosaic(grid, 2, 1); !errors.Is(err, ErrInvalidGridState) {
		t.Errorf("Expected ErrInvalidGridState for empty cell, got %v", err)
	}
	if _, err := ComposeMosaic(nil, 2, 1); !errors.Is(err, ErrInvalidGridState) {
		t.Errorf("Expected ErrInvalidGridState for nil grid, got %v", err)
	}
	grid.Set(1, 0, solidTile(NewRGB(0, 0, 0), 2))
	if _, err := ComposeMosaic(grid, 0, 1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions for tile size 0, got %v", err)
	}
	if _, err := ComposeMosaic(NewGrid(0, 0), 2, 1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions for empty grid, got %v", err)
	}
}
