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
	"image/color"
	"math/rand"
	"testing"
)

func solidImage(width, height int, c RGB) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	col := color.RGBA{c.R, c.G, c.B, 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, col)
		}
	}
	return img
}

func solidTile(c RGB, size int) *Tile {
	return NewTile(solidImage(size, size, c), c, "")
}

func tilesOf(colors ...RGB) TileCollection {
	res := make(TileCollection, len(colors))
	for i, c := range colors {
		res[i] = solidTile(c, 2)
	}
	return res
}

func randomColors(randGen *rand.Rand, n int) []RGB {
	res := make([]RGB, n)
	for i := range res {
		res[i] = NewRGB(uint8(randGen.Intn(256)), uint8(randGen.Intn(256)), uint8(randGen.Intn(256)))
	}
	return res
}

func randomReference(t *testing.T, randGen *rand.Rand, width, height int) *ImageReference {
	t.Helper()
	rows := make([][]RGB, height)
	for y := range rows {
		rows[y] = randomColors(randGen, width)
	}
	ref, err := ColorReference(rows)
	if err != nil {
		t.Fatal(err)
	}
	return ref
}

func containsTile(tiles TileCollection, t *Tile) bool {
	for _, other := range tiles {
		if other == t {
			return true
		}
	}
	return false
}

func checkMembership(t *testing.T, grid *Grid, tiles TileCollection) {
	t.Helper()
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			tile := grid.Get(x, y)
			if tile == nil {
				t.Fatalf("Cell (%d, %d) is empty", x, y)
			}
			if !containsTile(tiles, tile) {
				t.Fatalf("Cell (%d, %d) contains a tile not in the collection", x, y)
			}
		}
	}
}
