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
	"fmt"
	"image"
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// ComposeMosaic creates the mosaic image from a complete grid. The result has
// size (tileSize * grid.Width) x (tileSize * grid.Height), the tile in cell
// (x, y) is drawn at position (x * tileSize, y * tileSize).
//
// Tiles are not scaled: they are expected to be of size at most
// tileSize x tileSize (as returned by LoadTile). If a tile is smaller the
// rest of the cell remains (opaque) black, if it is bigger it is clipped to its cell.
//
// Rows are drawn concurrently by numRoutines goroutines, if numRoutines ≤ 0
// runtime.NumCPU() is used.
func ComposeMosaic(grid *Grid, tileSize int, numRoutines int) (*image.RGBA, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: no grid given", ErrInvalidGridState)
	}
	if tileSize <= 0 || grid.Width <= 0 || grid.Height <= 0 {
		return nil, fmt.Errorf("%w: can't compose %dx%d tiles of size %d",
			ErrInvalidDimensions, grid.Width, grid.Height, tileSize)
	}
	if err := grid.checkComplete(); err != nil {
		return nil, err
	}
	if numRoutines <= 0 {
		numRoutines = runtime.NumCPU()
	}
	res := image.NewRGBA(image.Rect(0, 0, tileSize*grid.Width, tileSize*grid.Height))
	draw.Draw(res, res.Bounds(), image.Black, image.Point{}, draw.Src)
	if Debug {
		log.WithFields(log.Fields{
			"width":  res.Bounds().Dx(),
			"height": res.Bounds().Dy(),
		}).Info("Composing mosaic")
	}
	// each goroutine writes only to the cells of its row, so no further
	// synchronization is required
	var g errgroup.Group
	g.SetLimit(numRoutines)
	for y := 0; y < grid.Height; y++ {
		y := y
		g.Go(func() error {
			for x := 0; x < grid.Width; x++ {
				insertTile(res, tileArea(x, y, tileSize), grid.Get(x, y))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func tileArea(x, y, tileSize int) image.Rectangle {
	return image.Rect(x*tileSize, y*tileSize, (x+1)*tileSize, (y+1)*tileSize)
}

func insertTile(into *image.RGBA, area image.Rectangle, t *Tile) {
	bounds := t.Image.Bounds()
	draw.Draw(into, area, t.Image, bounds.Min, draw.Src)
}
