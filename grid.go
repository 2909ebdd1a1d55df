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
	"fmt"
	"image"
)

// Grid is the assignment of tiles to the cells of a reference.
//
// Cells are not stored in the fashion (x, y) but (y, x). That means each entry
// in Cells describes one row of the grid. The Get and Set methods do this
// correctly.
type Grid struct {
	Width, Height int
	Cells         [][]*Tile
}

// NewGrid returns an empty grid of the given size.
func NewGrid(width, height int) *Grid {
	cells := make([][]*Tile, height)
	for y := range cells {
		cells[y] = make([]*Tile, width)
	}
	return &Grid{Width: width, Height: height, Cells: cells}
}

// Get returns the tile in column x and row y, nil if the cell is empty.
func (g *Grid) Get(x, y int) *Tile {
	return g.Cells[y][x]
}

// Set places the tile in column x and row y.
func (g *Grid) Set(x, y int, t *Tile) {
	g.Cells[y][x] = t
}

// Swap exchanges the tiles of two cells.
func (g *Grid) Swap(p, q image.Point) {
	g.Cells[p.Y][p.X], g.Cells[q.Y][q.X] = g.Cells[q.Y][q.X], g.Cells[p.Y][p.X]
}

// Contains tests if the point is a valid cell.
func (g *Grid) Contains(p image.Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Size returns the number of cells.
func (g *Grid) Size() int {
	return g.Width * g.Height
}

// Complete returns true if every cell holds a tile.
func (g *Grid) Complete() bool {
	return g.firstEmpty() == nil
}

func (g *Grid) firstEmpty() *image.Point {
	for y, row := range g.Cells {
		for x, t := range row {
			if t == nil {
				return &image.Point{X: x, Y: y}
			}
		}
	}
	return nil
}

// checkComplete returns an ErrInvalidGridState error if a cell is empty.
func (g *Grid) checkComplete() error {
	if p := g.firstEmpty(); p != nil {
		return fmt.Errorf("%w: cell (%d, %d) is empty", ErrInvalidGridState, p.X, p.Y)
	}
	return nil
}

// TotalError is the sum of the distances between the color of each tile and
// the reference color of its cell. Empty cells are ignored.
func (g *Grid) TotalError(ref Reference, metric ColorMetric) float64 {
	metric = metricOrDefault(metric)
	var res float64
	for y, row := range g.Cells {
		for x, t := range row {
			if t == nil {
				continue
			}
			res += metric(t.Color, ref.ColorAt(x, y))
		}
	}
	return res
}

// Tiles returns all tiles in the grid in row-major order (nil for empty
// cells).
func (g *Grid) Tiles() []*Tile {
	res := make([]*Tile, 0, g.Size())
	for _, row := range g.Cells {
		res = append(res, row...)
	}
	return res
}
