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

	log "github.com/sirupsen/logrus"
)

// DefaultTopK is the default number of closest tiles from which the greedy
// assignment chooses one at random.
const DefaultTopK = 20

// GreedyAssigner assigns tiles to the cells of a reference one after another.
// For each cell one of the K tiles closest to the reference color is chosen
// at random and removed from the pool, so a tile is used again only after the
// pool ran out of tiles.
type GreedyAssigner struct {
	Metric ColorMetric
	K      int
	// Progress, if not nil, is called after each assigned cell.
	Progress ProgressFunc
}

// NewGreedyAssigner returns a new greedy assigner. A nil metric means
// EuclideanRGB, k ≤ 0 means DefaultTopK.
func NewGreedyAssigner(metric ColorMetric, k int) *GreedyAssigner {
	if k <= 0 {
		k = DefaultTopK
	}
	return &GreedyAssigner{Metric: metricOrDefault(metric), K: k}
}

// Assign fills a grid of the reference size by visiting the coordinates in the
// given order. The order of coords determines which cells get the first pick.
// Whenever the pool is empty it gets refilled.
//
// The coordinates must cover each cell of the reference, otherwise the
// result is an ErrInvalidGridState error. An empty sequence or a reference
// without cells gives ErrDegenerateCoordinates, an empty tile collection
// ErrEmptyTileCollection.
func (assigner *GreedyAssigner) Assign(ref Reference, pool *TilePool, coords []image.Point) (*Grid, error) {
	width, height := ref.Width(), ref.Height()
	if len(coords) == 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %d coordinates for a %dx%d reference",
			ErrDegenerateCoordinates, len(coords), width, height)
	}
	if pool == nil || pool.SourceLen() == 0 {
		return nil, ErrEmptyTileCollection
	}
	metric := metricOrDefault(assigner.Metric)
	k := assigner.K
	if k <= 0 {
		k = DefaultTopK
	}
	grid := NewGrid(width, height)
	for i, p := range coords {
		if !grid.Contains(p) {
			return nil, fmt.Errorf("%w: coordinate %v is not in the %dx%d reference",
				ErrDegenerateCoordinates, p, width, height)
		}
		if pool.IsEmpty() {
			pool.Refill()
			log.WithFields(log.Fields{
				"refills":   pool.Refills(),
				"processed": i,
			}).Debug("Tile pool exhausted, refilled")
		}
		tile, drawErr := pool.DrawClosest(ref.ColorAt(p.X, p.Y), k, metric)
		if drawErr != nil {
			return nil, drawErr
		}
		grid.Set(p.X, p.Y, tile)
		if assigner.Progress != nil {
			assigner.Progress(i + 1)
		}
	}
	if err := grid.checkComplete(); err != nil {
		return nil, err
	}
	return grid, nil
}
