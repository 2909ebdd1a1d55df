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
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultGenerations is the default number of swap trials of the stochastic
// assignment.
const DefaultGenerations = 1000000

// cancelCheckInterval is the number of generations between two checks of the
// context.
const cancelCheckInterval = 1024

// TraceFunc is called by StochasticAssigner to report the total error of the
// grid after some generation.
type TraceFunc func(generation int, totalError float64)

// StochasticAssigner first places the tiles at random and then improves the
// grid by swapping pairs of cells. A swap is accepted only if it reduces the
// error of the two cells involved.
type StochasticAssigner struct {
	Metric ColorMetric
	Rand   *rand.Rand
	// Trace, if not nil, receives the total error of the grid before the
	// first generation, every TraceStep generations and after the last
	// generation.
	Trace     TraceFunc
	TraceStep int
}

// NewStochasticAssigner returns a new stochastic assigner. A nil metric means
// EuclideanRGB, a nil randGen is replaced by a generator seeded with the
// current time.
func NewStochasticAssigner(metric ColorMetric, randGen *rand.Rand) *StochasticAssigner {
	if randGen == nil {
		randGen = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &StochasticAssigner{
		Metric:    metricOrDefault(metric),
		Rand:      randGen,
		TraceStep: 10000,
	}
}

func (assigner *StochasticAssigner) randGen() *rand.Rand {
	if assigner.Rand == nil {
		assigner.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return assigner.Rand
}

// Initialize creates a grid of the reference size and fills it row by row
// with tiles drawn at random from a pool of tiles. The pool is refilled
// whenever it is empty.
func (assigner *StochasticAssigner) Initialize(ref Reference, tiles TileCollection) (*Grid, error) {
	width, height := ref.Width(), ref.Height()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: reference of size %dx%d",
			ErrDegenerateCoordinates, width, height)
	}
	if len(tiles) == 0 {
		return nil, ErrEmptyTileCollection
	}
	pool := NewTilePool(tiles, assigner.randGen())
	grid := NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if pool.IsEmpty() {
				pool.Refill()
			}
			tile, drawErr := pool.DrawRandom()
			if drawErr != nil {
				return nil, drawErr
			}
			grid.Set(x, y, tile)
		}
	}
	log.WithField("refills", pool.Refills()).Debug("Random grid initialized")
	return grid, nil
}

// Assign is AssignContext with context.Background().
func (assigner *StochasticAssigner) Assign(ref Reference, tiles TileCollection, generations int) (*Grid, error) {
	return assigner.AssignContext(context.Background(), ref, tiles, generations)
}

// AssignContext initializes a random grid (see Initialize) and then runs the
// given number of generations. In each generation two distinct cells are
// chosen at random and their tiles are swapped if that strictly reduces the
// sum of the errors of both cells. The total error of the grid never
// increases.
//
// A negative number of generations is treated as zero. Grids with only one
// cell are never changed.
//
// The context is checked from time to time between two generations. If it
// is done the current grid is returned together with the context error, the
// grid is complete and consistent in this case.
func (assigner *StochasticAssigner) AssignContext(ctx context.Context, ref Reference, tiles TileCollection,
	generations int) (*Grid, error) {
	grid, initErr := assigner.Initialize(ref, tiles)
	if initErr != nil {
		return nil, initErr
	}
	if generations < 0 {
		generations = 0
	}
	metric := metricOrDefault(assigner.Metric)
	randGen := assigner.randGen()
	total := grid.TotalError(ref, metric)
	assigner.trace(0, total)
	n := grid.Size()
	if n < 2 || generations == 0 {
		if generations > 0 {
			assigner.trace(generations, total)
		}
		return grid, nil
	}
	start := time.Now()
	accepted := 0
	lastTrace := 0
	for gen := 1; gen <= generations; gen++ {
		if gen%cancelCheckInterval == 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				log.WithFields(log.Fields{
					"generation": gen,
					"accepted":   accepted,
				}).Debug("Stochastic assignment cancelled")
				return grid, ctxErr
			}
		}
		i := randGen.Intn(n)
		j := randGen.Intn(n)
		for i == j {
			j = randGen.Intn(n)
		}
		p := image.Pt(i%grid.Width, i/grid.Width)
		q := image.Pt(j%grid.Width, j/grid.Width)
		tp, tq := grid.Get(p.X, p.Y), grid.Get(q.X, q.Y)
		refP, refQ := ref.ColorAt(p.X, p.Y), ref.ColorAt(q.X, q.Y)
		current := metric(tp.Color, refP) + metric(tq.Color, refQ)
		swapped := metric(tq.Color, refP) + metric(tp.Color, refQ)
		if swapped < current {
			grid.Swap(p, q)
			total += swapped - current
			accepted++
		}
		if assigner.TraceStep > 0 && gen%assigner.TraceStep == 0 {
			assigner.trace(gen, total)
			lastTrace = gen
		}
	}
	if lastTrace != generations {
		assigner.trace(generations, total)
	}
	log.WithFields(log.Fields{
		"generations": generations,
		"accepted":    accepted,
		"error":       total,
		"took":        time.Since(start),
	}).Debug("Stochastic assignment done")
	return grid, nil
}

func (assigner *StochasticAssigner) trace(generation int, total float64) {
	if assigner.Trace != nil {
		assigner.Trace(generation, total)
	}
}
