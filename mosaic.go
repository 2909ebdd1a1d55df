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
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Names of the supported assignment strategies.
const (
	StrategyGreedy     = "greedy"
	StrategyStochastic = "stochastic"
)

// Options controls the creation of a mosaic.
type Options struct {
	// Strategy is either StrategyGreedy or StrategyStochastic.
	Strategy string
	// TileSize is the width and height of each cell in the output.
	TileSize int
	// K is the number of closest tiles the greedy strategy chooses from.
	K int
	// Generations is the number of swap trials of the stochastic strategy.
	Generations int
	// Order is the name of the pixel order used by the greedy strategy.
	Order string
	// Metric is the name of the color metric.
	Metric string
	// Seed for the random generator, 0 means the current time is used.
	Seed int64
	// NumRoutines is the number of goroutines used for distance computations
	// and composing.
	NumRoutines int
	// Progress is called by the greedy strategy after each cell, may be nil.
	Progress ProgressFunc
	// Trace is passed to the stochastic strategy, may be nil.
	Trace     TraceFunc
	TraceStep int
}

// DefaultOptions returns the default options: greedy assignment with
// DefaultTopK in ordered pixel order with the euclidean metric.
func DefaultOptions() Options {
	return Options{
		Strategy:    StrategyGreedy,
		TileSize:    50,
		K:           DefaultTopK,
		Generations: DefaultGenerations,
		Order:       "ordered",
		Metric:      "euclid",
		NumRoutines: 4,
		TraceStep:   10000,
	}
}

func (opts Options) randGen() *rand.Rand {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Assign computes the grid for the reference as described by the options.
// Each call uses its own pool and random generator, so different calls can
// run concurrently on the same tiles.
func (opts Options) Assign(ctx context.Context, ref Reference, tiles TileCollection) (*Grid, error) {
	metricName := opts.Metric
	if metricName == "" {
		metricName = "euclid"
	}
	metric, hasMetric := GetColorMetric(metricName)
	if !hasMetric {
		return nil, fmt.Errorf("Unknown metric \"%s\"", opts.Metric)
	}
	randGen := opts.randGen()
	switch strings.ToLower(opts.Strategy) {
	case StrategyGreedy, "":
		orderName := opts.Order
		if orderName == "" {
			orderName = "ordered"
		}
		order, hasOrder := GetPixelOrder(orderName)
		if !hasOrder {
			return nil, fmt.Errorf("Unknown pixel order \"%s\"", opts.Order)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		pool := NewTilePool(tiles, randGen)
		pool.NumRoutines = opts.NumRoutines
		assigner := NewGreedyAssigner(metric, opts.K)
		assigner.Progress = opts.Progress
		grid, err := assigner.Assign(ref, pool, order(ref, randGen))
		if err == nil {
			log.WithField("refills", pool.Refills()).Debug("Greedy assignment done")
		}
		return grid, err
	case StrategyStochastic:
		assigner := NewStochasticAssigner(metric, randGen)
		assigner.Trace = opts.Trace
		if opts.TraceStep > 0 {
			assigner.TraceStep = opts.TraceStep
		}
		return assigner.AssignContext(ctx, ref, tiles, opts.Generations)
	default:
		return nil, fmt.Errorf("Unknown strategy \"%s\"", opts.Strategy)
	}
}

// CreateMosaic assigns the tiles to the reference (see Options.Assign) and
// composes the mosaic image.
func CreateMosaic(ctx context.Context, ref Reference, tiles TileCollection, opts Options) (*image.RGBA, *Grid, error) {
	start := time.Now()
	grid, assignErr := opts.Assign(ctx, ref, tiles)
	if assignErr != nil {
		return nil, grid, assignErr
	}
	assigned := time.Since(start)
	mosaic, composeErr := ComposeMosaic(grid, opts.TileSize, opts.NumRoutines)
	if composeErr != nil {
		return nil, grid, composeErr
	}
	log.WithFields(log.Fields{
		"strategy": opts.Strategy,
		"cells":    grid.Size(),
		"assign":   assigned,
		"total":    time.Since(start),
	}).Info("Mosaic created")
	return mosaic, grid, nil
}
