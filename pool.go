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
	"math/rand"
	"sync"
	"time"
)

// DefaultParallelThreshold is the minimal number of tiles in a pool before
// DrawClosest computes the distances concurrently.
const DefaultParallelThreshold = 5000

// TilePool is the working copy of a tile collection that is used while one
// mosaic is created. Tiles are removed from the pool once selected and the
// pool can be refilled from the (never changed) source collection.
//
// A pool is not safe for concurrent use, create one pool per mosaic.
type TilePool struct {
	source  TileCollection
	bag     []*Tile
	rand    *rand.Rand
	refills int

	// NumRoutines is the number of goroutines used to compute distances in
	// DrawClosest. Values ≤ 1 compute everything in the calling goroutine.
	NumRoutines int
	// ParallelThreshold is the minimal size of the pool before multiple
	// goroutines are used.
	ParallelThreshold int
}

// NewTilePool returns a new pool containing all tiles from source. If randGen
// is nil a new generator seeded with the current time is used.
func NewTilePool(source TileCollection, randGen *rand.Rand) *TilePool {
	if randGen == nil {
		randGen = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	pool := &TilePool{
		source:            source,
		rand:              randGen,
		NumRoutines:       1,
		ParallelThreshold: DefaultParallelThreshold,
	}
	pool.bag = make([]*Tile, 0, len(source))
	pool.bag = append(pool.bag, source...)
	return pool
}

// IsEmpty returns true if there are no tiles left in the pool.
func (pool *TilePool) IsEmpty() bool {
	return len(pool.bag) == 0
}

// Len returns the number of tiles left in the pool.
func (pool *TilePool) Len() int {
	return len(pool.bag)
}

// SourceLen returns the number of tiles in the source collection.
func (pool *TilePool) SourceLen() int {
	return len(pool.source)
}

// Refill resets the pool to a fresh copy of the source collection.
// Tiles already placed somewhere are not affected.
func (pool *TilePool) Refill() {
	pool.bag = pool.bag[:0]
	pool.bag = append(pool.bag, pool.source...)
	pool.refills++
}

// Refills returns the number of times Refill was called.
func (pool *TilePool) Refills() int {
	return pool.refills
}

// remove removes the tile at index i, the order of the bag is not preserved.
func (pool *TilePool) remove(i int) *Tile {
	last := len(pool.bag) - 1
	t := pool.bag[i]
	pool.bag[i] = pool.bag[last]
	pool.bag[last] = nil
	pool.bag = pool.bag[:last]
	return t
}

// DrawRandom removes a tile chosen uniformly at random from the pool and
// returns it. It returns ErrEmptyTileCollection if the pool is empty.
func (pool *TilePool) DrawRandom() (*Tile, error) {
	if pool.IsEmpty() {
		return nil, ErrEmptyTileCollection
	}
	return pool.remove(pool.rand.Intn(len(pool.bag))), nil
}

// DrawClosest computes the distance of each tile in the pool to target and
// selects one of the k closest tiles uniformly at random (if the pool contains
// less than k tiles one of all tiles is selected). The selected tile is
// removed from the pool and returned.
//
// A k ≤ 0 is treated as 1, a nil metric as EuclideanRGB.
// It returns ErrEmptyTileCollection if the pool is empty.
func (pool *TilePool) DrawClosest(target RGB, k int, metric ColorMetric) (*Tile, error) {
	if pool.IsEmpty() {
		return nil, ErrEmptyTileCollection
	}
	if k <= 0 {
		k = 1
	}
	metric = metricOrDefault(metric)
	var candidates *CandidateHeap
	if pool.NumRoutines > 1 && len(pool.bag) >= pool.ParallelThreshold {
		candidates = pool.closestConcurrent(target, k, metric)
	} else {
		candidates = pool.closestRange(target, k, metric, 0, len(pool.bag))
	}
	view := candidates.GetView()
	chosen := view[pool.rand.Intn(len(view))]
	return pool.remove(chosen.Index), nil
}

func (pool *TilePool) closestRange(target RGB, k int, metric ColorMetric, from, to int) *CandidateHeap {
	h := NewCandidateHeap(k)
	for i := from; i < to; i++ {
		h.Add(i, metric(target, pool.bag[i].Color))
	}
	return h
}

// closestConcurrent splits the pool in NumRoutines chunks and computes the
// k closest tiles for each chunk. The results are merged afterwards.
func (pool *TilePool) closestConcurrent(target RGB, k int, metric ColorMetric) *CandidateHeap {
	n := len(pool.bag)
	numChunks := IntMin(pool.NumRoutines, n)
	chunkSize := n / numChunks
	if n%numChunks != 0 {
		chunkSize++
	}
	partial := make([]*CandidateHeap, numChunks)
	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		from := c * chunkSize
		to := IntMin(from+chunkSize, n)
		if from >= to {
			partial[c] = NewCandidateHeap(k)
			continue
		}
		wg.Add(1)
		go func(c, from, to int) {
			defer wg.Done()
			partial[c] = pool.closestRange(target, k, metric, from, to)
		}(c, from, to)
	}
	wg.Wait()
	res := NewCandidateHeap(k)
	for _, h := range partial {
		res.Merge(h)
	}
	return res
}
