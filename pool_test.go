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
	"math/rand"
	"testing"
)

func TestTilePoolDrawRandom(t *testing.T) {
	tiles := tilesOf(NewRGB(0, 0, 0), NewRGB(1, 1, 1), NewRGB(2, 2, 2), NewRGB(3, 3, 3))
	pool := NewTilePool(tiles, rand.New(rand.NewSource(1)))
	if pool.Len() != len(tiles) || pool.IsEmpty() {
		t.Fatalf("Expected a full pool of size %d, got %d", len(tiles), pool.Len())
	}
	seen := make(map[*Tile]bool)
	for i := 0; i < len(tiles); i++ {
		tile, err := pool.DrawRandom()
		if err != nil {
			t.Fatal(err)
		}
		if seen[tile] {
			t.Fatalf("Tile drawn twice before refill")
		}
		seen[tile] = true
		if pool.Len() != len(tiles)-i-1 {
			t.Errorf("Expected pool size %d, got %d", len(tiles)-i-1, pool.Len())
		}
	}
	if !pool.IsEmpty() {
		t.Fatal("Pool should be empty")
	}
	if _, err := pool.DrawRandom(); !errors.Is(err, ErrEmptyTileCollection) {
		t.Errorf("Expected ErrEmptyTileCollection, got %v", err)
	}
	pool.Refill()
	if pool.Len() != len(tiles) || pool.Refills() != 1 {
		t.Errorf("Expected pool of size %d after one refill, got size %d and %d refills",
			len(tiles), pool.Len(), pool.Refills())
	}
}

func TestTilePoolRefillEmptySource(t *testing.T) {
	pool := NewTilePool(nil, rand.New(rand.NewSource(1)))
	pool.Refill()
	if _, err := pool.DrawClosest(NewRGB(0, 0, 0), 5, nil); !errors.Is(err, ErrEmptyTileCollection) {
		t.Errorf("Expected ErrEmptyTileCollection, got %v", err)
	}
}

func TestTilePoolDrawClosestExact(t *testing.T) {
	tiles := tilesOf(NewRGB(255, 0, 0), NewRGB(0, 255, 0), NewRGB(0, 0, 255))
	pool := NewTilePool(tiles, rand.New(rand.NewSource(1)))
	tile, err := pool.DrawClosest(NewRGB(0, 250, 0), 1, EuclideanRGB)
	if err != nil {
		t.Fatal(err)
	}
	if tile != tiles[1] {
		t.Errorf("Expected the green tile, got %v", tile.Color)
	}
	if pool.Len() != 2 {
		t.Errorf("Expected two tiles left, got %d", pool.Len())
	}
	// green was removed, so blue or red is next
	tile, err = pool.DrawClosest(NewRGB(0, 250, 0), 1, EuclideanRGB)
	if err != nil {
		t.Fatal(err)
	}
	if tile == tiles[1] {
		t.Error("Drew a removed tile")
	}
}

func TestTilePoolDrawClosestTopK(t *testing.T) {
	var colors []RGB
	for i := 0; i < 50; i++ {
		colors = append(colors, NewRGB(uint8(i*5), 0, 0))
	}
	tiles := tilesOf(colors...)
	randGen := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		pool := NewTilePool(tiles, randGen)
		tile, err := pool.DrawClosest(NewRGB(0, 0, 0), 5, nil)
		if err != nil {
			t.Fatal(err)
		}
		if tile.Color.R >= 25 {
			t.Fatalf("Tile %v is not among the five closest", tile.Color)
		}
	}
}

func TestTilePoolDrawClosestSmallPool(t *testing.T) {
	tiles := tilesOf(NewRGB(1, 1, 1), NewRGB(2, 2, 2))
	pool := NewTilePool(tiles, rand.New(rand.NewSource(3)))
	for i := 0; i < 2; i++ {
		if _, err := pool.DrawClosest(NewRGB(0, 0, 0), DefaultTopK, nil); err != nil {
			t.Fatal(err)
		}
	}
	if !pool.IsEmpty() {
		t.Error("Pool should be empty")
	}
}

func TestTilePoolConcurrentMatchesSequential(t *testing.T) {
	randGen := rand.New(rand.NewSource(11))
	tiles := tilesOf(randomColors(randGen, 300)...)
	targets := randomColors(randGen, 100)

	sequential := NewTilePool(tiles, rand.New(rand.NewSource(5)))
	concurrent := NewTilePool(tiles, rand.New(rand.NewSource(5)))
	concurrent.NumRoutines = 4
	concurrent.ParallelThreshold = 1

	for _, target := range targets {
		t1, err1 := sequential.DrawClosest(target, 3, nil)
		t2, err2 := concurrent.DrawClosest(target, 3, nil)
		if err1 != nil || err2 != nil {
			t.Fatal(err1, err2)
		}
		if t1 != t2 {
			t.Fatalf("Concurrent draw differs from sequential draw for target %v", target)
		}
	}
}
