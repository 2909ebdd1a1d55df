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

// This file contains some predefined scripts that can be executed. This way
// we have some easy way to crate mosaics without requiring the user to know
// any details.

var (
	// RunGreedy contains script code that when executed loads the tiles from
	// a directory and then creates the mosaic with the greedy strategy.
	// It is parameterized by five parameters: First the directory containing
	// the tile images, second the name of the input file, third the name of the
	// output file, fourth the grid of the mosaic (see mosaic command) and last
	// the size of each tile.
	//
	// Example usage: RunGreedy ~/Pictures/ input.jpg output.png 40x30 20
	//
	// This would create output.png with 40x30 tiles from input.jpg with images
	// from ~/Pictures/. Each tile has size 20x20, so the output has size
	// 800x600.
	RunGreedy = `set tile-size $5
tiles load $1
set strategy greedy
mosaic $2 $3 $4`

	// RunStochastic is similar to RunGreedy but uses the stochastic strategy.
	//
	// Example usage: RunStochastic ~/Pictures/ input.jpg output.png 40x30 20
	RunStochastic = `set tile-size $5
tiles load $1
set strategy stochastic
mosaic $2 $3 $4`

	// CompareOrders is similar to RunGreedy but generates multiple output
	// images based on different pixel orders. Thus the third argument is not
	// a path for a file but a directory. In this directory multiple mosaics
	// will be generated.
	//
	// Example usage: CompareOrders ~/Pictures/ input.jpg ./output/ 40x30 20
	CompareOrders = `set tile-size $5
tiles load $1
set strategy greedy
set order ordered
mosaic $2 $3/mosaic-ordered.jpg $4
set order random
mosaic $2 $3/mosaic-random.jpg $4
set order darkest
mosaic $2 $3/mosaic-darkest.jpg $4
set order brightest
mosaic $2 $3/mosaic-brightest.jpg $4
set order midtone
mosaic $2 $3/mosaic-midtone.jpg $4`
)

// PredefinedScripts maps the names of the predefined scripts to the code.
var PredefinedScripts = map[string]string{
	"greedy":     RunGreedy,
	"stochastic": RunStochastic,
	"compare":    CompareOrders,
}
