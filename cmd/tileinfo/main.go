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

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/FabianWe/mosaicify"
)

// Prints the representative colors of an image prepared as a tile.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:", os.Args[0], "<IMAGE> [tile-size]")
		os.Exit(1)
	}
	tileSize := 50
	if len(os.Args) > 2 {
		var sizeErr error
		tileSize, sizeErr = strconv.Atoi(os.Args[2])
		if sizeErr != nil || tileSize <= 0 {
			fmt.Println("Invalid tile size:", os.Args[2])
			os.Exit(1)
		}
	}
	start := time.Now()
	tile, loadErr := mosaicify.LoadTile(os.Args[1], mosaicify.DefaultLoadOptions(tileSize))
	if loadErr != nil {
		fmt.Println("Error loading image:")
		fmt.Println(loadErr)
		os.Exit(1)
	}
	execTime := time.Since(start)
	bounds := tile.Image.Bounds()
	fmt.Printf("Tile size: %dx%d\n", bounds.Dx(), bounds.Dy())
	fmt.Println("Average color:", tile.Color)
	commonest := mosaicify.CommonestColor(tile.Image)
	fmt.Println("Commonest color:", commonest)
	fmt.Printf("Perceived luminance: %.2f\n", mosaicify.PerceivedLuminance(tile.Color))
	fmt.Println("Done after", execTime)
}
