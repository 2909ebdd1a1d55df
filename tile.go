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
)

// Tile is a source image prepared for the mosaic: it is already cropped and
// scaled to the tile size and has a representative color.
//
// Tiles are never changed once loaded. Grids and pools share pointers to the
// tiles of a collection.
type Tile struct {
	Image image.Image
	Color RGB
	// Path is the file the tile was loaded from, it may be empty.
	Path string
}

// NewTile returns a new tile.
func NewTile(img image.Image, c RGB, path string) *Tile {
	return &Tile{Image: img, Color: c, Path: path}
}

// TileCollection is the list of all loaded tiles.
type TileCollection []*Tile
