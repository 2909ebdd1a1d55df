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
	"os"
	"runtime"

	// supported formats
	_ "image/jpeg"
	_ "image/png"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// LoadOptions describes how images are turned into tiles.
type LoadOptions struct {
	// TileSize is the maximal width and height of a tile.
	TileSize int
	// Color is false if tiles should be converted to gray scale.
	Color bool
	// Method computes the representative color, nil means AverageColor.
	Method ColorMethod
	// Resizer is used to create thumbnails, nil means DefaultResizer.
	Resizer ImageResizer
}

// DefaultLoadOptions returns colored tiles of the given size, using the
// average color and DefaultResizer.
func DefaultLoadOptions(tileSize int) LoadOptions {
	return LoadOptions{
		TileSize: tileSize,
		Color:    true,
		Method:   AverageColor,
		Resizer:  DefaultResizer,
	}
}

// LoadImage reads an image from the filesystem.
func LoadImage(path string) (image.Image, error) {
	r, openErr := os.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer r.Close()
	img, _, decodeErr := image.Decode(r)
	if decodeErr != nil {
		return nil, fmt.Errorf("Can't decode %s: %w", path, decodeErr)
	}
	return img, nil
}

// PrepareTile turns an image into a tile: The image is cropped to a square
// in its center, scaled down to at most TileSize x TileSize, converted to
// gray scale if Color is false and then the representative color is
// computed.
func PrepareTile(img image.Image, path string, opts LoadOptions) (*Tile, error) {
	if opts.TileSize <= 0 {
		return nil, fmt.Errorf("%w: tile size must be positive, got %d",
			ErrInvalidDimensions, opts.TileSize)
	}
	resizer := opts.Resizer
	if resizer == nil {
		resizer = DefaultResizer
	}
	method := opts.Method
	if method == nil {
		method = AverageColor
	}
	square, cropErr := CropSquare(img)
	if cropErr != nil {
		return nil, cropErr
	}
	size := uint(opts.TileSize)
	thumb := resizer.Thumbnail(size, size, square)
	rgba := ToRGBA(thumb, !opts.Color)
	return NewTile(rgba, method(rgba), path), nil
}

// LoadTile reads the image from path and prepares it, see PrepareTile.
func LoadTile(path string, opts LoadOptions) (*Tile, error) {
	img, loadErr := LoadImage(path)
	if loadErr != nil {
		return nil, loadErr
	}
	return PrepareTile(img, path, opts)
}

// LoadTiles loads all images concurrently, the result has the same order as
// paths. numRoutines is the number of images loaded at the same time, if it
// is ≤ 0 runtime.NumCPU() is used.
// Progress is called after each loaded image with the number of images
// loaded so far, it may be nil.
//
// The first error stops the loading and is returned.
func LoadTiles(ctx context.Context, paths []string, opts LoadOptions, numRoutines int,
	progress ProgressFunc) (TileCollection, error) {
	if numRoutines <= 0 {
		numRoutines = runtime.NumCPU()
	}
	if progress == nil {
		progress = ProgressIgnore
	}
	res := make(TileCollection, len(paths))
	done := make(chan struct{}, BufferSize)
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		num := 0
		for range done {
			num++
			progress(num)
		}
	}()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numRoutines)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			tile, loadErr := LoadTile(path, opts)
			if loadErr != nil {
				return loadErr
			}
			res[i] = tile
			done <- struct{}{}
			return nil
		})
	}
	err := g.Wait()
	close(done)
	<-progressDone
	if err != nil {
		return nil, err
	}
	log.WithField("tiles", len(res)).Debug("Tiles loaded")
	return res, nil
}

// LoadTileDir lists all images in dir (see ListImages) and loads them with
// LoadTiles.
func LoadTileDir(ctx context.Context, dir string, recursive bool, filter FileFilter,
	opts LoadOptions, numRoutines int, progress ProgressFunc) (TileCollection, error) {
	paths, listErr := ListImages(dir, recursive, filter)
	if listErr != nil {
		return nil, listErr
	}
	return LoadTiles(ctx, paths, opts, numRoutines, progress)
}
