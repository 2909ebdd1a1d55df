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
	"strings"
)

// Reference is the image a mosaic approximates. Each cell of the reference
// is replaced by one tile in the mosaic.
type Reference interface {
	// Width returns the number of cells in x direction.
	Width() int
	// Height returns the number of cells in y direction.
	Height() int
	// ColorAt returns the color of the cell in column x and row y.
	ColorAt(x, y int) RGB
}

// ImageReference is a reference in which each pixel of an image is a cell.
//
// Colors are converted once on creation, so ColorAt is cheap.
type ImageReference struct {
	width, height int
	colors        []RGB
}

// NewImageReference returns a reference for the pixels of img.
func NewImageReference(img image.Image) *ImageReference {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	colors := make([]RGB, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colors[y*width+x] = ConvertRGB(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return &ImageReference{width: width, height: height, colors: colors}
}

// ColorReference returns a reference given the colors of each row.
// All rows must be of the same length.
func ColorReference(rows [][]RGB) (*ImageReference, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	colors := make([]RGB, 0, width*height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrInvalidDimensions, y, len(row), width)
		}
		colors = append(colors, row...)
	}
	return &ImageReference{width: width, height: height, colors: colors}, nil
}

// Width returns the width of the image.
func (ref *ImageReference) Width() int {
	return ref.width
}

// Height returns the height of the image.
func (ref *ImageReference) Height() int {
	return ref.height
}

// ColorAt returns the color of the pixel (x, y), relative to the upper left
// corner of the image.
func (ref *ImageReference) ColorAt(x, y int) RGB {
	return ref.colors[y*ref.width+x]
}

// ResizeReference scales the query image to exactly width x height pixels
// and returns the reference for the scaled image. That is each cell
// describes the area of the query image covered by one tile.
func ResizeReference(img image.Image, width, height int, resizer ImageResizer) (*ImageReference, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: reference of size %dx%d", ErrInvalidDimensions, width, height)
	}
	if resizer == nil {
		resizer = DefaultResizer
	}
	scaled := resizer.Resize(uint(width), uint(height), img)
	return NewImageReference(scaled), nil
}

// NewBlockReference divides the image with the divider and computes the
// representative color of each block with method. The blocks become the cells
// of the reference.
func NewBlockReference(img image.Image, divider ImageDivider, method ColorMethod,
	numRoutines int) (*ImageReference, error) {
	if method == nil {
		method = AverageColor
	}
	dist := divider.Divide(img.Bounds())
	if len(dist) == 0 || len(dist[0]) == 0 {
		return nil, fmt.Errorf("%w: image can't be divided into blocks", ErrDegenerateCoordinates)
	}
	blocks, blocksErr := DivideImage(img, dist, numRoutines)
	if blocksErr != nil {
		return nil, blocksErr
	}
	rows := make([][]RGB, len(blocks))
	for y, row := range blocks {
		rows[y] = make([]RGB, len(row))
		for x, block := range row {
			rows[y][x] = method(block)
		}
	}
	return ColorReference(rows)
}

// ParseReference creates a reference for img given a description of the
// grid:
//
// "pixel" uses each pixel of img as a cell.
// "AxB" scales img to A x B pixels with resizer (see ResizeReference).
// "block:WxH" divides img into blocks of W x H pixels and uses method to
// compute the color of each block. By default remaining pixels are cropped,
// "block:WxH:adjust" and "block:WxH:pad" select another DivideMode.
// "blocks:AxB" divides img into A x B blocks, the last block in each row and
// column gets the remaining pixels.
func ParseReference(img image.Image, s string, resizer ImageResizer, method ColorMethod,
	numRoutines int) (*ImageReference, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "pixel":
		ref := NewImageReference(img)
		if ref.Width() == 0 || ref.Height() == 0 {
			return nil, fmt.Errorf("%w: image is empty", ErrDegenerateCoordinates)
		}
		return ref, nil
	case strings.HasPrefix(s, "blocks:"):
		numX, numY, parseErr := ParseDimensions(s[len("blocks:"):])
		if parseErr != nil {
			return nil, parseErr
		}
		if numX == 0 || numY == 0 {
			return nil, fmt.Errorf("%w: %dx%d blocks", ErrInvalidDimensions, numX, numY)
		}
		return NewBlockReference(img, NewFixedNumDivider(numX, numY, false), method, numRoutines)
	case strings.HasPrefix(s, "block:"):
		spec := s[len("block:"):]
		mode := DivideCrop
		if i := strings.Index(spec, ":"); i >= 0 {
			var modeErr error
			mode, modeErr = ParseDivideMode(spec[i+1:])
			if modeErr != nil {
				return nil, modeErr
			}
			spec = spec[:i]
		}
		width, height, parseErr := ParseDimensions(spec)
		if parseErr != nil {
			return nil, parseErr
		}
		if width == 0 || height == 0 {
			return nil, fmt.Errorf("%w: block size %dx%d", ErrInvalidDimensions, width, height)
		}
		return NewBlockReference(img, NewFixedSizeDivider(width, height, mode), method, numRoutines)
	default:
		width, height, parseErr := ParseDimensions(s)
		if parseErr != nil {
			return nil, parseErr
		}
		return ResizeReference(img, width, height, resizer)
	}
}
