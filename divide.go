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

import (
	"fmt"
	"image"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DivideMode describes what to do with remaining pixels when an image is
// divided into blocks of fixed size.
// Consider an image with a width of 99 pixels divided into blocks of 10
// pixels: 9 pixels are left. DivideCrop discards them, DivideAdjust adds a
// last block of width 9 and DividePad adds a block of width 10 that exceeds
// the image.
type DivideMode int

const (
	// DivideCrop is the mode in which remaining pixels are discarded.
	DivideCrop DivideMode = iota
	// DivideAdjust is the mode in which a block is adjusted to the remaining
	// pixels.
	DivideAdjust
	// DividePad is the mode in which a block of a certain size is created even
	// if not enough pixels are remaining.
	DividePad
)

func (mode DivideMode) String() string {
	switch mode {
	case DivideCrop:
		return "DivideCrop"
	case DivideAdjust:
		return "DivideAdjust"
	case DividePad:
		return "DividePad"
	default:
		return fmt.Sprintf("DivideMode(%d)", mode)
	}
}

// ParseDivideMode parses "crop", "adjust" or "pad".
func ParseDivideMode(s string) (DivideMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crop":
		return DivideCrop, nil
	case "adjust":
		return DivideAdjust, nil
	case "pad":
		return DividePad, nil
	default:
		return DivideCrop, fmt.Errorf("Unknown divide mode \"%s\", expected crop, adjust or pad", s)
	}
}

// TileDivision represents the divison of an image into rectangles, stored as
// [y][x].
type TileDivision [][]image.Rectangle

// Get returns the rectangle in row y and column x.
func (div TileDivision) Get(x, y int) image.Rectangle {
	return div[y][x]
}

// Size returns the number of rectangles in the division.
func (div TileDivision) Size() int {
	res := 0
	for _, row := range div {
		res += len(row)
	}
	return res
}

// ImageDivider divides an image into blocks. The result is a matrix of
// rectangles, each row having the same length. Rectangles are not required to
// lie inside the image. The result may be empty (or nil).
type ImageDivider interface {
	Divide(image.Rectangle) TileDivision
}

// FixedSizeDivider divides an image into blocks where each block has the
// given width and height. It implements ImageDivider.
type FixedSizeDivider struct {
	Width, Height int
	Mode          DivideMode
}

// NewFixedSizeDivider returns a new FixedSizeDivider.
func NewFixedSizeDivider(width, height int, mode DivideMode) FixedSizeDivider {
	return FixedSizeDivider{Width: width, Height: height, Mode: mode}
}

func (divider FixedSizeDivider) getSize(originalDimension, tileDimension int) int {
	switch {
	case tileDimension > originalDimension, tileDimension <= 0:
		return 1
	case originalDimension%tileDimension == 0:
		return originalDimension / tileDimension
	default:
		switch divider.Mode {
		case DivideCrop:
			return originalDimension / tileDimension
		default:
			return (originalDimension / tileDimension) + 1
		}
	}
}

func (divider FixedSizeDivider) outerBound(imgBoundPosition, position int) int {
	switch {
	case position <= imgBoundPosition:
		return position
	case divider.Mode == DivideAdjust:
		return imgBoundPosition
	default:
		// now mode must be DividePad, for crop we should never end up here
		if Debug && divider.Mode != DividePad {
			log.WithFields(log.Fields{
				"mode":     divider.Mode,
				"expected": DividePad,
			}).Warn("Unexpected divide mode")
		}
		return position
	}
}

// Divide implements the Divide method of ImageDivider.
func (divider FixedSizeDivider) Divide(bounds image.Rectangle) TileDivision {
	// no division possible if bounds are empty
	if bounds.Empty() || divider.Width <= 0 || divider.Height <= 0 {
		return nil
	}
	imgWidth := bounds.Dx()
	imgHeight := bounds.Dy()

	numRows := divider.getSize(imgHeight, divider.Height)
	numCols := divider.getSize(imgWidth, divider.Width)
	res := make(TileDivision, numRows)
	for i := 0; i < numRows; i++ {
		res[i] = make([]image.Rectangle, numCols)
		for j := 0; j < numCols; j++ {
			x0 := bounds.Min.X + j*divider.Width
			y0 := bounds.Min.Y + i*divider.Height
			x1 := divider.outerBound(bounds.Max.X, x0+divider.Width)
			y1 := divider.outerBound(bounds.Max.Y, y0+divider.Height)
			res[i][j] = image.Rect(x0, y0, x1, y1)
		}
	}
	return res
}

// FixedNumDivider is an ImageDivider that divides an image into a given number
// of blocks.
// If Cut is true the pixels that remain after dividing the width (height) by
// NumX (NumY) are discarded, otherwise the last block in each row (column)
// is enlarged.
type FixedNumDivider struct {
	NumX, NumY int
	Cut        bool
}

// NewFixedNumDivider returns a new FixedNumDivider given the number of blocks
// in x and y direction.
func NewFixedNumDivider(numX, numY int, cut bool) *FixedNumDivider {
	return &FixedNumDivider{NumX: numX, NumY: numY, Cut: cut}
}

func (divider *FixedNumDivider) outerBound(divisionNum, index, imgBound, value int) int {
	if index+1 == divisionNum && !divider.Cut {
		return imgBound
	}
	return value
}

// Divide implements the Divide method of ImageDivider.
func (divider *FixedNumDivider) Divide(bounds image.Rectangle) TileDivision {
	if bounds.Empty() || divider.NumX <= 0 || divider.NumY <= 0 {
		return nil
	}
	// images that are too small still get blocks of size one
	tileWidth := IntMax(bounds.Dx()/divider.NumX, 1)
	tileHeight := IntMax(bounds.Dy()/divider.NumY, 1)
	numRows := divider.NumY
	numCols := divider.NumX
	res := make(TileDivision, numRows)
	for i := 0; i < numRows; i++ {
		res[i] = make([]image.Rectangle, numCols)
		for j := 0; j < numCols; j++ {
			x0 := bounds.Min.X + j*tileWidth
			y0 := bounds.Min.Y + i*tileHeight
			x1 := divider.outerBound(numCols, j, bounds.Max.X, x0+tileWidth)
			y1 := divider.outerBound(numRows, i, bounds.Max.Y, y0+tileHeight)
			res[i][j] = image.Rect(x0, y0, x1, y1)
		}
	}
	return res
}

// DivideImage computes the actual blocks from an image and the distribution
// into rectangles. Each rectangle is intersected with the image bounds first,
// thus blocks may be smaller than the rectangles (or even empty).
func DivideImage(img image.Image, distribution TileDivision, numRoutines int) ([][]image.Image, error) {
	if numRoutines <= 0 {
		numRoutines = 1
	}
	bounds := img.Bounds()
	res := make([][]image.Image, len(distribution))
	for i, row := range distribution {
		res[i] = make([]image.Image, len(row))
	}
	// first error that occurs
	var err error

	type job struct {
		i, j int
	}

	jobs := make(chan job, BufferSize)
	errorChan := make(chan error, BufferSize)

	for w := 0; w < numRoutines; w++ {
		go func() {
			for next := range jobs {
				r := distribution[next.i][next.j].Intersect(bounds)
				subImg, subErr := SubImage(img, r)
				res[next.i][next.j] = subImg
				errorChan <- subErr
			}
		}()
	}
	go func() {
		for i, row := range distribution {
			for j := range row {
				jobs <- job{i, j}
			}
		}
		close(jobs)
	}()
	for i := 0; i < distribution.Size(); i++ {
		nextErr := <-errorChan
		if nextErr != nil && err == nil {
			err = nextErr
		}
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
