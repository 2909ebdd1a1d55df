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
	"image/color"
	"reflect"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// RGB is a color containing r, g and b components.
type RGB struct {
	R, G, B uint8
}

// NewRGB returns a new RGB color.
func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b}
}

// ConvertRGB converts a generic color into the internal RGB representation.
func ConvertRGB(c color.Color) RGB {
	// convert to rgba model
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	// convert to internal rgb representation
	return RGB{R: rgba.R, G: rgba.G, B: rgba.B}
}

// RGBA returns the color as an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// SubImager is a type that can produce a sub image from an original image.
type SubImager interface {
	SubImage(r image.Rectangle) image.Image
}

// SubImage returns a subimage of img given the boundaries r.
// The rectangle should be a valid area in the image. If the image type does
// not have a sub image method an error is returned.
func SubImage(img image.Image, r image.Rectangle) (image.Image, error) {
	imager, ok := img.(SubImager)
	if !ok {
		return nil, fmt.Errorf("Can't create sub image from type %v", reflect.TypeOf(img))
	}
	return imager.SubImage(r), nil
}

// SquareRect returns the largest square centered in r.
func SquareRect(r image.Rectangle) image.Rectangle {
	width, height := r.Dx(), r.Dy()
	switch {
	case width > height:
		x0 := r.Min.X + (width-height)/2
		return image.Rect(x0, r.Min.Y, x0+height, r.Max.Y)
	case height > width:
		y0 := r.Min.Y + (height-width)/2
		return image.Rect(r.Min.X, y0, r.Max.X, y0+width)
	default:
		return r
	}
}

// CropSquare crops the image to the largest square centered in the image.
// Images that are already square are returned unchanged.
func CropSquare(img image.Image) (image.Image, error) {
	bounds := img.Bounds()
	square := SquareRect(bounds)
	if square == bounds {
		return img, nil
	}
	return SubImage(img, square)
}

// ToRGBA draws the image into a new *image.RGBA with bounds starting at
// (0, 0). If gray is true the image is converted to gray scale first, the
// result is still an RGBA image.
func ToRGBA(img image.Image, gray bool) *image.RGBA {
	bounds := img.Bounds()
	res := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if !gray {
		draw.Draw(res, res.Bounds(), img, bounds.Min, draw.Src)
		return res
	}
	grayImg := image.NewGray(res.Bounds())
	draw.Draw(grayImg, grayImg.Bounds(), img, bounds.Min, draw.Src)
	draw.Draw(res, res.Bounds(), grayImg, image.Point{}, draw.Src)
	return res
}

// ImageResizer resizes an image to the given width and height.
type ImageResizer interface {
	Resize(width, height uint, img image.Image) image.Image
	Thumbnail(maxWidth, maxHeight uint, img image.Image) image.Image
}

// NfntResizer uses the nfnt/resize package to resize an image.
type NfntResizer struct {
	// InterP is the interpolation function to use.
	InterP resize.InterpolationFunction
}

// NewNfntResizer returns a new resizer given the interpolation function.
func NewNfntResizer(interP resize.InterpolationFunction) NfntResizer {
	return NfntResizer{interP}
}

// GetInterP returns an interpolation function given a desired quality.
// The higher the quality the better the interpolation should be, but execution
// time is higher. Currently supported are values between 0 and 5, each
// selecting a different interpolation function. Values greater than 5 are
// treated as 5.
//
// This method assumes that the interpolation functions provided by nfnt/resize
// can be sorted according to their quality. This should be a reasonable
// assumption.
func GetInterP(quality uint) resize.InterpolationFunction {
	switch quality {
	case 0:
		return resize.NearestNeighbor
	case 1:
		return resize.Bilinear
	case 2:
		return resize.Bicubic
	case 3:
		return resize.MitchellNetravali
	case 4:
		return resize.Lanczos2
	default:
		return resize.Lanczos3
	}
}

// InterPString returns a human readable name of the interpolation function.
func InterPString(interP resize.InterpolationFunction) string {
	switch interP {
	case resize.NearestNeighbor:
		return "nearest-neighbor"
	case resize.Bilinear:
		return "bilinear"
	case resize.Bicubic:
		return "bicubic"
	case resize.MitchellNetravali:
		return "mitchell-netravali"
	case resize.Lanczos2:
		return "lanczos2"
	case resize.Lanczos3:
		return "lanczos3"
	default:
		return fmt.Sprintf("InterpolationFunction(%d)", interP)
	}
}

// InterPFromString parses the names returned by InterPString.
func InterPFromString(s string) (resize.InterpolationFunction, error) {
	switch strings.ToLower(s) {
	case "nearest-neighbor", "nearest":
		return resize.NearestNeighbor, nil
	case "bilinear":
		return resize.Bilinear, nil
	case "bicubic":
		return resize.Bicubic, nil
	case "mitchell-netravali", "mitchell":
		return resize.MitchellNetravali, nil
	case "lanczos2":
		return resize.Lanczos2, nil
	case "lanczos3":
		return resize.Lanczos3, nil
	default:
		return resize.Lanczos3, fmt.Errorf("Unknown interpolation function \"%s\"", s)
	}
}

var (
	// DefaultResizer is the resizer that is used by default, if you're
	// looking for a resizer default argument this seems useful.
	DefaultResizer = NewNfntResizer(resize.MitchellNetravali)
)

// Resize calls nfnt/resize methods.
func (resizer NfntResizer) Resize(width, height uint, img image.Image) image.Image {
	return resize.Resize(width, height, img, resizer.InterP)
}

// Thumbnail scales the image down s.t. it fits in maxWidth x maxHeight while
// keeping the aspect ratio. Images that already fit are not changed.
func (resizer NfntResizer) Thumbnail(maxWidth, maxHeight uint, img image.Image) image.Image {
	return resize.Thumbnail(maxWidth, maxHeight, img, resizer.InterP)
}
