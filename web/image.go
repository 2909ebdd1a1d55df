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

package web

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
)

// EncodePNG returns the base64 encoding of the image as png.
func EncodePNG(img image.Image) (string, error) {
	var w strings.Builder
	encoder := base64.NewEncoder(base64.StdEncoding, &w)
	err := png.Encode(encoder, img)
	if err != nil {
		return "", err
	}
	err = encoder.Close()
	if err != nil {
		return "", err
	}
	return w.String(), nil
}

// EncodeJPEG returns the base64 encoding of the image as jpeg.
func EncodeJPEG(img image.Image, quality int) (string, error) {
	var w strings.Builder
	encoder := base64.NewEncoder(base64.StdEncoding, &w)
	err := jpeg.Encode(encoder, img, &jpeg.Options{Quality: quality})
	if err != nil {
		return "", err
	}
	err = encoder.Close()
	if err != nil {
		return "", err
	}
	return w.String(), nil
}

// EncodeImage encodes the image in the given format ("png" or "jpeg") and
// returns the base64 encoding together with the mime type.
func EncodeImage(img image.Image, format string, quality int) (string, string, error) {
	switch strings.ToLower(format) {
	case "png", "":
		enc, err := EncodePNG(img)
		return enc, "image/png", err
	case "jpeg", "jpg":
		enc, err := EncodeJPEG(img, quality)
		return enc, "image/jpeg", err
	default:
		return "", "", fmt.Errorf("Unsupported image format \"%s\"", format)
	}
}
