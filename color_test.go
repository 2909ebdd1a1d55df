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
	"image/color"
	"math"
	"testing"
)

func TestAverageColor(t *testing.T) {
	if got := AverageColor(solidImage(3, 3, NewRGB(10, 20, 30))); got != NewRGB(10, 20, 30) {
		t.Errorf("Expected (10, 20, 30), got %v", got)
	}
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{255, 255, 1, 255})
	// values are truncated
	if got := AverageColor(img); got != NewRGB(127, 127, 0) {
		t.Errorf("Expected (127, 127, 0), got %v", got)
	}
	if got := AverageColor(image.NewRGBA(image.Rectangle{})); got != (RGB{}) {
		t.Errorf("Expected black for empty image, got %v", got)
	}
}

func TestCommonestColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(2, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(3, 0, color.RGBA{255, 0, 0, 255})
	if got := CommonestColor(img); got != NewRGB(255, 0, 0) {
		t.Errorf("Expected red, got %v", got)
	}
	tie := image.NewRGBA(image.Rect(0, 0, 2, 1))
	tie.SetRGBA(0, 0, color.RGBA{0, 0, 255, 255})
	tie.SetRGBA(1, 0, color.RGBA{0, 1, 0, 255})
	if got := CommonestColor(tie); got != NewRGB(0, 1, 0) {
		t.Errorf("Expected the greater color on ties, got %v", got)
	}
}

func TestPerceivedLuminance(t *testing.T) {
	if got := PerceivedLuminance(NewRGB(0, 0, 0)); got != 0 {
		t.Errorf("Expected 0 for black, got %f", got)
	}
	if got := PerceivedLuminance(NewRGB(255, 255, 255)); math.Abs(got-255) > 1e-6 {
		t.Errorf("Expected 255 for white, got %f", got)
	}
	if PerceivedLuminance(NewRGB(0, 255, 0)) <= PerceivedLuminance(NewRGB(0, 0, 255)) {
		t.Error("Green must be brighter than blue")
	}
}

func TestColorMethodRegistry(t *testing.T) {
	for _, name := range []string{"average", "commonest"} {
		if _, has := GetColorMethod(name); !has {
			t.Errorf("Color method %s not registered", name)
		}
	}
}
