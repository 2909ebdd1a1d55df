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
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, width, height int, c RGB) {
	t.Helper()
	f, createErr := os.Create(path)
	if createErr != nil {
		t.Fatal(createErr)
	}
	defer f.Close()
	if encErr := png.Encode(f, solidImage(width, height, c)); encErr != nil {
		t.Fatal(encErr)
	}
}

func closeColor(a, b RGB, tolerance int) bool {
	return IntAbs(int(a.R)-int(b.R)) <= tolerance &&
		IntAbs(int(a.G)-int(b.G)) <= tolerance &&
		IntAbs(int(a.B)-int(b.B)) <= tolerance
}

func TestLoadTile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tile.png")
	c := NewRGB(200, 30, 90)
	writePNG(t, path, 40, 30, c)

	tile, loadErr := LoadTile(path, DefaultLoadOptions(20))
	if loadErr != nil {
		t.Fatal(loadErr)
	}
	bounds := tile.Image.Bounds()
	if bounds.Dx() != 20 || bounds.Dy() != 20 {
		t.Errorf("Expected 20x20 tile, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	if !closeColor(tile.Color, c, 2) {
		t.Errorf("Expected color close to %v, got %v", c, tile.Color)
	}
	if tile.Path != path {
		t.Errorf("Expected path %s, got %s", path, tile.Path)
	}

	opts := DefaultLoadOptions(10)
	opts.Color = false
	gray, grayErr := LoadTile(path, opts)
	if grayErr != nil {
		t.Fatal(grayErr)
	}
	if gray.Color.R != gray.Color.G || gray.Color.G != gray.Color.B {
		t.Errorf("Expected gray color, got %v", gray.Color)
	}
}

func TestLoadTileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTile(bad, DefaultLoadOptions(10)); err == nil {
		t.Error("Expected error for invalid image")
	}
	if _, err := LoadTile(filepath.Join(dir, "missing.png"), DefaultLoadOptions(10)); err == nil {
		t.Error("Expected error for missing file")
	}
	writePNG(t, filepath.Join(dir, "ok.png"), 4, 4, NewRGB(1, 2, 3))
	if _, err := LoadTile(filepath.Join(dir, "ok.png"), DefaultLoadOptions(0)); err == nil {
		t.Error("Expected error for tile size 0")
	}
	_, loadErr := LoadTiles(context.Background(), []string{filepath.Join(dir, "ok.png"), bad},
		DefaultLoadOptions(4), 2, nil)
	if loadErr == nil {
		t.Error("Expected LoadTiles to fail on invalid image")
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "b.png"), 2, 2, RGB{})
	writePNG(t, filepath.Join(dir, "a.PNG"), 2, 2, RGB{})
	writePNG(t, filepath.Join(sub, "c.png"), 2, 2, RGB{})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	flat, flatErr := ListImages(dir, false, nil)
	if flatErr != nil {
		t.Fatal(flatErr)
	}
	if len(flat) != 2 || filepath.Base(flat[0]) != "a.PNG" || filepath.Base(flat[1]) != "b.png" {
		t.Errorf("Expected a.PNG and b.png, got %v", flat)
	}
	for _, p := range flat {
		if !filepath.IsAbs(p) {
			t.Errorf("Expected absolute path, got %s", p)
		}
	}

	all, allErr := ListImages(dir, true, nil)
	if allErr != nil {
		t.Fatal(allErr)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 images in recursive mode, got %v", all)
	}

	glob, globErr := ListImages(dir, true, AllFilters(JPGAndPNG, GlobFilter("[bc]*")))
	if globErr != nil {
		t.Fatal(globErr)
	}
	if len(glob) != 2 {
		t.Errorf("Expected b.png and c.png, got %v", glob)
	}
}

func TestLoadTileDir(t *testing.T) {
	dir := t.TempDir()
	colors := []RGB{NewRGB(255, 0, 0), NewRGB(0, 255, 0), NewRGB(0, 0, 255)}
	names := []string{"0.png", "1.png", "2.png"}
	for i, c := range colors {
		writePNG(t, filepath.Join(dir, names[i]), 8, 8, c)
	}
	calls := 0
	tiles, loadErr := LoadTileDir(context.Background(), dir, false, nil, DefaultLoadOptions(4), 2,
		func(num int) { calls++ })
	if loadErr != nil {
		t.Fatal(loadErr)
	}
	if len(tiles) != 3 {
		t.Fatalf("Expected 3 tiles, got %d", len(tiles))
	}
	for i, tile := range tiles {
		if filepath.Base(tile.Path) != names[i] {
			t.Errorf("Expected tile %d from %s, got %s", i, names[i], tile.Path)
		}
		if !closeColor(tile.Color, colors[i], 2) {
			t.Errorf("Expected color close to %v, got %v", colors[i], tile.Color)
		}
	}
	if calls != 3 {
		t.Errorf("Expected 3 progress calls, got %d", calls)
	}
}
