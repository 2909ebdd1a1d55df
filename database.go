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
	"os"
	"path/filepath"
	"strings"
)

// FileFilter decides whether a file (given by its name) should be used as a
// tile.
type FileFilter func(name string) bool

// JPGAndPNG accepts files with the extension .jpg, .jpeg or .png (ignoring
// case).
func JPGAndPNG(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

// GlobFilter returns a filter that matches the base name of a file against a
// shell pattern, see filepath.Match for the syntax. An invalid pattern matches
// nothing.
func GlobFilter(pattern string) FileFilter {
	return func(name string) bool {
		matched, err := filepath.Match(pattern, filepath.Base(name))
		return err == nil && matched
	}
}

// AllFilters returns a filter that accepts a file only if all filters
// accept it. Nil filters are ignored.
func AllFilters(filters ...FileFilter) FileFilter {
	return func(name string) bool {
		for _, f := range filters {
			if f != nil && !f(name) {
				return false
			}
		}
		return true
	}
}

// ListImages returns the paths of all files in root accepted by filter (if
// filter is nil JPGAndPNG is used). If recursive is true subdirectories are
// searched as well. The paths are absolute and in lexical order.
func ListImages(root string, recursive bool, filter FileFilter) ([]string, error) {
	root, absErr := filepath.Abs(root)
	if absErr != nil {
		return nil, absErr
	}
	if filter == nil {
		filter = JPGAndPNG
	}
	if recursive {
		return listRecursive(root, filter)
	}
	return listNonRecursive(root, filter)
}

func listRecursive(root string, filter FileFilter) ([]string, error) {
	var result []string
	walkFunc := func(path string, info os.FileInfo, err error) error {
		switch {
		case err != nil:
			return err
		case !info.IsDir() && filter(info.Name()):
			result = append(result, path)
			return nil
		default:
			return nil
		}
	}
	if err := filepath.Walk(root, walkFunc); err != nil {
		return nil, err
	}
	return result, nil
}

func listNonRecursive(root string, filter FileFilter) ([]string, error) {
	files, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var result []string
	for _, file := range files {
		if !file.IsDir() && filter(file.Name()) {
			result = append(result, filepath.Join(root, file.Name()))
		}
	}
	return result, nil
}
