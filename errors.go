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
	"errors"
)

// The following errors describe conditions under which no mosaic can be
// created. They are usually wrapped with more details, use errors.Is to test
// for them.
var (
	// ErrEmptyTileCollection is returned if there is no tile to select from,
	// that is the tile collection is empty.
	ErrEmptyTileCollection = errors.New("No tiles available")

	// ErrDegenerateCoordinates is returned if there is nothing to assign, for
	// example an empty coordinate sequence or a reference of size zero.
	// It is also used for coordinates outside of the reference.
	ErrDegenerateCoordinates = errors.New("Degenerate coordinate request")

	// ErrInvalidGridState is returned if a grid is not completely filled
	// when it should be. This signals an error in the calling code.
	ErrInvalidGridState = errors.New("Invalid grid state")

	// ErrInvalidDimensions is returned if a canvas can't be created from the
	// given dimensions (for example a tile size ≤ 0).
	ErrInvalidDimensions = errors.New("Invalid dimensions")
)
