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
	"testing"
)

func TestCandidateHeapBound(t *testing.T) {
	h := NewCandidateHeap(3)
	values := []float64{5, 1, 4, 2, 8, 3}
	for i, v := range values {
		h.Add(i, v)
	}
	view := h.GetView()
	if len(view) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(view))
	}
	expected := []CandidateEntry{{1, 1}, {3, 2}, {5, 3}}
	for i, e := range expected {
		if view[i] != e {
			t.Errorf("Expected entry %v at position %d, got %v", e, i, view[i])
		}
	}
}

func TestCandidateHeapTies(t *testing.T) {
	h := NewCandidateHeap(2)
	for i := 0; i < 5; i++ {
		h.Add(i, 1)
	}
	view := h.GetView()
	if len(view) != 2 || view[0].Index != 0 || view[1].Index != 1 {
		t.Errorf("Expected the two smallest indexes among equal values, got %v", view)
	}
}

func TestCandidateHeapUnbounded(t *testing.T) {
	h := NewCandidateHeap(-1)
	for i := 0; i < 200; i++ {
		h.Add(i, float64(200-i))
	}
	view := h.GetView()
	if len(view) != 200 {
		t.Fatalf("Expected 200 entries, got %d", len(view))
	}
	for i := 1; i < len(view); i++ {
		if view[i-1].Value > view[i].Value {
			t.Fatalf("View not sorted at position %d", i)
		}
	}
}

func TestCandidateHeapZero(t *testing.T) {
	h := NewCandidateHeap(0)
	h.Add(0, 1)
	if h.Len() != 0 {
		t.Errorf("Heap with bound 0 must be empty, got %d entries", h.Len())
	}
}

func TestCandidateHeapMerge(t *testing.T) {
	h1, h2 := NewCandidateHeap(2), NewCandidateHeap(2)
	h1.Add(0, 4)
	h1.Add(1, 2)
	h2.Add(2, 1)
	h2.Add(3, 3)
	h1.Merge(h2)
	view := h1.GetView()
	if len(view) != 2 || view[0].Index != 2 || view[1].Index != 1 {
		t.Errorf("Unexpected merge result %v", view)
	}
}
