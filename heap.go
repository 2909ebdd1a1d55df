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
	"container/heap"
)

// CandidateEntry is an entry stored in a candidate heap. It consists of a
// position (for example the index of a tile in a pool) and the distance of
// that entry to some target.
type CandidateEntry struct {
	Index int
	Value float64
}

// NewCandidateEntry returns a new heap entry.
func NewCandidateEntry(index int, value float64) CandidateEntry {
	return CandidateEntry{index, value}
}

// candidateHeapInterface is an internal type that implements heap.Interface.
// We actually hide the implementation details and just allow Add operations.
// The entry with the greatest value is on top, so truncating the heap drops
// the worst candidate.
type candidateHeapInterface []CandidateEntry

func newCandidateHeapInterface(bound int) *candidateHeapInterface {
	capacity := bound + 1
	if bound < 0 {
		capacity = 100
	}
	res := make(candidateHeapInterface, 0, capacity)
	return &res
}

func (h candidateHeapInterface) Len() int {
	return len(h)
}

func (h candidateHeapInterface) Less(i, j int) bool {
	if h[i].Value == h[j].Value {
		// among equal values the later index is dropped first
		return h[i].Index > h[j].Index
	}
	return h[i].Value > h[j].Value
}

func (h candidateHeapInterface) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *candidateHeapInterface) Push(x interface{}) {
	*h = append(*h, x.(CandidateEntry))
}

func (h *candidateHeapInterface) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// CandidateHeap is a container that stores candidates sorted according to a
// float value. If a bound is given only the bound smallest candidates are
// kept.
type CandidateHeap struct {
	interf *candidateHeapInterface
	bound  int
}

// NewCandidateHeap returns a new candidate heap with a given bound. If
// bound ≥ 0 it is used as the upper limit of entries stored in the heap. That
// is only the bound smallest entries are stored. A negative bound stores all
// entries.
func NewCandidateHeap(bound int) *CandidateHeap {
	interf := newCandidateHeapInterface(bound)
	return &CandidateHeap{interf, bound}
}

// Len returns the number of entries currently stored.
func (h *CandidateHeap) Len() int {
	return h.interf.Len()
}

// AddEntry adds a new entry to the heap, truncating the heap if bound is ≥ 0.
func (h *CandidateHeap) AddEntry(entry CandidateEntry) {
	if h.bound == 0 {
		return
	}
	if h.bound > 0 && h.interf.Len() == h.bound {
		top := (*h.interf)[0]
		if entry.Value > top.Value || (entry.Value == top.Value && entry.Index > top.Index) {
			return
		}
	}
	heap.Push(h.interf, entry)
	if h.bound > 0 {
		for h.interf.Len() > h.bound {
			heap.Pop(h.interf)
		}
	}
}

// Add is a shortcut for AddEntry.
func (h *CandidateHeap) Add(index int, value float64) {
	h.AddEntry(NewCandidateEntry(index, value))
}

// Merge adds all entries from other to h.
func (h *CandidateHeap) Merge(other *CandidateHeap) {
	for _, entry := range *other.interf {
		h.AddEntry(entry)
	}
}

// GetView returns the sorted collection of entries in the heap, that is
// entries with smallest values first. The length of the result slice is
// between 0 and bound.
// The complexity is O(n * log(n)) where n is the size of the heap.
func (h *CandidateHeap) GetView() []CandidateEntry {
	n := h.interf.Len()
	tmp := make(candidateHeapInterface, n)
	copy(tmp, *h.interf)
	res := make([]CandidateEntry, n)
	for i := 0; i < n; i++ {
		x := heap.Pop(&tmp).(CandidateEntry)
		res[n-i-1] = x
	}
	return res
}
