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
package web

import (
	"testing"
	"time"
)

func TestConnectionIDRoundTrip(t *testing.T) {
	id, genErr := GenConnectionID()
	if genErr != nil {
		t.Fatal(genErr)
	}
	parsed, parseErr := ParseConnectionID(id.String())
	if parseErr != nil {
		t.Fatal(parseErr)
	}
	if parsed != id {
		t.Errorf("Expected %s, got %s", id, parsed)
	}
	if _, err := ParseConnectionID("not-an-id"); err == nil {
		t.Error("Expected error for invalid id")
	}
}

func TestStateExpired(t *testing.T) {
	state := NewState()
	now := time.Now().UTC()
	state.Touch(now)
	if state.Expired(now.Add(time.Minute), time.Hour) {
		t.Error("State should not expire after one minute")
	}
	if !state.Expired(now.Add(2*time.Hour), time.Hour) {
		t.Error("State should expire after two hours")
	}
}

func TestMemStorage(t *testing.T) {
	storage := NewMemStorage()
	id, _ := GenConnectionID()
	if _, err := storage.Get(id); err != ErrConnNotFound {
		t.Errorf("Expected ErrConnNotFound, got %v", err)
	}
	state := NewState()
	storage.Set(id, state)
	got, getErr := storage.Get(id)
	if getErr != nil || got != state {
		t.Fatalf("Expected stored state, got %v (%v)", got, getErr)
	}

	old, _ := GenConnectionID()
	oldState := NewState()
	oldState.Touch(time.Now().UTC().Add(-2 * time.Hour))
	storage.Set(old, oldState)
	if storage.Len() != 2 {
		t.Fatalf("Expected 2 connections, got %d", storage.Len())
	}
	storage.Filter(time.Hour)
	if storage.Len() != 1 {
		t.Fatalf("Expected 1 connection after filter, got %d", storage.Len())
	}
	if _, err := storage.Get(old); err != ErrConnNotFound {
		t.Error("Expected expired connection to be removed")
	}
	storage.Delete(id)
	if storage.Len() != 0 {
		t.Errorf("Expected empty storage, got %d", storage.Len())
	}
}

func TestRunFilter(t *testing.T) {
	storage := NewMemStorage()
	id, _ := GenConnectionID()
	state := NewState()
	state.Touch(time.Now().UTC().Add(-time.Hour))
	storage.Set(id, state)
	done := RunFilter(storage, time.Minute, 5*time.Millisecond)
	defer close(done)
	deadline := time.Now().Add(5 * time.Second)
	for storage.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Connection was not removed by RunFilter")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStateOptions(t *testing.T) {
	state := NewState()
	opts := state.Options(12, 3)
	if opts.TileSize != 12 || opts.NumRoutines != 3 || opts.Generations != 100000 {
		t.Errorf("Unexpected options %+v", opts)
	}
	format, quality, _ := state.Encoding()
	if format != "png" || quality != 100 {
		t.Errorf("Unexpected encoding %s %d", format, quality)
	}
}
