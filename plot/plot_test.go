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
package plot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTraceRecorder(t *testing.T) {
	rec := NewTraceRecorder()
	rec.Record(0, 100)
	rec.Record(10, 50)
	if rec.Len() != 2 {
		t.Fatalf("Expected 2 samples, got %d", rec.Len())
	}
	samples := rec.Samples()
	if samples[1].Generation != 10 || samples[1].Error != 50 {
		t.Errorf("Unexpected sample %v", samples[1])
	}
}

func TestWriteErrorCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.png")
	samples := []Sample{{0, 100}, {10, 80}, {20, 75}, {30, 75}}
	if err := WriteErrorCurve(path, samples); err != nil {
		t.Fatal(err)
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		t.Fatal(statErr)
	}
	if info.Size() == 0 {
		t.Error("Plot file is empty")
	}
}

func TestWriteErrorCurveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.png")
	if err := WriteErrorCurve(path, nil); err != ErrNoSamples {
		t.Errorf("Expected ErrNoSamples, got %v", err)
	}
}
