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
	"bytes"
	"testing"
)

func TestStdProgressFunc(t *testing.T) {
	var buf bytes.Buffer
	progress := StdProgressFunc(&buf, "", 4, 2)
	for i := 1; i <= 4; i++ {
		progress(i)
	}
	expected := "Progress: 2 of 4 (50.0%)\nProgress: 4 of 4 (100.0%)\n"
	if got := buf.String(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
	buf.Reset()
	StdProgressFunc(&buf, "x", 4, 0)(2)
	if buf.Len() != 0 {
		t.Errorf("Expected no output for step 0, got %q", buf.String())
	}
}

func TestKeepRatio(t *testing.T) {
	if h := KeepRatioHeight(800, 600, 40); h != 30 {
		t.Errorf("Expected height 30, got %d", h)
	}
	if w := KeepRatioWidth(800, 400, 30); w != 60 {
		t.Errorf("Expected width 60, got %d", w)
	}
}

func TestIntHelpers(t *testing.T) {
	if IntMin(3, -1) != -1 || IntMax(3, -1) != 3 || IntAbs(-5) != 5 || IntAbs(5) != 5 {
		t.Error("Integer helpers return wrong results")
	}
}
