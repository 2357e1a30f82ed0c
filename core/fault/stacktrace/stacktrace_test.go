// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stacktrace_test

import (
	"testing"

	"github.com/google/gfx-retrace/core/assert"
	"github.com/google/gfx-retrace/core/fault/stacktrace"
	"github.com/google/gfx-retrace/core/log"
)

func nestedCapture() []stacktrace.Entry { return stacktrace.Capture().All() }

func TestCapture(t *testing.T) {
	ctx := log.Testing(t)
	entries := nestedCapture()
	assert.For(ctx, "non-empty capture").That(len(entries) > 0).IsTrue()
	found := false
	for _, e := range entries {
		if e.Function.Name == "TestCapture" {
			found = true
		}
	}
	assert.For(ctx, "caller present in trace").That(found).IsTrue()
}

func TestTrimBottom(t *testing.T) {
	ctx := log.Testing(t)
	self := stacktrace.MatchFunction("nestedCapture")
	trimmed := stacktrace.TrimBottom(self, nestedCapture)()
	assert.For(ctx, "trimmed length").That(len(trimmed) <= len(nestedCapture())).IsTrue()
}
