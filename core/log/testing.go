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

package log

import (
	"context"
	"testing"
)

type testingKey struct{}

// Testing returns a context suitable for use from a test: log messages are
// routed through t.Log instead of stderr, and the *testing.T is retrievered
// with TestingT for packages (such as assert) that need to report failures.
func Testing(t *testing.T) context.Context {
	ctx := context.WithValue(context.Background(), testingKey{}, t)
	return PutHandler(ctx, HandlerFunc(func(s Severity, text string) {
		t.Logf("%s %s", s, text)
	}))
}

// TestingT returns the *testing.T bound to ctx by Testing, or nil.
func TestingT(ctx context.Context) *testing.T {
	t, _ := ctx.Value(testingKey{}).(*testing.T)
	return t
}
