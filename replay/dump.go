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

package replay

import (
	"context"
	"io"

	"github.com/google/gfx-retrace/trace"
)

// StateDumper emits a dump of graphics state at the current call and
// reports whether the dump succeeded. It is the external contract behind
// the -D flag.
type StateDumper interface {
	DumpState(ctx context.Context, w io.Writer, call *trace.Call) (bool, error)
}

// checkDumpGate implements §4.4: once call.No reaches the threshold, a
// successful dump terminates the replay. The threshold is one-shot and
// uses >=, so on sparse call numbers the dump fires on the first call at
// or past the configured index, not necessarily the index itself.
func (s *Session) checkDumpGate(ctx context.Context, call *trace.Call) bool {
	if !s.cfg.DumpStateEnabled || call.No < s.cfg.DumpStateCallNo {
		return false
	}
	if s.dumper == nil {
		return false
	}
	ok, _ := s.dumper.DumpState(ctx, s.stdout, call)
	return ok
}
