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

	"github.com/google/gfx-retrace/replay/relay"
	"github.com/google/gfx-retrace/trace"
)

// Result summarizes one Replay invocation for the caller's profiling
// output.
type Result struct {
	// Stopped is true if the state-dump gate terminated the replay
	// before the source was exhausted.
	Stopped bool
	Frames  uint64
	Calls   uint64
}

// Replay drives source through the baton-passing scheduler, applying
// session's pipeline to every call. This is the §4.7 "construct the
// scheduler; run()" step, factored out so cmd/retrace only has to loop
// over trace files.
func Replay(ctx context.Context, source trace.Source, session *Session) (Result, error) {
	sched := relay.NewScheduler(source, session)
	stopped, err := sched.Run(ctx)
	return Result{
		Stopped: stopped,
		Frames:  session.Counters.FrameNo(),
		Calls:   session.Counters.CallNo(),
	}, err
}
