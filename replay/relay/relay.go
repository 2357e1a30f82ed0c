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

// Package relay implements the baton-passing replay scheduler: a Scheduler
// (relay race) owning a set of per-thread Workers (relay legs), handing
// off a single in-flight Call between them so that calls from one
// recorded thread always run on the same worker while distinct recorded
// threads never execute concurrently.
package relay

import (
	"context"

	"github.com/google/gfx-retrace/trace"
)

// CallHandler is the pipeline a Scheduler drives for every call it
// routes: apply the call (dispatch, snapshot, state-dump gate) and flush
// any buffered rendering for a thread before handing off to another one.
// replay.Session implements this.
type CallHandler interface {
	// HandleCall applies call and reports whether the caller should stop
	// the whole replay (the state-dump gate fired).
	HandleCall(ctx context.Context, call *trace.Call) (stop bool, err error)
	FlushRendering(ctx context.Context, threadID uint32) error
}
