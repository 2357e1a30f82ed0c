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
	"os"

	"github.com/google/gfx-retrace/core/log"
	"github.com/google/gfx-retrace/trace"
)

// Session binds one replay's Config, Dispatcher, Snapshotter and
// StateDumper together and exposes the per-call pipeline the scheduler
// drives: RetraceCall applies §4.3's snapshot decision table and §4.4's
// state-dump gate around a single dispatch.
type Session struct {
	cfg         Config
	dispatcher  Dispatcher
	snapshotter Snapshotter
	dumper      StateDumper
	stdout      io.Writer

	Counters Counters
}

// NewSession constructs a Session. stdout defaults to os.Stdout if nil;
// dumper and snapshotter may be nil if their respective features are
// unused (state dump / snapshot capture disabled).
func NewSession(cfg Config, dispatcher Dispatcher, snapshotter Snapshotter, dumper StateDumper, stdout io.Writer) *Session {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Session{cfg: cfg, dispatcher: dispatcher, snapshotter: snapshotter, dumper: dumper, stdout: stdout}
}

// RetraceCall implements retraceCall from §4.3-4.4: decide and take any
// pre-dispatch snapshot, dispatch the call, decide and take any
// post-dispatch snapshot, update the process-wide counters, and evaluate
// the state-dump gate. It reports whether the gate fired and replay
// should stop.
func (s *Session) RetraceCall(ctx context.Context, call *trace.Call) (bool, error) {
	if s.cfg.WantsSnapshot() && s.snapshotter != nil {
		before, after, idx := decideSnapshot(s.cfg, call)
		if before {
			s.takeSnapshot(ctx, idx)
		}
		if err := s.dispatcher.Dispatch(ctx, call); err != nil {
			log.E(ctx, "dispatch call %d: %v", call.No, err)
		}
		if after {
			s.takeSnapshot(ctx, idx)
		}
	} else if err := s.dispatcher.Dispatch(ctx, call); err != nil {
		log.E(ctx, "dispatch call %d: %v", call.No, err)
	}

	s.Counters.record(&countedCall{no: call.No, endFrame: call.Flags.Has(trace.EndFrame)})

	return s.checkDumpGate(ctx, call), nil
}

// FlushRendering forwards to the configured Dispatcher.
func (s *Session) FlushRendering(ctx context.Context, threadID uint32) error {
	return s.dispatcher.FlushRendering(ctx, threadID)
}

// HandleCall adapts RetraceCall to relay.CallHandler.
func (s *Session) HandleCall(ctx context.Context, call *trace.Call) (bool, error) {
	return s.RetraceCall(ctx, call)
}
