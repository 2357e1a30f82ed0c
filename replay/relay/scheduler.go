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

package relay

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/gfx-retrace/core/app/crash"
	"github.com/google/gfx-retrace/trace"
)

// Scheduler is the relay race: it owns the call source and the sparse
// vector of workers indexed by leg, and implements the baton-passing
// protocol that routes each newly parsed call to the worker for its
// recorded thread id.
type Scheduler struct {
	source  trace.Source
	handler CallHandler

	mu      sync.Mutex
	workers map[uint32]*worker
	lead    *worker

	stopped atomic.Bool
	wg      sync.WaitGroup
}

// NewScheduler constructs a Scheduler over source, driving handler for
// every call.
func NewScheduler(source trace.Source, handler CallHandler) *Scheduler {
	return &Scheduler{
		source:  source,
		handler: handler,
		workers: map[uint32]*worker{},
	}
}

// getRunner returns the worker for leg, constructing and (for legs other
// than 0) starting it on demand. Called exclusively by the currently
// active worker, so the map access is safe under the baton invariant; the
// mutex guards against the defensive case of a future caller violating
// that invariant.
func (s *Scheduler) getRunner(ctx context.Context, leg uint32) *worker {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.workers[leg]; ok {
		return w
	}
	w := newWorker(leg, s)
	s.workers[leg] = w
	if leg == 0 {
		s.lead = w
	} else {
		s.wg.Add(1)
		crash.Go(func() {
			defer s.wg.Done()
			w.run(ctx)
		})
	}
	return w
}

func (s *Scheduler) passBaton(ctx context.Context, call *trace.Call) {
	s.getRunner(ctx, call.ThreadID).receive(call)
}

// finishLine is called by a non-lead worker reaching end-of-stream; it
// forwards to the lead worker's finish.
func (s *Scheduler) finishLine(ctx context.Context) {
	s.getRunner(ctx, 0).finish()
}

func (s *Scheduler) requestStop(ctx context.Context) {
	s.stopped.Store(true)
	s.getRunner(ctx, 0).finish()
}

// stopAll is called by the lead worker after its own loop exits: signal
// every non-lead worker to finish and wait for their goroutines to join.
func (s *Scheduler) stopAll() {
	s.mu.Lock()
	workers := make([]*worker, 0, len(s.workers))
	for leg, w := range s.workers {
		if leg != 0 {
			workers = append(workers, w)
		}
	}
	s.mu.Unlock()
	for _, w := range workers {
		w.finish()
	}
	s.wg.Wait()
}

// Run is the scheduler's main entry point: parse the first call and route
// it, then run the lead worker's event loop on the calling goroutine
// until the trace is exhausted or the state-dump gate stops replay. It
// reports whether the state-dump gate fired.
func (s *Scheduler) Run(ctx context.Context) (stopped bool, err error) {
	first, err := s.source.ParseCall(ctx)
	if err == trace.ErrEndOfStream {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	lead := s.getRunner(ctx, 0)
	if first.ThreadID == 0 {
		lead.baton <- first
	} else {
		s.passBaton(ctx, first)
	}

	lead.run(ctx)
	return s.stopped.Load(), nil
}
