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

	"github.com/google/gfx-retrace/core/log"
	"github.com/google/gfx-retrace/trace"
)

// worker is a relay leg: a thread (goroutine, for legs other than 0)
// bound to one recorded thread id, running the "dispatch this call and
// every consecutive call from the same recorded thread" loop.
type worker struct {
	leg       uint32
	scheduler *Scheduler

	// baton holds at most one pending Call. The scheduler is the sole
	// producer; this worker is the sole consumer.
	baton chan *trace.Call
	done  chan struct{}
	once  sync.Once
}

func newWorker(leg uint32, s *Scheduler) *worker {
	return &worker{
		leg:       leg,
		scheduler: s,
		baton:     make(chan *trace.Call, 1),
		done:      make(chan struct{}),
	}
}

// receive hands call to this worker. Precondition: call.ThreadID == leg
// and the baton slot is empty (guaranteed by the scheduler's single-active
// -worker invariant).
func (w *worker) receive(call *trace.Call) {
	w.baton <- call
}

// finish requests that the worker terminate; idempotent.
func (w *worker) finish() {
	w.once.Do(func() { close(w.done) })
}

// run is the event loop of §4.5: wait for a baton or a finish signal, run
// legRun to completion, repeat. The lead worker (leg 0) runs this on the
// caller's goroutine; every other worker runs it on a goroutine started
// by the scheduler at construction time.
func (w *worker) run(ctx context.Context) {
	stopped := false
	for !stopped {
		select {
		case call := <-w.baton:
			stopped = w.legRun(ctx, call)
		case <-w.done:
			stopped = true
		}
	}
	if w.leg == 0 {
		w.scheduler.stopAll()
	}
}

// legRun implements §4.5's leg-run: dispatch call and every consecutive
// call sharing this worker's recorded thread id, then either hit
// end-of-stream, hand off a foreign call, or observe the handler request
// a stop (state-dump gate). It reports whether the whole scheduler should
// now stop.
func (w *worker) legRun(ctx context.Context, call *trace.Call) bool {
	for {
		if call.ThreadID != w.leg {
			log.F(ctx, "call %d has thread id %d, expected leg %d", call.No, call.ThreadID, w.leg)
		}

		stop, err := w.scheduler.handler.HandleCall(ctx, call)
		if err != nil {
			log.E(ctx, "handling call %d: %v", call.No, err)
		}
		if stop {
			w.scheduler.requestStop(ctx)
			return true
		}

		next, err := w.scheduler.source.ParseCall(ctx)
		if err == trace.ErrEndOfStream || err != nil {
			if err != nil && err != trace.ErrEndOfStream {
				log.W(ctx, "trace parse error, ending replay: %v", err)
			}
			if flushErr := w.scheduler.handler.FlushRendering(ctx, w.leg); flushErr != nil {
				log.E(ctx, "flushing rendering for leg %d: %v", w.leg, flushErr)
			}
			if w.leg != 0 {
				w.scheduler.finishLine(ctx)
			} else {
				w.finish()
			}
			return false
		}

		if next.ThreadID == w.leg {
			call = next
			continue
		}

		if flushErr := w.scheduler.handler.FlushRendering(ctx, w.leg); flushErr != nil {
			log.E(ctx, "flushing rendering for leg %d: %v", w.leg, flushErr)
		}
		w.scheduler.passBaton(ctx, next)
		return false
	}
}
