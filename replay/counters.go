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

import "sync/atomic"

// Counters tracks the process-wide frameNo/callNo state. Per the baton
// invariant only the currently active worker ever writes these, so the
// atomics here exist to make concurrent reads from profiling/logging code
// race-free rather than to arbitrate concurrent writers.
type Counters struct {
	frameNo atomic.Uint64
	callNo  atomic.Uint64
}

// FrameNo returns the number of END_FRAME calls dispatched so far.
func (c *Counters) FrameNo() uint64 { return c.frameNo.Load() }

// CallNo returns the call index of the most recently dispatched call.
func (c *Counters) CallNo() uint64 { return c.callNo.Load() }

func (c *Counters) record(call *countedCall) {
	c.callNo.Store(call.no)
	if call.endFrame {
		c.frameNo.Add(1)
	}
}

type countedCall struct {
	no       uint64
	endFrame bool
}
