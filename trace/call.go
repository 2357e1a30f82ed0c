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

// Package trace holds the data model for a recorded stream of graphics API
// calls: the Call record, the CallFlags that mark frame and render-target
// boundaries, CallSet predicates over call indices, and the Source contract
// the scheduler pulls calls from.
package trace

// CallFlags marks properties of a Call that the replay scheduler and the
// snapshot stage need without inspecting the call's payload.
type CallFlags uint32

const (
	// SwapRenderTarget marks a call that changes the visible render
	// target: a buffer swap, a present, or an FBO bind.
	SwapRenderTarget CallFlags = 1 << iota
	// EndFrame marks a call that concludes a frame.
	EndFrame
	// Draw marks a call that issues a draw (used by the "draw" CallSet
	// frequency). Not named in the original flag set, but CallSet needs
	// some way to recognise a draw call without inspecting the payload.
	Draw
)

// Has reports whether all bits of want are set in f.
func (f CallFlags) Has(want CallFlags) bool { return f&want == want }

// Call is one recorded API invocation. Calls are produced by a Source in
// strictly increasing No order. A Call is owned by whichever worker
// currently holds it and is not touched again once passed onward.
type Call struct {
	No       uint64
	ThreadID uint32
	Flags    CallFlags
	// Payload is the opaque, dispatcher-specific argument data for this
	// call. The scheduler never inspects it.
	Payload interface{}
}
