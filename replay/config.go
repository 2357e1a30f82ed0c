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

// Package replay implements the snapshot/compare pipeline, the state-dump
// gate, and the Session that ties them to the baton-passing scheduler in
// replay/relay.
package replay

import "github.com/google/gfx-retrace/trace"

// StdoutSentinel is the SnapshotPrefix value meaning "write PNM to
// standard output" instead of numbered PNG files (the "-s -" flag).
const StdoutSentinel = "-"

// Config holds the enumerated replay options: the snapshot/compare
// pipeline configuration, the state-dump threshold, and the dispatcher
// configuration the scheduler only forwards without interpreting.
type Config struct {
	SnapshotPrefix string
	ComparePrefix  string

	SnapshotFrequency trace.CallSet
	CompareFrequency  trace.CallSet

	// DumpStateCallNo, if DumpStateEnabled, is the call index at or past
	// which the state-dump gate fires and replay terminates.
	DumpStateCallNo  uint64
	DumpStateEnabled bool

	WaitOnFinish bool

	DoubleBuffer bool
	CoreProfile  bool

	ProfilingCPU         bool
	ProfilingGPU         bool
	ProfilingPixelsDrawn bool
}

// WantsSnapshot reports whether any snapshot or compare output was
// configured at all, i.e. whether the snapshot stage has any work to do.
func (c Config) WantsSnapshot() bool {
	return c.SnapshotPrefix != "" || c.ComparePrefix != ""
}
