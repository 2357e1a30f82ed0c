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

package main

import (
	"context"
	"fmt"
	stdimage "image"
	"io"

	"github.com/google/gfx-retrace/core/log"
	"github.com/google/gfx-retrace/trace"
)

// logDispatcher is the default Dispatcher: it has no real graphics driver
// behind it (driver setup/teardown and the call handler registry are
// external to this module, per its scope) and simply logs each call it
// would have applied. It lets `retrace` run end to end against the
// fixture trace format without a real GPU.
type logDispatcher struct {
	coreProfile, doubleBuffer bool
}

func (d *logDispatcher) Dispatch(ctx context.Context, call *trace.Call) error {
	log.D(ctx, "dispatch call %d (thread %d, flags %v)", call.No, call.ThreadID, call.Flags)
	return nil
}

func (d *logDispatcher) FlushRendering(ctx context.Context, threadID uint32) error {
	log.D(ctx, "flush rendering for thread %d", threadID)
	return nil
}

// blankSnapshotter stands in for framebuffer capture: it always succeeds,
// returning a small solid-color image, since actually reading back pixels
// from a live context is the external driver's job.
type blankSnapshotter struct {
	width, height int
}

func (s *blankSnapshotter) Snapshot(ctx context.Context) (stdimage.Image, error) {
	w, h := s.width, s.height
	if w == 0 {
		w = 64
	}
	if h == 0 {
		h = 64
	}
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, w, h))
	return img, nil
}

// stdoutStateDumper writes a minimal textual state dump; the real
// graphics-state introspection is external to this module.
type stdoutStateDumper struct{}

func (stdoutStateDumper) DumpState(ctx context.Context, w io.Writer, call *trace.Call) (bool, error) {
	_, err := fmt.Fprintf(w, "state dump at call %d (thread %d)\n", call.No, call.ThreadID)
	return err == nil, err
}
