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
	"fmt"
	stdimage "image"
	"os"

	"github.com/google/gfx-retrace/core/log"
	"github.com/google/gfx-retrace/image"
	"github.com/google/gfx-retrace/trace"
)

// Dispatcher applies calls to the graphics driver. Errors from Dispatch
// are logged by the caller and never propagated to the scheduler, per the
// external dispatcher contract.
type Dispatcher interface {
	Dispatch(ctx context.Context, call *trace.Call) error
	// FlushRendering forces buffered driver commands for the given
	// recorded thread to complete before a handoff to another thread.
	FlushRendering(ctx context.Context, threadID uint32) error
}

// Snapshotter captures the current framebuffer. Capture failure (no
// context current, minimized window, ...) is reported by returning a
// nil image and no error; the caller silently skips the snapshot.
type Snapshotter interface {
	Snapshot(ctx context.Context) (stdimage.Image, error)
}

func imageIndexFormat(idx uint64) string { return fmt.Sprintf("%010d", idx) }

// takeSnapshot implements §4.3's takeSnapshot(idx): read the reference
// image if configured, capture the framebuffer, write it out, and log the
// compare result if a reference was read.
func (s *Session) takeSnapshot(ctx context.Context, idx uint64) {
	var ref stdimage.Image
	if s.cfg.ComparePrefix != "" {
		path := s.cfg.ComparePrefix + imageIndexFormat(idx) + ".png"
		img, err := image.ReadPNG(path)
		if err == nil {
			ref = img
		} else if !os.IsNotExist(err) {
			log.D(ctx, "reference image %q unreadable: %v", path, err)
		}
	}

	got, err := s.snapshotter.Snapshot(ctx)
	if err != nil || got == nil {
		return
	}

	if s.cfg.SnapshotPrefix != "" {
		if s.cfg.SnapshotPrefix == StdoutSentinel {
			if err := image.WritePNM(s.stdout, got, imageIndexFormat(idx)); err != nil {
				log.E(ctx, "writing pnm for call %d: %v", idx, err)
			}
		} else {
			path := s.cfg.SnapshotPrefix + imageIndexFormat(idx) + ".png"
			if err := image.WritePNG(path, got); err != nil {
				log.E(ctx, "writing snapshot %q: %v", path, err)
			} else {
				log.I(ctx, "Wrote %s", path)
			}
		}
	}

	if ref != nil {
		bits := image.Compare(ref, got)
		log.I(ctx, "Snapshot %d average precision of %f bits", idx, bits)
	}
}

// decideSnapshot implements the §4.3 decision table.
func decideSnapshot(cfg Config, call *trace.Call) (before, after bool, idx uint64) {
	doSnapshot := cfg.SnapshotFrequency.Contains(call) || cfg.CompareFrequency.Contains(call)
	if !doSnapshot {
		return false, false, 0
	}
	if call.Flags.Has(trace.SwapRenderTarget) {
		if call.Flags.Has(trace.EndFrame) {
			return true, false, call.No
		}
		return true, false, call.No - 1
	}
	return false, true, call.No
}
