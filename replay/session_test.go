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

package replay_test

import (
	"context"
	stdimage "image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/gfx-retrace/image"
	"github.com/google/gfx-retrace/replay"
	"github.com/google/gfx-retrace/trace"
)

type fakeDispatcher struct {
	dispatched []*trace.Call
	flushed    []uint32
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, call *trace.Call) error {
	d.dispatched = append(d.dispatched, call)
	return nil
}

func (d *fakeDispatcher) FlushRendering(ctx context.Context, threadID uint32) error {
	d.flushed = append(d.flushed, threadID)
	return nil
}

type fakeSnapshotter struct {
	img stdimage.Image
}

func (s *fakeSnapshotter) Snapshot(ctx context.Context) (stdimage.Image, error) {
	return s.img, nil
}

// alwaysDumper reports ok on every call, for testing the gate itself
// rather than any real dump format.
type alwaysDumper struct{ ok bool }

func (a alwaysDumper) DumpState(ctx context.Context, w io.Writer, call *trace.Call) (bool, error) {
	return a.ok, nil
}

func solidImage() stdimage.Image {
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
		}
	}
	return img
}

func TestRetraceCallDispatchesAndCounts(t *testing.T) {
	d := &fakeDispatcher{}
	s := replay.NewSession(replay.Config{}, d, nil, nil, nil)

	stop, err := s.RetraceCall(context.Background(), &trace.Call{No: 1})
	require.NoError(t, err)
	assert.False(t, stop)
	stop, err = s.RetraceCall(context.Background(), &trace.Call{No: 2, Flags: trace.EndFrame})
	require.NoError(t, err)
	assert.False(t, stop)

	assert.Equal(t, uint64(2), s.Counters.CallNo())
	assert.Equal(t, uint64(1), s.Counters.FrameNo())
	require.Len(t, d.dispatched, 2)
}

func TestStateDumpGateFires(t *testing.T) {
	d := &fakeDispatcher{}
	cfg := replay.Config{DumpStateEnabled: true, DumpStateCallNo: 2}
	s := replay.NewSession(cfg, d, nil, alwaysDumper{ok: true}, nil)

	stop, err := s.RetraceCall(context.Background(), &trace.Call{No: 1})
	require.NoError(t, err)
	assert.False(t, stop)

	stop, err = s.RetraceCall(context.Background(), &trace.Call{No: 2})
	require.NoError(t, err)
	assert.True(t, stop)
}

func TestStateDumpGateSparseThresholdFiresOnFirstPast(t *testing.T) {
	d := &fakeDispatcher{}
	cfg := replay.Config{DumpStateEnabled: true, DumpStateCallNo: 5}
	s := replay.NewSession(cfg, d, nil, alwaysDumper{ok: true}, nil)

	stop, _ := s.RetraceCall(context.Background(), &trace.Call{No: 3})
	assert.False(t, stop)
	stop, _ = s.RetraceCall(context.Background(), &trace.Call{No: 7})
	assert.True(t, stop)
}

func TestStateDumpGateDoesNotFireWhenDumpFails(t *testing.T) {
	d := &fakeDispatcher{}
	cfg := replay.Config{DumpStateEnabled: true, DumpStateCallNo: 1}
	s := replay.NewSession(cfg, d, nil, alwaysDumper{ok: false}, nil)

	stop, _ := s.RetraceCall(context.Background(), &trace.Call{No: 1})
	assert.False(t, stop)
}

func TestSnapshotWritesPNGAndComparesReference(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "0000000001.png")
	require.NoError(t, image.WritePNG(refPath, solidImage()))

	freq, err := trace.ParseCallSet("frame")
	require.NoError(t, err)

	cfg := replay.Config{
		SnapshotPrefix:    filepath.Join(dir, "out-"),
		ComparePrefix:     dir + string(os.PathSeparator),
		SnapshotFrequency: freq,
		CompareFrequency:  freq,
	}

	d := &fakeDispatcher{}
	snap := &fakeSnapshotter{img: solidImage()}
	s := replay.NewSession(cfg, d, snap, nil, nil)

	stop, err := s.RetraceCall(context.Background(), &trace.Call{No: 1, Flags: trace.EndFrame})
	require.NoError(t, err)
	assert.False(t, stop)

	_, err = os.Stat(filepath.Join(dir, "out-0000000001.png"))
	assert.NoError(t, err)
}

func TestSnapshotSkippedWithoutFrequencyMatch(t *testing.T) {
	dir := t.TempDir()
	cfg := replay.Config{
		SnapshotPrefix: filepath.Join(dir, "out-"),
	}
	d := &fakeDispatcher{}
	snap := &fakeSnapshotter{img: solidImage()}
	s := replay.NewSession(cfg, d, snap, nil, nil)

	_, err := s.RetraceCall(context.Background(), &trace.Call{No: 1})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "out-0000000001.png"))
	assert.True(t, os.IsNotExist(err))
}
