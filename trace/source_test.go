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

package trace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/gfx-retrace/trace"
)

func TestSliceSourceEndOfStream(t *testing.T) {
	src := trace.NewSliceSource([]*trace.Call{{No: 1}, {No: 2}})
	ctx := context.Background()

	c, err := src.ParseCall(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c.No)

	c, err = src.ParseCall(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c.No)

	_, err = src.ParseCall(ctx)
	assert.ErrorIs(t, err, trace.ErrEndOfStream)
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.txt")
	require.NoError(t, os.WriteFile(path, []byte(""+
		"# a comment\n"+
		"1 0 -\n"+
		"\n"+
		"2 1 swap,end\n"), 0644))

	src, err := trace.OpenFile(path)
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()
	c1, err := src.ParseCall(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c1.No)
	assert.Equal(t, uint32(0), c1.ThreadID)
	assert.Equal(t, trace.CallFlags(0), c1.Flags)

	c2, err := src.ParseCall(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), c2.No)
	assert.Equal(t, uint32(1), c2.ThreadID)
	assert.True(t, c2.Flags.Has(trace.SwapRenderTarget))
	assert.True(t, c2.Flags.Has(trace.EndFrame))

	_, err = src.ParseCall(ctx)
	assert.ErrorIs(t, err, trace.ErrEndOfStream)
}

func TestOpenFileMissing(t *testing.T) {
	_, err := trace.OpenFile("/nonexistent/does-not-exist.txt")
	assert.Error(t, err)
}
