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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/gfx-retrace/trace"
)

func TestParseCallSetFrequency(t *testing.T) {
	frame, err := trace.ParseCallSet("frame")
	require.NoError(t, err)
	assert.True(t, frame.Contains(&trace.Call{No: 1, Flags: trace.EndFrame}))
	assert.False(t, frame.Contains(&trace.Call{No: 1}))

	draw, err := trace.ParseCallSet("DRAW")
	require.NoError(t, err)
	assert.True(t, draw.Contains(&trace.Call{No: 1, Flags: trace.Draw}))
}

func TestParseCallSetRanges(t *testing.T) {
	cases := []struct {
		spec  string
		yes   []uint64
		no    []uint64
	}{
		{"5", []uint64{5}, []uint64{4, 6}},
		{"5-10", []uint64{5, 7, 10}, []uint64{4, 11}},
		{"5-", []uint64{5, 100}, []uint64{4}},
		{"-10", []uint64{0, 10}, []uint64{11}},
		{"1,5-10,20", []uint64{1, 5, 8, 10, 20}, []uint64{2, 4, 11, 19, 21}},
	}
	for _, c := range cases {
		cs, err := trace.ParseCallSet(c.spec)
		require.NoError(t, err, c.spec)
		for _, no := range c.yes {
			assert.True(t, cs.Contains(&trace.Call{No: no}), "%s should contain %d", c.spec, no)
		}
		for _, no := range c.no {
			assert.False(t, cs.Contains(&trace.Call{No: no}), "%s should not contain %d", c.spec, no)
		}
	}
}

func TestParseCallSetInvalid(t *testing.T) {
	_, err := trace.ParseCallSet("a-b")
	assert.Error(t, err)
	_, err = trace.ParseCallSet("")
	require.NoError(t, err) // empty is the disabled/None set, not an error
}

func TestEmptyCallSet(t *testing.T) {
	cs, err := trace.ParseCallSet("")
	require.NoError(t, err)
	assert.True(t, cs.Empty())
	assert.False(t, cs.Contains(&trace.Call{No: 1}))
}
