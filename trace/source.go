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

package trace

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/gfx-retrace/core/fault"
	"github.com/pkg/errors"
)

// ErrEndOfStream is returned by Source.ParseCall once every call has been
// produced. It is not an error condition; it is the normal termination
// signal for a replay.
const ErrEndOfStream = fault.Const("end of stream")

// Source is a lazy, single-consumer stream of Call records. The scheduler
// guarantees only one worker calls ParseCall at a time (the baton-holding
// worker), so a Source needs no internal locking of its own.
type Source interface {
	// ParseCall returns the next Call in source order, or ErrEndOfStream
	// once the stream is exhausted.
	ParseCall(ctx context.Context) (*Call, error)
	// Close releases any resources held by the source.
	Close() error
}

// sliceSource replays a fixed, in-memory list of calls. Used by tests and
// as the building block behind OpenFile.
type sliceSource struct {
	calls []*Call
	pos   int
}

// NewSliceSource returns a Source that yields calls in order and then
// ErrEndOfStream.
func NewSliceSource(calls []*Call) Source {
	return &sliceSource{calls: calls}
}

func (s *sliceSource) ParseCall(ctx context.Context) (*Call, error) {
	if s.pos >= len(s.calls) {
		return nil, ErrEndOfStream
	}
	c := s.calls[s.pos]
	s.pos++
	return c, nil
}

func (s *sliceSource) Close() error { return nil }

// OpenFile opens the line-oriented fixture trace format: one call per
// non-blank, non-comment line, "no threadID flags", flags a comma
// separated subset of "swap"/"end"/"draw" or "-" for none.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening trace file %q", path)
	}
	calls, err := parseFixture(f)
	f.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing trace file %q", path)
	}
	return NewSliceSource(calls), nil
}

func parseFixture(r io.Reader) ([]*Call, error) {
	var calls []*Call
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want 3 fields, got %d", line, len(fields))
		}
		no, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad call number: %w", line, err)
		}
		tid, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad thread id: %w", line, err)
		}
		flags, err := parseFlags(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		calls = append(calls, &Call{No: no, ThreadID: uint32(tid), Flags: flags})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return calls, nil
}

func parseFlags(s string) (CallFlags, error) {
	if s == "-" {
		return 0, nil
	}
	var flags CallFlags
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "swap":
			flags |= SwapRenderTarget
		case "end":
			flags |= EndFrame
		case "draw":
			flags |= Draw
		default:
			return 0, fmt.Errorf("unknown call flag %q", part)
		}
	}
	return flags, nil
}
