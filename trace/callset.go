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
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Frequency names a CallSet built from a named predicate rather than
// explicit index ranges.
type Frequency int

const (
	// FrequencyNone matches no call.
	FrequencyNone Frequency = iota
	// FrequencyFrame matches every call with EndFrame set.
	FrequencyFrame
	// FrequencyDraw matches every call with Draw set.
	FrequencyDraw
)

type callRange struct {
	// lo/hasLo, hi/hasHi model "a-b", open-ended "a-"/"-b", and single "a".
	lo, hi       uint64
	hasLo, hasHi bool
}

func (r callRange) contains(no uint64) bool {
	if r.hasLo && no < r.lo {
		return false
	}
	if r.hasHi && no > r.hi {
		return false
	}
	return true
}

// CallSet is a predicate over calls: a named Frequency, or a union of call
// index ranges parsed from the textual form documented for the -C/-S flags.
type CallSet struct {
	freq   Frequency
	ranges []callRange
}

// NewFrequencyCallSet builds a CallSet that matches the named frequency.
func NewFrequencyCallSet(f Frequency) CallSet { return CallSet{freq: f} }

// ParseCallSet parses the textual CallSet grammar: either a frequency
// keyword ("frame", "draw") or a comma-separated list of index ranges
// ("a-b", "a-", "-b", "a").
func ParseCallSet(s string) (CallSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CallSet{freq: FrequencyNone}, nil
	case "frame":
		return CallSet{freq: FrequencyFrame}, nil
	case "draw":
		return CallSet{freq: FrequencyDraw}, nil
	}

	var ranges []callRange
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := parseRange(part)
		if err != nil {
			return CallSet{}, errors.Wrapf(err, "invalid call range %q", part)
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return CallSet{}, fmt.Errorf("empty call set %q", s)
	}
	return CallSet{ranges: ranges}, nil
}

func parseRange(part string) (callRange, error) {
	dash := strings.IndexByte(part, '-')
	switch {
	case dash < 0: // "a"
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return callRange{}, err
		}
		return callRange{lo: v, hasLo: true, hi: v, hasHi: true}, nil
	case dash == 0: // "-b"
		v, err := strconv.ParseUint(part[1:], 10, 64)
		if err != nil {
			return callRange{}, err
		}
		return callRange{hi: v, hasHi: true}, nil
	case dash == len(part)-1: // "a-"
		v, err := strconv.ParseUint(part[:dash], 10, 64)
		if err != nil {
			return callRange{}, err
		}
		return callRange{lo: v, hasLo: true}, nil
	default: // "a-b"
		lo, err := strconv.ParseUint(part[:dash], 10, 64)
		if err != nil {
			return callRange{}, err
		}
		hi, err := strconv.ParseUint(part[dash+1:], 10, 64)
		if err != nil {
			return callRange{}, err
		}
		return callRange{lo: lo, hasLo: true, hi: hi, hasHi: true}, nil
	}
}

// Contains reports whether call matches the set.
func (c CallSet) Contains(call *Call) bool {
	switch c.freq {
	case FrequencyFrame:
		return call.Flags.Has(EndFrame)
	case FrequencyDraw:
		return call.Flags.Has(Draw)
	}
	for _, r := range c.ranges {
		if r.contains(call.No) {
			return true
		}
	}
	return false
}

// Empty reports whether the set was never given any ranges or frequency,
// i.e. it matches nothing.
func (c CallSet) Empty() bool { return c.freq == FrequencyNone && len(c.ranges) == 0 }
