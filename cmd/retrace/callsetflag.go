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
	"github.com/spf13/pflag"

	"github.com/google/gfx-retrace/trace"
)

// callSetValue is a pflag.Value wrapping trace.ParseCallSet, so a malformed
// --compare-frequency/--snapshot-frequency is rejected by cobra's own flag
// parsing rather than surfacing later as a buildConfig error.
type callSetValue struct {
	text string
	set  trace.CallSet
}

func (v *callSetValue) String() string {
	return v.text
}

func (v *callSetValue) Set(s string) error {
	cs, err := trace.ParseCallSet(s)
	if err != nil {
		return err
	}
	v.text = s
	v.set = cs
	return nil
}

func (v *callSetValue) Type() string {
	return "callset"
}

var _ pflag.Value = (*callSetValue)(nil)
