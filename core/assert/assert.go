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

// Package assert provides a small fluent assertion helper for use from
// tests, in place of raw t.Errorf calls.
package assert

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/gfx-retrace/core/log"
)

// Assertion is the start of an assertion chain, built with For.
type Assertion struct {
	ctx  context.Context
	name string
}

// For starts an assertion chain, tagging any failure with name.
func For(ctx context.Context, name string) Assertion {
	return Assertion{ctx: ctx, name: name}
}

func (a Assertion) fail(format string, args ...interface{}) bool {
	msg := fmt.Sprintf(format, args...)
	if t := log.TestingT(a.ctx); t != nil {
		t.Helper()
		t.Errorf("%s: %s", a.name, msg)
	} else {
		log.E(a.ctx, "%s: %s", a.name, msg)
	}
	return false
}

// OnValue is the result of calling That, providing generic assertions.
type OnValue struct {
	Assertion
	value interface{}
}

// That returns an OnValue for value.
func (a Assertion) That(value interface{}) OnValue {
	return OnValue{Assertion: a, value: value}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.Interface, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// IsNil asserts the value is nil (including typed nils).
func (o OnValue) IsNil() bool {
	if isNil(o.value) {
		return true
	}
	return o.fail("got %v, want nil", o.value)
}

// IsNotNil asserts the value is not nil.
func (o OnValue) IsNotNil() bool {
	if !isNil(o.value) {
		return true
	}
	return o.fail("got nil, want non-nil")
}

// Equals asserts the value == expect.
func (o OnValue) Equals(expect interface{}) bool {
	if o.value == expect {
		return true
	}
	return o.fail("got %v, want %v", o.value, expect)
}

// DeepEquals asserts reflect.DeepEqual(value, expect).
func (o OnValue) DeepEquals(expect interface{}) bool {
	if reflect.DeepEqual(o.value, expect) {
		return true
	}
	return o.fail("got %#v, want %#v", o.value, expect)
}

// IsTrue asserts the value is the boolean true.
func (o OnValue) IsTrue() bool {
	if b, ok := o.value.(bool); ok && b {
		return true
	}
	return o.fail("got %v, want true", o.value)
}

// IsFalse asserts the value is the boolean false.
func (o OnValue) IsFalse() bool {
	if b, ok := o.value.(bool); ok && !b {
		return true
	}
	return o.fail("got %v, want false", o.value)
}
