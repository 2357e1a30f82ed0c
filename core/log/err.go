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

package log

import (
	"context"
	"fmt"
)

type err struct {
	cause error
	msg   string
}

func (e *err) Cause() error { return e.cause }

func (e *err) Unwrap() error { return e.cause }

func (e *err) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

// Err logs msg (and cause, if any) at Error severity and returns an error
// wrapping cause with msg.
func Err(ctx context.Context, cause error, msg string) error {
	e := &err{cause, msg}
	E(ctx, "%v", e)
	return e
}

// Errf is Err with a printf-style message.
func Errf(ctx context.Context, cause error, format string, args ...interface{}) error {
	return Err(ctx, cause, fmt.Sprintf(format, args...))
}
