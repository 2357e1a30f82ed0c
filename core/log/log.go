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

// Package log provides a small severity-levelled logger bound to a
// context.Context, in the manner used throughout the rest of this tree.
package log

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Severity is the level of a log message.
type Severity int

const (
	Debug Severity = iota
	Info
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Debug:
		return "D"
	case Info:
		return "I"
	case Warning:
		return "W"
	case Error:
		return "E"
	case Fatal:
		return "F"
	default:
		return "?"
	}
}

// Handler receives formatted log lines.
type Handler interface {
	Handle(s Severity, text string)
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(s Severity, text string)

func (f HandlerFunc) Handle(s Severity, text string) { f(s, text) }

// Stderr is the default Handler, writing timestamped, severity-tagged lines
// to os.Stderr.
var Stderr = HandlerFunc(func(s Severity, text string) {
	fmt.Fprintf(os.Stderr, "%s %s %s\n", time.Now().Format("15:04:05.000"), s, text)
})

type handlerKey struct{}

// PutHandler returns a context with h bound as the active Handler.
func PutHandler(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey{}, h)
}

func handlerFrom(ctx context.Context) Handler {
	if h, ok := ctx.Value(handlerKey{}).(Handler); ok {
		return h
	}
	return Stderr
}

type minSeverityKey struct{}

// PutMinSeverity returns a context that suppresses messages below s.
func PutMinSeverity(ctx context.Context, s Severity) context.Context {
	return context.WithValue(ctx, minSeverityKey{}, s)
}

func minSeverityFrom(ctx context.Context) Severity {
	if s, ok := ctx.Value(minSeverityKey{}).(Severity); ok {
		return s
	}
	return Info
}

func logf(ctx context.Context, s Severity, format string, args ...interface{}) {
	if s < minSeverityFrom(ctx) {
		return
	}
	handlerFrom(ctx).Handle(s, fmt.Sprintf(format, args...))
}

// D logs a debug message.
func D(ctx context.Context, format string, args ...interface{}) { logf(ctx, Debug, format, args...) }

// I logs an info message.
func I(ctx context.Context, format string, args ...interface{}) { logf(ctx, Info, format, args...) }

// W logs a warning message.
func W(ctx context.Context, format string, args ...interface{}) { logf(ctx, Warning, format, args...) }

// E logs an error message.
func E(ctx context.Context, format string, args ...interface{}) { logf(ctx, Error, format, args...) }

// F logs a fatal message and terminates the process.
func F(ctx context.Context, format string, args ...interface{}) {
	logf(ctx, Fatal, format, args...)
	os.Exit(1)
}
