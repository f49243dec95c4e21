// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package progress

import (
	"context"
	"io"

	"golang.org/x/exp/slog"
)

// A Level is the severity of an emitted line.
type Level int

const (
	LevelTrace Level = Level(slog.LevelDebug - 4)
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

func (l Level) String() string {
	if l == LevelTrace {
		return "TRACE"
	}
	return slog.Level(l).String()
}

// A Sink receives the lines emitted by a logger.
//
// Emit must not fail and must be safe to call from the goroutine that
// owns the logger. Sinks shared by several loggers must be safe for
// concurrent use.
type Sink interface {
	Emit(target string, level Level, msg string)
}

// TargetKey is the attribute key carrying the target in records
// produced by SlogSink.
const TargetKey = "target"

type slogSink struct {
	logger *slog.Logger
}

// SlogSink returns a Sink writing records to logger, with the target
// stored under TargetKey. A nil logger means slog.Default() at the time
// of each call.
func SlogSink(logger *slog.Logger) Sink {
	return slogSink{logger}
}

func (s slogSink) Emit(target string, level Level, msg string) {
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx := context.Background()
	if !logger.Enabled(ctx, slog.Level(level)) {
		return
	}
	logger.LogAttrs(ctx, slog.Level(level), msg, slog.String(TargetKey, target))
}

// Discard is a Sink that drops every line.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(string, Level, string) {}

var defaultSink = SlogSink(nil)

// NewHandler returns a slog text handler writing to w records of at least
// the given level, naming the trace level "TRACE".
func NewHandler(w io.Writer, level Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		ReplaceAttr: replaceAttr,
		Level:       slog.Level(level),
	})
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok && Level(l) == LevelTrace {
			a.Value = slog.StringValue(LevelTrace.String())
		}
	}
	return a
}
