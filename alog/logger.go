// Package alog is the structured logger of the application.
//
// It builds on log/slog and adds the levels, trace correlation and
// request scoped attributes used throughout the contexts.
package alog

import (
	"context"
	"log/slog"

	ctx2 "github.com/go-arrower/classic-comedians/ctx"
)

// Logger interface is a subset of slog.Logger, with the aim to:
//  1. encourage the use of the methods offering context.Context, so that tracing information can be correlated.
//  2. encourage the use of the levels `DEBUG` and `INFO` over others, but without preventing them.
type Logger interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	With(args ...any) *slog.Logger
	WithGroup(name string) *slog.Logger
}

var _ Logger = (*slog.Logger)(nil)

const (
	// LevelInfo is used to see what is going on inside the framework code of the application.
	LevelInfo = slog.Level(-8)

	// LevelDebug is used if you really want to know what is going on.
	LevelDebug = slog.Level(-12)
)

// MapLogLevelsToName replaces the default name of a custom log level with a speaking name.
// Use it as slog.HandlerOptions.ReplaceAttr.
func MapLogLevelsToName(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey {
		level, _ := attr.Value.Any().(slog.Level)

		levelLabel, exists := levelNames[level]
		if !exists {
			levelLabel = level.String()
		}

		attr.Value = slog.StringValue(levelLabel)
	}

	return attr
}

//nolint:gochecknoglobals // lookup table
var levelNames = map[slog.Level]string{
	LevelInfo:  "COMEDIANS:INFO",
	LevelDebug: "COMEDIANS:DEBUG",
}

const ctxAttr ctx2.CTXKey = "alog.attr"

// AddAttr adds a single attribute to ctx.
// All attributes in the context are logged with every record
// written by a logger from this package.
func AddAttr(ctx context.Context, attr slog.Attr) context.Context {
	return AddAttrs(ctx, attr)
}

// AddAttrs adds multiple attributes to ctx.
func AddAttrs(ctx context.Context, newAttrs ...slog.Attr) context.Context {
	attrs := FromContext(ctx)

	// copy, so parent contexts are not modified
	all := make([]slog.Attr, 0, len(attrs)+len(newAttrs))
	all = append(all, attrs...)
	all = append(all, newAttrs...)

	return context.WithValue(ctx, ctxAttr, all)
}

// ClearAttrs removes all attributes from ctx.
func ClearAttrs(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxAttr, []slog.Attr{})
}

// FromContext returns all attributes added to ctx.
// It never returns nil.
func FromContext(ctx context.Context) []slog.Attr {
	if attrs, ok := ctx.Value(ctxAttr).([]slog.Attr); ok {
		return attrs
	}

	return []slog.Attr{}
}

// Error is a convenience function to log an error under a consistent key.
func Error(err error) slog.Attr {
	return slog.String("err", err.Error())
}
