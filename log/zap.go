// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package log

import (
	"context"
	"log/slog"

	"github.com/luxfi/log"
	"go.uber.org/zap"
)

// ZapLogger is the production log.Logger: structured, leveled logging
// backed by go.uber.org/zap. Geth-style calls (Debug/Info/Warn/Error with
// alternating key-value pairs) go through zap's SugaredLogger; the rest of
// the interface exists for luxfi/log.Logger compatibility and mirrors
// NoLog's no-op behavior where zap has no direct equivalent.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

var _ log.Logger = (*ZapLogger)(nil)

// NewZapLogger wraps base, defaulting to a production JSON encoder config
// if base is nil.
func NewZapLogger(base *zap.Logger) (*ZapLogger, error) {
	if base == nil {
		var err error
		base, err = zap.NewProduction()
		if err != nil {
			return nil, err
		}
	}
	return &ZapLogger{sugar: base.Sugar()}, nil
}

func (z *ZapLogger) With(ctx ...interface{}) log.Logger {
	return &ZapLogger{sugar: z.sugar.With(ctx...)}
}

func (z *ZapLogger) New(ctx ...interface{}) log.Logger { return z.With(ctx...) }

func (z *ZapLogger) Log(level slog.Level, msg string, ctx ...interface{}) {
	switch {
	case level >= slog.LevelError:
		z.sugar.Errorw(msg, ctx...)
	case level >= slog.LevelWarn:
		z.sugar.Warnw(msg, ctx...)
	case level >= slog.LevelInfo:
		z.sugar.Infow(msg, ctx...)
	default:
		z.sugar.Debugw(msg, ctx...)
	}
}

func (z *ZapLogger) Trace(msg string, ctx ...interface{}) { z.sugar.Debugw(msg, ctx...) }
func (z *ZapLogger) Debug(msg string, ctx ...interface{}) { z.sugar.Debugw(msg, ctx...) }
func (z *ZapLogger) Info(msg string, ctx ...interface{})  { z.sugar.Infow(msg, ctx...) }
func (z *ZapLogger) Warn(msg string, ctx ...interface{})  { z.sugar.Warnw(msg, ctx...) }
func (z *ZapLogger) Error(msg string, ctx ...interface{}) { z.sugar.Errorw(msg, ctx...) }
func (z *ZapLogger) Crit(msg string, ctx ...interface{})  { z.sugar.Errorw(msg, ctx...) }

func (z *ZapLogger) WriteLog(level slog.Level, msg string, attrs ...any) {
	z.Log(level, msg, attrs...)
}

func (z *ZapLogger) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (z *ZapLogger) Handler() slog.Handler { return nil }

func (z *ZapLogger) Fatal(msg string, fields ...zap.Field) { z.sugar.Desugar().Fatal(msg, fields...) }

func (z *ZapLogger) Verbo(msg string, fields ...zap.Field) { z.sugar.Desugar().Debug(msg, fields...) }

func (z *ZapLogger) WithFields(fields ...zap.Field) log.Logger {
	return &ZapLogger{sugar: z.sugar.Desugar().With(fields...).Sugar()}
}

func (z *ZapLogger) WithOptions(opts ...zap.Option) log.Logger {
	return &ZapLogger{sugar: z.sugar.Desugar().WithOptions(opts...).Sugar()}
}

func (z *ZapLogger) SetLevel(slog.Level)          {}
func (z *ZapLogger) GetLevel() slog.Level         { return slog.LevelInfo }
func (z *ZapLogger) EnabledLevel(slog.Level) bool { return true }

func (z *ZapLogger) StopOnPanic() {}

func (z *ZapLogger) RecoverAndPanic(f func()) { f() }

func (z *ZapLogger) RecoverAndExit(f, _ func()) { f() }

func (z *ZapLogger) Stop() { _ = z.sugar.Sync() }

func (z *ZapLogger) Write(p []byte) (int, error) {
	z.sugar.Info(string(p))
	return len(p), nil
}
