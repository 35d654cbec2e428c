// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/luxfi/log"
	"go.uber.org/zap"
)

// ConsoleLog implements github.com/luxfi/log.Logger by writing one
// human-readable line per call to an io.Writer, for --log-format=text. It
// satisfies the same interface NoLog does, so it can stand in anywhere a
// log.Logger is expected.
type ConsoleLog struct {
	mu   sync.Mutex
	out  io.Writer
	name string

	levelMu sync.RWMutex
	level   slog.Level
}

// NewConsoleLogger returns a ConsoleLog named name, writing to out at level.
func NewConsoleLogger(name string, out io.Writer, level slog.Level) *ConsoleLog {
	return &ConsoleLog{out: out, name: name, level: level}
}

func (c *ConsoleLog) print(level, msg string, ctx ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s [%s] %-5s %s", time.Now().Format(time.RFC3339), c.name, level, msg)
	for i := 0; i+1 < len(ctx); i += 2 {
		fmt.Fprintf(c.out, " %v=%v", ctx[i], ctx[i+1])
	}
	fmt.Fprintln(c.out)
}

func (c *ConsoleLog) With(ctx ...interface{}) log.Logger { return c }
func (c *ConsoleLog) New(ctx ...interface{}) log.Logger  { return c }

func (c *ConsoleLog) Log(level slog.Level, msg string, ctx ...interface{}) {
	if !c.EnabledLevel(level) {
		return
	}
	c.print(level.String(), msg, ctx...)
}

func (c *ConsoleLog) Trace(msg string, ctx ...interface{}) {
	if c.EnabledLevel(slog.LevelDebug - 4) {
		c.print("TRACE", msg, ctx...)
	}
}

func (c *ConsoleLog) Debug(msg string, ctx ...interface{}) {
	if c.EnabledLevel(slog.LevelDebug) {
		c.print("DEBUG", msg, ctx...)
	}
}

func (c *ConsoleLog) Info(msg string, ctx ...interface{}) {
	if c.EnabledLevel(slog.LevelInfo) {
		c.print("INFO", msg, ctx...)
	}
}

func (c *ConsoleLog) Warn(msg string, ctx ...interface{}) {
	if c.EnabledLevel(slog.LevelWarn) {
		c.print("WARN", msg, ctx...)
	}
}

func (c *ConsoleLog) Error(msg string, ctx ...interface{}) {
	if c.EnabledLevel(slog.LevelError) {
		c.print("ERROR", msg, ctx...)
	}
}

func (c *ConsoleLog) Crit(msg string, ctx ...interface{}) {
	c.print("CRIT", msg, ctx...)
}

func (c *ConsoleLog) WriteLog(level slog.Level, msg string, attrs ...any) {
	c.Log(level, msg, attrs...)
}

func (c *ConsoleLog) Enabled(ctx context.Context, level slog.Level) bool {
	return c.EnabledLevel(level)
}

func (c *ConsoleLog) Handler() slog.Handler { return nil }

func (c *ConsoleLog) Fatal(msg string, fields ...zap.Field) { c.print("FATAL", msg) }
func (c *ConsoleLog) Verbo(msg string, fields ...zap.Field) { c.print("VERBO", msg) }

func (c *ConsoleLog) WithFields(fields ...zap.Field) log.Logger { return c }
func (c *ConsoleLog) WithOptions(opts ...zap.Option) log.Logger { return c }

func (c *ConsoleLog) SetLevel(level slog.Level) {
	c.levelMu.Lock()
	defer c.levelMu.Unlock()
	c.level = level
}

func (c *ConsoleLog) GetLevel() slog.Level {
	c.levelMu.RLock()
	defer c.levelMu.RUnlock()
	return c.level
}

func (c *ConsoleLog) EnabledLevel(lvl slog.Level) bool {
	c.levelMu.RLock()
	defer c.levelMu.RUnlock()
	return lvl >= c.level
}

func (c *ConsoleLog) StopOnPanic() {}

func (c *ConsoleLog) RecoverAndPanic(f func())      { f() }
func (c *ConsoleLog) RecoverAndExit(f, exit func()) { f() }

func (c *ConsoleLog) Stop() {}

func (c *ConsoleLog) Write(p []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.Write(p)
}
