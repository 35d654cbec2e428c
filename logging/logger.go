// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logging provides the no-op logger used in tests and the
// construction path for a real github.com/luxfi/log.Logger, selected by
// cmd/hubd from its --log-level/--log-format flags.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/luxfi/log"
)

// ParseLevel maps a --log-level flag value to the slog.Level log.Logger
// uses for filtering.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return slog.LevelDebug - 4, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", s)
	}
}

// New builds a log.Logger named name for format ("json", the default,
// uses the teacher's github.com/luxfi/log production encoder; "text" uses
// ConsoleLog for a line-oriented stream suited to a local terminal) at
// level, as selected by a command's --log-format/--log-level flags.
func New(name, format string, level slog.Level, out io.Writer) (log.Logger, error) {
	switch strings.ToLower(format) {
	case "", "json":
		logger := log.NewLogger(name)
		logger.SetLevel(level)
		return logger, nil
	case "text", "console":
		return NewConsoleLogger(name, out, level), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
}
