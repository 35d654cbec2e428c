// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"
	"os"

	"github.com/luxfi/log"

	"github.com/filament-zone/hub/logging"
)

// logFlags are the --log-level/--log-format flags shared by every
// subcommand, each building its own log.Logger against its own
// flag.FlagSet.
type logFlags struct {
	level  *string
	format *string
}

func addLogFlags(fs *flag.FlagSet) logFlags {
	return logFlags{
		level:  fs.String("log-level", "info", "log level: trace, debug, info, warn, error"),
		format: fs.String("log-format", "json", "log format: json, text"),
	}
}

// build constructs the logger named name from the parsed flag values,
// writing to stderr in the format named by --log-format (json by default).
func (f logFlags) build(name string) (log.Logger, error) {
	level, err := logging.ParseLevel(*f.level)
	if err != nil {
		return nil, err
	}
	return logging.New(name, *f.format, level, os.Stderr)
}
