// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/filament-zone/hub/external"
)

func cmdQuery(args []string) int {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	dbPath := fs.String("db", "hubd.db", "path to the local store file")
	height := fs.Uint64("height", 0, "snapshot height to read (0 = latest)")
	logFlags := addLogFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	logger, err := logFlags.build("query")
	if err != nil {
		fmt.Fprintln(os.Stderr, "hubd:", err)
		return exitUsageError
	}
	if fs.NArg() != 1 {
		logger.Error("usage: hubd query [--db PATH] [--height H] <path>")
		return exitUsageError
	}

	store, err := loadStore(*dbPath)
	if err != nil {
		logger.Error("loading store", "err", err)
		return exitIOError
	}

	q := external.NewStoreQuerier(store)
	res, err := q.Query(context.Background(), []byte(fs.Arg(0)), *height)
	if err != nil {
		logger.Error("query failed", "err", err)
		return exitUsageError
	}
	if !res.Found {
		logger.Info("key not found", "height", res.Height)
		return exitOK
	}

	logger.Info("query result", "height", res.Height, "value", fmt.Sprintf("%x", res.Value))
	return exitOK
}
