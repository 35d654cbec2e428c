// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/filament-zone/hub/slot"
	"github.com/filament-zone/hub/state"
	"github.com/filament-zone/hub/telemetry"
)

// cmdRun is the daemon loop: on a fixed tick, drain whatever batches are
// queued in the mempool directory into one slot, commit, persist, and
// report. There is no networked DA client wired in by default; swap the
// drainQueue call for an external.DAClient.Subscribe loop to drive this from
// a real data-availability feed instead.
func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	dbPath := fs.String("db", "hubd.db", "path to the local store file")
	mempoolDir := fs.String("mempool", "hubd-mempool", "directory queued batches are read from")
	network := fs.String("network", "local", "chain parameter preset: local, testnet, mainnet")
	tick := fs.Duration("tick", time.Second, "how often to check the mempool for new batches")
	healthInterval := fs.Duration("health-interval", 30*time.Second, "how often to run registered health checks")
	logFlags := addLogFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	logger, err := logFlags.build("run")
	if err != nil {
		fmt.Fprintln(os.Stderr, "hubd:", err)
		return exitUsageError
	}

	params, err := paramsForNetwork(*network)
	if err != nil {
		logger.Error("resolving network params", "err", err)
		return exitUsageError
	}

	store, err := loadStore(*dbPath)
	if err != nil {
		logger.Error("loading store", "err", err)
		return exitIOError
	}
	driver, err := newDriver(store, params, logger)
	if err != nil {
		logger.Error("constructing driver", "err", err)
		return exitUsageError
	}

	promReg := prometheus.NewRegistry()
	hub, err := telemetry.NewHub(telemetry.NewRegistry(), promReg)
	if err != nil {
		logger.Error("constructing metrics hub", "err", err)
		return exitIOError
	}

	healthReg := telemetry.NewHealthRegistry()
	healthReg.Register("slot_driver", driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(*tick)
	defer ticker.Stop()
	healthTicker := time.NewTicker(*healthInterval)
	defer healthTicker.Stop()

	logger.Info("running", "db", *dbPath, "mempool", *mempoolDir, "tick", tick.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return exitOK
		case <-healthTicker.C:
			reportHealth(ctx, logger, healthReg)
		case <-ticker.C:
			if err := applyOneSlot(driver, store, *dbPath, *mempoolDir, hub, logger); err != nil {
				logger.Error("apply_slot failed", "err", err)
				return exitSTFInvalid
			}
		}
	}
}

// reportHealth runs every registered check and logs anything unhealthy.
func reportHealth(ctx context.Context, logger log.Logger, reg *telemetry.HealthRegistry) {
	report := reg.RunAll(ctx)
	if report.Healthy {
		logger.Debug("health check passed", "checks", len(report.Checks))
		return
	}
	for _, c := range report.Checks {
		if !c.Healthy {
			logger.Warn("health check failed", "check", c.Name, "err", c.Error)
		}
	}
}

// applyOneSlot drains every currently queued blob into a single slot at the
// next height, commits, persists the result, and removes the consumed
// files only once the commit has succeeded.
func applyOneSlot(driver *slot.Driver, store *state.Store, dbPath, mempoolDir string, hub *telemetry.Hub, logger log.Logger) error {
	pending, err := drainQueue(mempoolDir)
	if err != nil {
		return fmt.Errorf("reading mempool: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	blobs := make([]slot.Blob, len(pending))
	for i, p := range pending {
		blobs[i] = slot.Blob{Submitter: p.submitter, Raw: p.raw, BatchID: uint64(i)}
	}

	latest := store.LatestSnapshot()
	header := slot.Header{Height: latest.Version() + 1, Time: time.Now().Unix()}

	receipt, err := driver.ApplySlot(latest.Root(), header, blobs)
	if err != nil {
		hub.SlotsReverted.Inc()
		return fmt.Errorf("apply_slot at height %d: %w", header.Height, err)
	}
	hub.SlotsApplied.Inc()

	if err := saveStore(dbPath, store); err != nil {
		return fmt.Errorf("persisting store: %w", err)
	}

	for _, p := range pending {
		if err := os.Remove(p.path); err != nil {
			logger.Warn("could not remove consumed blob", "path", p.path, "err", err)
		}
	}

	applied, ignored, reverted := 0, 0, 0
	for _, b := range receipt.Batches {
		switch {
		case b.Ignored:
			ignored++
		case b.Slashed:
			reverted++
		default:
			applied++
		}
	}
	logger.Info("slot applied", "height", header.Height, "root", fmt.Sprintf("%s", receipt.Root),
		"batches", len(receipt.Batches), "applied", applied, "ignored", ignored, "slashed", reverted)
	return nil
}
