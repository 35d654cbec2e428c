// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/slot"
)

// queueBlob writes a single-transaction batch to dir as one file named by
// the submitting sequencer's address and a monotonically increasing
// sequence number, so `run` can later read it back in submission order.
func queueBlob(dir string, submitter auth.Address, rawTx []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating mempool dir: %w", err)
	}
	batch, err := slot.EncodeBatch([][]byte{rawTx})
	if err != nil {
		return err
	}

	seq, err := nextSeq(dir)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%020d-%s.blob", seq, strings.TrimPrefix(submitter.String(), "0x"))
	return os.WriteFile(filepath.Join(dir, name), batch, 0o644)
}

func nextSeq(dir string) (uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	var next uint64
	for _, e := range entries {
		seqPart, _, ok := strings.Cut(e.Name(), "-")
		if !ok {
			continue
		}
		n, err := strconv.ParseUint(seqPart, 10, 64)
		if err == nil && n >= next {
			next = n + 1
		}
	}
	return next, nil
}

// pendingBlob is one queued batch read back off disk, paired with its
// source file so the caller can remove it once applied.
type pendingBlob struct {
	path      string
	submitter auth.Address
	raw       []byte
}

// drainQueue reads every queued blob file in dir in submission order.
func drainQueue(dir string) ([]pendingBlob, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".blob") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]pendingBlob, 0, len(names))
	for _, name := range names {
		_, rest, ok := strings.Cut(name, "-")
		if !ok {
			continue
		}
		hexAddr := strings.TrimSuffix(rest, ".blob")
		addr, err := auth.ParseAddress(hexAddr)
		if err != nil {
			continue
		}
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, pendingBlob{path: path, submitter: addr, raw: raw})
	}
	return out, nil
}
