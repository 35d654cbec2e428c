// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	require.Equal(t, exitUsageError, run([]string{"frobnicate"}))
}

func TestRunRejectsNoArgs(t *testing.T) {
	require.Equal(t, exitUsageError, run(nil))
}

func TestRunHelp(t *testing.T) {
	require.Equal(t, exitOK, run([]string{"help"}))
}

func TestInitChainRequiresGenesisFlag(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "hubd.db")
	require.Equal(t, exitUsageError, run([]string{"init-chain", "--db", dbPath}))
}

func TestInitChainQueryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "hubd.db")
	genesisPath := filepath.Join(dir, "genesis.json")

	var addr auth.Address
	addr[0] = 0xAB

	genesis := fmt.Sprintf(`{
		"network": "local",
		"bank": {"allocs": [{"address": "%s", "amount": 1000}]}
	}`, addr.String())
	require.NoError(t, os.WriteFile(genesisPath, []byte(genesis), 0o644))

	require.Equal(t, exitOK, run([]string{"init-chain", "--db", dbPath, "--genesis", genesisPath}))

	hexAddr, err := encoding.EncodeHex(encoding.HexNC, addr[:])
	require.NoError(t, err)
	key := encoding.Key("bank", "balance", hexAddr, "ufil")
	code := run([]string{"query", "--db", dbPath, key})
	require.Equal(t, exitOK, code)
}

func TestTxSubmitRejectsMissingSubmitter(t *testing.T) {
	dir := t.TempDir()
	txFile := filepath.Join(dir, "tx.bin")
	require.NoError(t, os.WriteFile(txFile, []byte("not-a-real-tx"), 0o644))
	require.Equal(t, exitUsageError, run([]string{"tx", "submit", "--mempool", filepath.Join(dir, "mempool"), txFile}))
}

func TestTxSubmitRejectsMalformedTransaction(t *testing.T) {
	dir := t.TempDir()
	txFile := filepath.Join(dir, "tx.bin")
	require.NoError(t, os.WriteFile(txFile, []byte("not-a-real-tx"), 0o644))

	var addr auth.Address
	addr[0] = 0x01
	code := run([]string{"tx", "submit", "--submitter", addr.String(), "--mempool", filepath.Join(dir, "mempool"), txFile})
	require.Equal(t, exitUsageError, code)
}

func TestSequencerRegisterRequiresBond(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{"sequencer", "register", "--key", filepath.Join(dir, "key")})
	require.Equal(t, exitUsageError, code)
}

func TestSequencerRegisterQueuesBatch(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "key")
	mempoolDir := filepath.Join(dir, "mempool")

	code := run([]string{
		"sequencer", "register",
		"--key", keyPath,
		"--mempool", mempoolDir,
		"--bond", "1000",
	})
	require.Equal(t, exitOK, code)

	entries, err := os.ReadDir(mempoolDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
