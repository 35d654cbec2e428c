// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/modules/sequencer"
)

func cmdSequencer(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "hubd: usage: hubd sequencer register|unregister [flags]")
		return exitUsageError
	}

	switch args[0] {
	case "register":
		return sequencerRegister(args[1:])
	case "unregister":
		return sequencerUnregister(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "hubd: unknown sequencer subcommand %q\n", args[0])
		return exitUsageError
	}
}

func sequencerRegister(args []string) int {
	fs := flag.NewFlagSet("sequencer register", flag.ContinueOnError)
	mempoolDir := fs.String("mempool", "hubd-mempool", "directory queued batches are written to")
	keyPath := fs.String("key", "hubd.key", "path to this sequencer's signing key")
	chainID := fs.Uint64("chain-id", 1337, "chain id this registration targets")
	nonce := fs.Uint64("nonce", 0, "account nonce for this transaction")
	gasLimit := fs.Uint64("gas-limit", 21_000, "gas limit declared on this transaction")
	maxFeePerGas := fs.Uint64("max-fee", 1, "max fee per gas declared on this transaction")
	bond := fs.Uint64("bond", 0, "bond amount to register with")
	logFlags := addLogFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	logger, err := logFlags.build("sequencer")
	if err != nil {
		fmt.Fprintln(os.Stderr, "hubd:", err)
		return exitUsageError
	}
	if *bond == 0 {
		logger.Error("sequencer register requires --bond > 0")
		return exitUsageError
	}

	pub, priv, err := loadOrCreateKey(*keyPath)
	if err != nil {
		logger.Error("loading signing key", "err", err)
		return exitIOError
	}

	args2, err := encoding.State.Marshal(encoding.CurrentVersion, sequencer.RegisterArgs{BondAmount: *bond})
	if err != nil {
		logger.Error("encoding register args", "err", err)
		return exitUsageError
	}
	payload, err := encoding.State.Marshal(encoding.CurrentVersion, sequencer.CallEnvelope{Method: "register", Args: args2})
	if err != nil {
		logger.Error("encoding call envelope", "err", err)
		return exitUsageError
	}

	raw, err := signTx(pub, priv, *chainID, *nonce, *gasLimit, *maxFeePerGas, []auth.Input{{ModuleTag: sequencer.Tag, Payload: payload}})
	if err != nil {
		logger.Error("signing transaction", "err", err)
		return exitUsageError
	}

	submitter := auth.AddressFromCredential(auth.DeriveCredentialID(pub))
	if err := queueBlob(*mempoolDir, submitter, raw); err != nil {
		logger.Error("queuing transaction", "err", err)
		return exitIOError
	}

	logger.Info("queued registration", "submitter", submitter.String(), "bond", *bond)
	return exitOK
}

func sequencerUnregister(args []string) int {
	fs := flag.NewFlagSet("sequencer unregister", flag.ContinueOnError)
	mempoolDir := fs.String("mempool", "hubd-mempool", "directory queued batches are written to")
	keyPath := fs.String("key", "hubd.key", "path to this sequencer's signing key")
	chainID := fs.Uint64("chain-id", 1337, "chain id this deregistration targets")
	nonce := fs.Uint64("nonce", 0, "account nonce for this transaction")
	gasLimit := fs.Uint64("gas-limit", 21_000, "gas limit declared on this transaction")
	maxFeePerGas := fs.Uint64("max-fee", 1, "max fee per gas declared on this transaction")
	logFlags := addLogFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	logger, err := logFlags.build("sequencer")
	if err != nil {
		fmt.Fprintln(os.Stderr, "hubd:", err)
		return exitUsageError
	}

	pub, priv, err := loadOrCreateKey(*keyPath)
	if err != nil {
		logger.Error("loading signing key", "err", err)
		return exitIOError
	}

	payload, err := encoding.State.Marshal(encoding.CurrentVersion, sequencer.CallEnvelope{Method: "deregister"})
	if err != nil {
		logger.Error("encoding call envelope", "err", err)
		return exitUsageError
	}

	raw, err := signTx(pub, priv, *chainID, *nonce, *gasLimit, *maxFeePerGas, []auth.Input{{ModuleTag: sequencer.Tag, Payload: payload}})
	if err != nil {
		logger.Error("signing transaction", "err", err)
		return exitUsageError
	}

	submitter := auth.AddressFromCredential(auth.DeriveCredentialID(pub))
	if err := queueBlob(*mempoolDir, submitter, raw); err != nil {
		logger.Error("queuing transaction", "err", err)
		return exitIOError
	}

	logger.Info("queued deregistration", "submitter", submitter.String())
	return exitOK
}
