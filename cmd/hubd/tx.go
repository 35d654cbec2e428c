// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	stded25519 "crypto/ed25519"
	"crypto/sha256"
	"flag"
	"fmt"
	"os"

	"github.com/filament-zone/hub/auth"
)

// sha256Hash matches auth.Authenticate's RawHash derivation, so a tx hash
// printed here is the same one that shows up in a later TxReceipt.
func sha256Hash(raw []byte) [32]byte {
	return sha256.Sum256(raw)
}

func signTx(pub stded25519.PublicKey, priv stded25519.PrivateKey, chainID, nonce, gasLimit, maxFeePerGas uint64, inputs []auth.Input) ([]byte, error) {
	body := auth.Body{
		ChainID:      chainID,
		AccountID:    auth.DeriveCredentialID(pub),
		Nonce:        nonce,
		GasLimit:     gasLimit,
		MaxFeePerGas: maxFeePerGas,
		Inputs:       inputs,
	}
	sig := stded25519.Sign(priv, auth.SignBytes(body))
	return auth.EncodeTransaction(auth.Transaction{
		Cred: auth.Credential{Variant: auth.AuthEd25519, PubKey: pub, Signature: sig},
		Body: body,
	})
}

func cmdTx(args []string) int {
	if len(args) == 0 || args[0] != "submit" {
		fmt.Fprintln(os.Stderr, "hubd: usage: hubd tx submit [flags] <file>")
		return exitUsageError
	}
	args = args[1:]

	fs := flag.NewFlagSet("tx submit", flag.ContinueOnError)
	mempoolDir := fs.String("mempool", "hubd-mempool", "directory queued batches are written to")
	submitterHex := fs.String("submitter", "", "hex address of the sequencer submitting this batch")
	logFlags := addLogFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	logger, err := logFlags.build("tx")
	if err != nil {
		fmt.Fprintln(os.Stderr, "hubd:", err)
		return exitUsageError
	}
	if fs.NArg() != 1 {
		logger.Error("tx submit requires exactly one <file> argument after any flags")
		return exitUsageError
	}
	if *submitterHex == "" {
		logger.Error("tx submit requires --submitter")
		return exitUsageError
	}

	submitter, err := auth.ParseAddress(*submitterHex)
	if err != nil {
		logger.Error("parsing submitter", "err", err)
		return exitUsageError
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		logger.Error("reading tx file", "err", err)
		return exitIOError
	}

	if _, err := auth.DecodeTransaction(raw); err != nil {
		logger.Error("not a valid encoded transaction", "err", err)
		return exitUsageError
	}

	if err := queueBlob(*mempoolDir, submitter, raw); err != nil {
		logger.Error("queuing transaction", "err", err)
		return exitIOError
	}

	hash := sha256Hash(raw)
	logger.Info("queued tx", "hash", fmt.Sprintf("%x", hash))
	return exitOK
}
