// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command hubd drives a local sovereign-rollup state machine: it owns one
// persisted store, applies slots against it, and answers queries. It has no
// networked DA or RPC layer of its own; those are the external.DAClient,
// external.Prover, external.Relayer, external.TxSubmitter, and
// external.Querier interfaces, wired by whatever deployment embeds this
// binary's commands against a real transport.
package main

import (
	"fmt"
	"os"
)

// Exit codes, per the external interface's CLI contract.
const (
	exitOK         = 0
	exitUsageError = 1
	exitIOError    = 2
	exitSTFInvalid = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return exitUsageError
	}

	switch args[0] {
	case "init-chain":
		return cmdInitChain(args[1:])
	case "run":
		return cmdRun(args[1:])
	case "tx":
		return cmdTx(args[1:])
	case "query":
		return cmdQuery(args[1:])
	case "sequencer":
		return cmdSequencer(args[1:])
	case "-h", "--help", "help":
		usage()
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "hubd: unknown command %q\n", args[0])
		usage()
		return exitUsageError
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hubd <command> [flags]

commands:
  init-chain            seed genesis state and commit the initial root
  run                   apply queued batches to new slots as they arrive
  tx submit [flags] <file>   queue a raw signed transaction for the next slot
  query [flags] <path>       read a key from the latest (or --height) snapshot
  sequencer register    queue a bootstrap sequencer registration
  sequencer unregister  queue a sequencer deregistration`)
}
