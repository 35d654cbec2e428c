// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/modules/bank"
	"github.com/filament-zone/hub/modules/campaigns"
)

// genesisFile is the JSON-friendly mirror of the module genesis configs
// init-chain seeds; addresses are hex strings here and parsed into
// auth.Address before being CBOR-encoded for each module's Genesis hook.
type genesisFile struct {
	Network string `json:"network"`
	Bank    struct {
		Allocs []struct {
			Address string `json:"address"`
			Amount  uint64 `json:"amount"`
		} `json:"allocs"`
	} `json:"bank"`
	Campaigns struct {
		Admins            []string `json:"admins"`
		ProposedDelegates []string `json:"proposed_delegates"`
		InitialPower      []struct {
			Address string `json:"address"`
			Power   uint64 `json:"power"`
		} `json:"initial_power"`
	} `json:"campaigns"`
}

func loadGenesisConfigs(path string) (string, map[string][]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading genesis file: %w", err)
	}
	var gf genesisFile
	if err := json.Unmarshal(raw, &gf); err != nil {
		return "", nil, fmt.Errorf("parsing genesis file: %w", err)
	}

	configs := make(map[string][]byte)

	allocs := make([]bank.Alloc, 0, len(gf.Bank.Allocs))
	for _, a := range gf.Bank.Allocs {
		addr, err := auth.ParseAddress(a.Address)
		if err != nil {
			return "", nil, err
		}
		allocs = append(allocs, bank.Alloc{Address: addr, Amount: a.Amount})
	}
	if len(allocs) > 0 {
		raw, err := encoding.State.Marshal(encoding.CurrentVersion, bank.GenesisConfig{Allocs: allocs})
		if err != nil {
			return "", nil, err
		}
		configs[bank.Name] = raw
	}

	admins, err := parseAddresses(gf.Campaigns.Admins)
	if err != nil {
		return "", nil, err
	}
	delegates, err := parseAddresses(gf.Campaigns.ProposedDelegates)
	if err != nil {
		return "", nil, err
	}
	power := make([]campaigns.PowerEntry, 0, len(gf.Campaigns.InitialPower))
	for _, pe := range gf.Campaigns.InitialPower {
		addr, err := auth.ParseAddress(pe.Address)
		if err != nil {
			return "", nil, err
		}
		power = append(power, campaigns.PowerEntry{Address: addr, Power: pe.Power})
	}
	if len(admins) > 0 || len(delegates) > 0 || len(power) > 0 {
		raw, err := encoding.State.Marshal(encoding.CurrentVersion, campaigns.GenesisConfig{
			Admins:            admins,
			ProposedDelegates: delegates,
			InitialPower:      power,
		})
		if err != nil {
			return "", nil, err
		}
		configs[campaigns.Name] = raw
	}

	return gf.Network, configs, nil
}

func parseAddresses(in []string) ([]auth.Address, error) {
	out := make([]auth.Address, 0, len(in))
	for _, s := range in {
		addr, err := auth.ParseAddress(s)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}

func cmdInitChain(args []string) int {
	fs := flag.NewFlagSet("init-chain", flag.ContinueOnError)
	dbPath := fs.String("db", "hubd.db", "path to the local store file")
	genesisPath := fs.String("genesis", "", "path to a genesis JSON file")
	logFlags := addLogFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	logger, err := logFlags.build("init-chain")
	if err != nil {
		fmt.Fprintln(os.Stderr, "hubd:", err)
		return exitUsageError
	}
	if *genesisPath == "" {
		logger.Error("init-chain requires --genesis")
		return exitUsageError
	}

	network, configs, err := loadGenesisConfigs(*genesisPath)
	if err != nil {
		logger.Error("loading genesis file", "err", err)
		return exitUsageError
	}
	params, err := paramsForNetwork(network)
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

	root, err := driver.InitChain(configs)
	if err != nil {
		logger.Error("init-chain failed", "err", err)
		return exitSTFInvalid
	}
	if err := saveStore(*dbPath, store); err != nil {
		logger.Error("persisting store", "err", err)
		return exitIOError
	}

	logger.Info("chain initialized", "root", root)
	return exitOK
}
