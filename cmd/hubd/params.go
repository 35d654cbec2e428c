// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/filament-zone/hub/config"
)

func paramsForNetwork(name string) (config.Params, error) {
	var p config.Params
	switch name {
	case "", "local":
		p = config.Local()
	case "testnet":
		p = config.Testnet()
	case "mainnet":
		p = config.Mainnet()
	default:
		return config.Params{}, fmt.Errorf("unknown --network %q (want local, testnet, or mainnet)", name)
	}
	if err := p.Valid(); err != nil {
		return config.Params{}, err
	}
	return p, nil
}
