// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the hub's chain parameters: the constants that
// govern gas pricing, sequencer bonding, the unregistered-sequencer
// bootstrap quota, and the campaign criteria cap,
// with validated presets for local development, testnet, and mainnet.
package config

import (
	"errors"
	"time"
)

var (
	ErrParamsInvalid          = errors.New("invalid chain parameters")
	ErrInvalidChainID         = errors.New("chain id must be nonzero")
	ErrInvalidMinBond         = errors.New("minimum sequencer bond must be > 0")
	ErrInvalidBaseFee         = errors.New("base fee per gas must be > 0")
	ErrInvalidUnregisteredCap = errors.New("unregistered blobs per slot must be >= 0")
)

// Params holds the chain-wide constants the STF enforces every slot.
type Params struct {
	// ChainID is matched against every transaction's Body.ChainID.
	ChainID uint64

	// MinSequencerBond is the configured minimum sequencer bond; Valid
	// requires it to be nonzero. Neither registration nor batch bonding
	// compares a sequencer's bond against it.
	MinSequencerBond uint64

	// BaseFeePerGas prices gas reservations and sequencer bonding.
	BaseFeePerGas uint64

	// UnregisteredBlobsPerSlot bounds how many blobs from unbonded
	// sequencers may bootstrap-register in a single slot.
	UnregisteredBlobsPerSlot int

	// UnbondingDelay is the configured unbonding period for a deregistering
	// sequencer's bond. No component reads it: deregistration only marks
	// the sequencer's record, and no bond is released.
	UnbondingDelay time.Duration

	// MaxCampaignCriteria is the configured cap on a campaign's criteria
	// list length. No component reads it: Draft rejects only an empty list.
	MaxCampaignCriteria int
}

// Mainnet returns production chain parameters.
func Mainnet() Params {
	return Params{
		ChainID:                   1,
		MinSequencerBond:          1_000_000,
		BaseFeePerGas:             1,
		UnregisteredBlobsPerSlot:  1,
		UnbondingDelay:            21 * 24 * time.Hour,
		MaxCampaignCriteria:       32,
	}
}

// Testnet returns testnet chain parameters: same shape as Mainnet with a
// shorter unbonding delay so operators can iterate on sequencer churn.
func Testnet() Params {
	p := Mainnet()
	p.ChainID = 2
	p.UnbondingDelay = time.Hour
	return p
}

// Local returns development parameters with a trivial bond and immediate
// unbonding, so a single-node devnet can register/deregister freely.
func Local() Params {
	return Params{
		ChainID:                  1337,
		MinSequencerBond:         100,
		BaseFeePerGas:            1,
		UnregisteredBlobsPerSlot: 4,
		UnbondingDelay:           0,
		MaxCampaignCriteria:      32,
	}
}

// Valid checks that params describe a usable chain.
func (p Params) Valid() error {
	if p.ChainID == 0 {
		return ErrInvalidChainID
	}
	if p.MinSequencerBond == 0 {
		return ErrInvalidMinBond
	}
	if p.BaseFeePerGas == 0 {
		return ErrInvalidBaseFee
	}
	if p.UnregisteredBlobsPerSlot < 0 {
		return ErrInvalidUnregisteredCap
	}
	return nil
}
