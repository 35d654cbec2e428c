// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bank implements the fungible balance ledger: per-address,
// per-token balances, a user-facing transfer call, and the Ledger surface
// the gas enforcer debits and credits directly.
package bank

import (
	"errors"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/module"
)

// Name is the module's namespace and registry key.
const Name = "bank"

// Tag is the module discriminant bank calls are dispatched under.
const Tag byte = 0x01

var (
	ErrInsufficientFunds = errors.New("bank: insufficient funds")
	ErrUnknownMethod     = errors.New("bank: unknown call method")
	ErrZeroAmount        = errors.New("bank: amount must be > 0")
)

// CallEnvelope is the CBOR-encoded shape of every bank call payload: a
// method name and its CBOR-encoded arguments.
type CallEnvelope struct {
	Method string
	Args   []byte
}

// TransferArgs is the argument shape for the "transfer" method.
type TransferArgs struct {
	To     auth.Address
	Amount uint64
}

// Alloc seeds one address's balance at genesis.
type Alloc struct {
	Address auth.Address
	Amount  uint64
}

// GenesisConfig is the CBOR-decoded shape of bank's genesis config blob.
type GenesisConfig struct {
	Allocs []Alloc
}

// Module is the bank module.
type Module struct{}

// New returns a fresh bank module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return Name }
func (m *Module) Tag() byte    { return Tag }

// Genesis credits every allocation in config to its address.
func (m *Module) Genesis(ctx *module.HookContext, config []byte) error {
	if len(config) == 0 {
		return nil
	}
	var gen GenesisConfig
	if _, err := encoding.State.Unmarshal(config, &gen); err != nil {
		return err
	}
	ledger := NewLedger(ctx.State)
	for _, alloc := range gen.Allocs {
		if err := ledger.Credit([20]byte(alloc.Address), NativeToken, alloc.Amount); err != nil {
			return err
		}
	}
	return nil
}

func (m *Module) BeginSlot(ctx *module.HookContext) error { return nil }
func (m *Module) EndSlot(ctx *module.HookContext) error   { return nil }
func (m *Module) Finalize(ctx *module.HookContext) error  { return nil }

// Call dispatches a decoded bank call to its method.
func (m *Module) Call(ctx *module.CallContext, payload []byte) (module.CallResponse, error) {
	var env CallEnvelope
	if _, err := encoding.State.Unmarshal(payload, &env); err != nil {
		return module.CallResponse{}, err
	}

	switch env.Method {
	case "transfer":
		var args TransferArgs
		if _, err := encoding.State.Unmarshal(env.Args, &args); err != nil {
			return module.CallResponse{}, err
		}
		return module.CallResponse{}, m.transfer(ctx, args)
	default:
		return module.CallResponse{}, ErrUnknownMethod
	}
}

func (m *Module) transfer(ctx *module.CallContext, args TransferArgs) error {
	if args.Amount == 0 {
		return ErrZeroAmount
	}
	ledger := NewLedger(ctx.State)
	if err := ledger.Debit([20]byte(ctx.Sender), NativeToken, args.Amount); err != nil {
		return err
	}
	if err := ledger.Credit([20]byte(args.To), NativeToken, args.Amount); err != nil {
		return err
	}
	ctx.State.Emit("transfer", nil)
	return nil
}
