// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package accounts tracks one replay-protection nonce per credential id.
// It has no user-facing call surface: the slot driver is the sole writer,
// incrementing a sender's nonce exactly once per dispatched transaction.
package accounts

import (
	"errors"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/module"
)

// Name is the module's namespace and registry key.
const Name = "accounts"

// Tag is the module discriminant. No transaction ever targets it directly.
const Tag byte = 0x02

var (
	// ErrNoPublicCalls is returned by Call: accounts exposes no calls of
	// its own, only the Nonces helper the slot driver uses directly.
	ErrNoPublicCalls = errors.New("accounts: module has no public calls")
	ErrBadNonce      = errors.New("accounts: nonce does not match expected value")
)

// Module is the accounts module.
type Module struct{}

// New returns a fresh accounts module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return Name }
func (m *Module) Tag() byte    { return Tag }

func (m *Module) Genesis(ctx *module.HookContext, config []byte) error { return nil }
func (m *Module) BeginSlot(ctx *module.HookContext) error              { return nil }
func (m *Module) EndSlot(ctx *module.HookContext) error                { return nil }
func (m *Module) Finalize(ctx *module.HookContext) error               { return nil }

// Call always fails: accounts has no transactions of its own.
func (m *Module) Call(ctx *module.CallContext, payload []byte) (module.CallResponse, error) {
	return module.CallResponse{}, ErrNoPublicCalls
}

func nonceKey(cred auth.CredentialID) string {
	hexCred, _ := encoding.EncodeHex(encoding.HexNC, cred[:])
	return encoding.Key("nonce", hexCred)
}

// Nonces adapts an accounts-namespaced ModuleState into the narrow
// get/check/increment surface the slot driver needs for replay protection.
type Nonces struct {
	state *module.ModuleState
}

// NewNonces wraps state, which must be accounts' own ModuleState.
func NewNonces(state *module.ModuleState) *Nonces {
	return &Nonces{state: state}
}

// Get returns cred's current nonce, 0 if never set.
func (n *Nonces) Get(cred auth.CredentialID) uint64 {
	raw, ok := n.state.Get(nonceKey(cred))
	if !ok {
		return 0
	}
	var nonce uint64
	if _, err := encoding.State.Unmarshal(raw, &nonce); err != nil {
		return 0
	}
	return nonce
}

// CheckAndIncrement verifies txNonce matches cred's current nonce and, if
// so, advances it by one. It is called exactly once per dispatched
// transaction, whether or not the call itself later succeeds.
func (n *Nonces) CheckAndIncrement(cred auth.CredentialID, txNonce uint64) error {
	current := n.Get(cred)
	if txNonce != current {
		return ErrBadNonce
	}
	raw, err := encoding.State.Marshal(encoding.CurrentVersion, current+1)
	if err != nil {
		return err
	}
	n.state.Put(nonceKey(cred), raw)
	return nil
}
