// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bank

import (
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/internal/safemath"
	"github.com/filament-zone/hub/module"
)

// NativeToken is the token denomination gas is priced and paid in, and the
// only token bank currently tracks.
const NativeToken = "ufil"

// Ledger adapts a bank-namespaced ModuleState into gas.Ledger, giving the
// gas enforcer and the slot driver direct balance access outside the
// user-facing Call dispatch path.
type Ledger struct {
	state *module.ModuleState
}

// NewLedger wraps state, which must be bank's own ModuleState.
func NewLedger(state *module.ModuleState) *Ledger {
	return &Ledger{state: state}
}

func balanceKey(holder [20]byte, token string) string {
	hexHolder, _ := encoding.EncodeHex(encoding.HexNC, holder[:])
	return encoding.Key("balance", hexHolder, token)
}

// Balance returns holder's balance in token, 0 if never credited.
func (l *Ledger) Balance(holder [20]byte, token string) uint64 {
	raw, ok := l.state.Get(balanceKey(holder, token))
	if !ok {
		return 0
	}
	var amount uint64
	if _, err := encoding.State.Unmarshal(raw, &amount); err != nil {
		return 0
	}
	return amount
}

func (l *Ledger) setBalance(holder [20]byte, token string, amount uint64) error {
	raw, err := encoding.State.Marshal(encoding.CurrentVersion, amount)
	if err != nil {
		return err
	}
	l.state.Put(balanceKey(holder, token), raw)
	return nil
}

// Debit subtracts amount from holder's balance, failing if insufficient.
func (l *Ledger) Debit(holder [20]byte, token string, amount uint64) error {
	bal := l.Balance(holder, token)
	if bal < amount {
		return ErrInsufficientFunds
	}
	return l.setBalance(holder, token, bal-amount)
}

// Credit adds amount to holder's balance, auto-creating the account.
func (l *Ledger) Credit(holder [20]byte, token string, amount uint64) error {
	bal := l.Balance(holder, token)
	next, err := safemath.Add64(bal, amount)
	if err != nil {
		return err
	}
	return l.setBalance(holder, token, next)
}
