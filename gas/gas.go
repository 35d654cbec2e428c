// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gas implements per-transaction gas reservation/refund and
// sequencer bond accounting.
package gas

import (
	"errors"

	"github.com/filament-zone/hub/internal/safemath"
)

const (
	// HashGasPerByte is the per-byte gas price MeterHash applies to the
	// raw-tx hash auth computes. Authenticate computes that cost but does
	// not charge it to any reservation or bond.
	HashGasPerByte uint64 = 1

	// BaseVerifyGas is the fixed cost of one signature verification.
	BaseVerifyGas uint64 = 3_000
)

var (
	ErrInsufficientBalance = errors.New("gas: insufficient balance for reservation")
	ErrInsufficientBond    = errors.New("gas: sequencer bond cannot cover batch max gas")
	ErrOverConsumed        = errors.New("gas: consumption exceeds reservation")
)

// MeterHash returns the gas cost of hashing n bytes of raw transaction
// data. It only computes the cost; Authenticate calls it and discards the
// result.
func MeterHash(n int) uint64 {
	cost, err := safemath.Mul64(HashGasPerByte, uint64(n))
	if err != nil {
		return ^uint64(0)
	}
	return cost
}

// Ledger is the narrow balance-mutation surface the gas enforcer needs from
// the bank module, avoiding a direct import of modules/bank.
type Ledger interface {
	Balance(holder [20]byte, token string) uint64
	Debit(holder [20]byte, token string, amount uint64) error
	Credit(holder [20]byte, token string, amount uint64) error
}

// NativeToken is the token denomination gas is priced and paid in.
const NativeToken = "ufil"

// Reservation tracks one transaction's reserved gas from creation through
// consumption and refund.
type Reservation struct {
	sender    [20]byte
	ledger    Ledger
	reserved  uint64
	consumed  uint64
	maxFeeGas uint64
}

// Enforcer reserves and refunds gas against the bank ledger, and locks and
// releases sequencer bonds.
type Enforcer struct {
	ledger Ledger
}

// NewEnforcer returns an Enforcer backed by ledger.
func NewEnforcer(ledger Ledger) *Enforcer {
	return &Enforcer{ledger: ledger}
}

// ReserveTx debits maxFee from sender's balance up front. It is returned
// via Refund once actual consumption is known.
func (e *Enforcer) ReserveTx(sender [20]byte, maxFee uint64) (*Reservation, error) {
	if e.ledger.Balance(sender, NativeToken) < maxFee {
		return nil, ErrInsufficientBalance
	}
	if err := e.ledger.Debit(sender, NativeToken, maxFee); err != nil {
		return nil, err
	}
	return &Reservation{sender: sender, ledger: e.ledger, reserved: maxFee, maxFeeGas: maxFee}, nil
}

// Consume records amount as spent against the reservation.
func (r *Reservation) Consume(amount uint64) error {
	next, err := safemath.Add64(r.consumed, amount)
	if err != nil {
		return err
	}
	if next > r.reserved {
		return ErrOverConsumed
	}
	r.consumed = next
	return nil
}

// Remaining returns the unconsumed portion of the reservation.
func (r *Reservation) Remaining() uint64 {
	return r.reserved - r.consumed
}

// Refund credits the unused portion back to the sender, pays baseFee to
// the prover-incentives pool, and priorityFee to the sequencer. baseFee and
// priorityFee must not exceed the consumed amount.
func (r *Reservation) Refund(proverPool, sequencer [20]byte, baseFee, priorityFee uint64) error {
	remaining := r.Remaining()
	if remaining > 0 {
		if err := r.ledger.Credit(r.sender, NativeToken, remaining); err != nil {
			return err
		}
	}
	if baseFee > 0 {
		if err := r.ledger.Credit(proverPool, NativeToken, baseFee); err != nil {
			return err
		}
	}
	if priorityFee > 0 {
		if err := r.ledger.Credit(sequencer, NativeToken, priorityFee); err != nil {
			return err
		}
	}
	return nil
}

// Bond is a sequencer's locked stake for one batch, sized to the batch's
// declared max gas at the slot's base fee.
type Bond struct {
	sequencer [20]byte
	ledger    Ledger
	amount    uint64
	released  bool
}

// BondSequencer locks amount = batchMaxGas * baseFeePerGas from the
// sequencer's balance.
func (e *Enforcer) BondSequencer(daAddr [20]byte, batchMaxGas, baseFeePerGas uint64) (*Bond, error) {
	amount, err := safemath.Mul64(batchMaxGas, baseFeePerGas)
	if err != nil {
		return nil, err
	}
	if e.ledger.Balance(daAddr, NativeToken) < amount {
		return nil, ErrInsufficientBond
	}
	if err := e.ledger.Debit(daAddr, NativeToken, amount); err != nil {
		return nil, err
	}
	return &Bond{sequencer: daAddr, ledger: e.ledger, amount: amount}, nil
}

// Amount returns the bonded amount, for callers that need to size a
// forfeiture.
func (b *Bond) Amount() uint64 {
	return b.amount
}

// Release returns the full bonded amount to the sequencer. Safe to call at
// most once; a second call is a no-op.
func (b *Bond) Release() error {
	if b.released || b.amount == 0 {
		b.released = true
		return nil
	}
	b.released = true
	return b.ledger.Credit(b.sequencer, NativeToken, b.amount)
}

// Forfeit releases amount less than the full bond back to the sequencer and
// burns the rest as a penalty for a malformed batch.
func (b *Bond) Forfeit(penalty uint64) error {
	if b.released {
		return nil
	}
	b.released = true
	refund, err := safemath.Sub64(b.amount, safemath.Min64(penalty, b.amount))
	if err != nil {
		return err
	}
	if refund == 0 {
		return nil
	}
	return b.ledger.Credit(b.sequencer, NativeToken, refund)
}
