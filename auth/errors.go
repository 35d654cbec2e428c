// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "errors"

// FatalError is attributable to the submitting sequencer: the batch is
// slashed and the delta reverted. errors.As dispatches on this in the slot
// driver.
type FatalError struct {
	Cause error
}

func (e *FatalError) Error() string { return "fatal: " + e.Cause.Error() }
func (e *FatalError) Unwrap() error { return e.Cause }

// InvalidError rejects the transaction and penalises the sequencer's gas
// bond, but does not slash the whole batch.
type InvalidError struct {
	Cause error
}

func (e *InvalidError) Error() string { return "invalid: " + e.Cause.Error() }
func (e *InvalidError) Unwrap() error { return e.Cause }

// GasError is a normal out-of-gas condition.
type GasError struct {
	Cause error
}

func (e *GasError) Error() string { return "gas: " + e.Cause.Error() }
func (e *GasError) Unwrap() error { return e.Cause }

var (
	ErrUnknownAuthVariant       = errors.New("auth: unknown auth variant")
	ErrSignatureVerification    = errors.New("auth: signature verification failed")
	ErrRecoveredKeyMismatch     = errors.New("auth: recovered key does not match embedded key")
	ErrInvalidChainID           = errors.New("auth: chain id mismatch")
	ErrMessageDecodingFailed    = errors.New("auth: message decoding failed")
	ErrMaxHeightExceeded        = errors.New("auth: current height exceeds body max height")
	ErrEmptyInputs              = errors.New("auth: body has no inputs")
	ErrUnregisteredRuntimeCall  = errors.New("auth: unregistered sequencer may only submit a registration call")
)
