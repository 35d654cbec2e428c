// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package module

import "github.com/filament-zone/hub/auth"

// CallResponse is returned by a successful module call, together with any
// number of events already buffered on the call's ModuleState.
type CallResponse struct {
	Data []byte
}

// CallContext carries the ambient information every module call needs:
// who sent it, who sequenced it, the currently visible height, and its own
// namespaced write handle plus read access to other modules' state. Those
// reads go through the slot's delta, so they see writes made earlier in the
// same slot.
type CallContext struct {
	Sender    auth.Address
	Sequencer auth.Address
	Height    uint64
	State     *ModuleState
	Reads     func(module string) Accessor
}

// HookContext is passed to BeginSlot/EndSlot/Finalize/Genesis, which have
// no sender/sequencer of their own.
type HookContext struct {
	Height uint64
	State  *ModuleState
	Reads  func(module string) Accessor
}

// Module is one of the fixed-order modules the runtime dispatches into.
// Modules may not call each other directly; cross-module reads go through
// CallContext.Reads / HookContext.Reads.
type Module interface {
	// Name identifies the module and namespaces its state.
	Name() string

	// Tag is the discriminant byte a decoded call's ModuleTag must match
	// for the runtime to route to this module.
	Tag() byte

	// Genesis seeds this module's initial state.
	Genesis(ctx *HookContext, config []byte) error

	// BeginSlot runs once per slot before any call dispatches.
	BeginSlot(ctx *HookContext) error

	// Call handles one decoded, authenticated call payload.
	Call(ctx *CallContext, payload []byte) (CallResponse, error)

	// EndSlot runs once per slot after all calls have dispatched.
	EndSlot(ctx *HookContext) error

	// Finalize runs after commit, for accessory non-Merkleised bookkeeping.
	Finalize(ctx *HookContext) error
}
