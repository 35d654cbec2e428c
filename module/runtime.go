// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package module

import (
	"errors"
	"fmt"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/state"
)

// ErrUnknownModuleTag is returned when a decoded call's discriminant names
// no registered module.
var ErrUnknownModuleTag = errors.New("module: unknown module tag")

// Descriptor names a module and fixes its position in dispatch order.
type Descriptor struct {
	Name   string
	Module Module
}

// Runtime holds a fixed, construction-time-ordered list of modules and
// dispatches decoded calls to them by discriminant in O(1).
type Runtime struct {
	descriptors []Descriptor
	byTag       map[byte]Module
}

// NewRuntime builds a Runtime from descriptors, in the order given. That
// order is the only permitted hook execution order for the lifetime of the
// runtime.
func NewRuntime(descriptors ...Descriptor) (*Runtime, error) {
	byTag := make(map[byte]Module, len(descriptors))
	for _, d := range descriptors {
		tag := d.Module.Tag()
		if _, exists := byTag[tag]; exists {
			return nil, fmt.Errorf("module: duplicate tag %d registered by %q", tag, d.Name)
		}
		byTag[tag] = d.Module
	}
	return &Runtime{descriptors: descriptors, byTag: byTag}, nil
}

// reads returns the cross-module read closure shared by every hook and call
// context derived from delta. Cross-module reads see the delta's pending
// writes too, since they happen within the same slot, not across a commit
// boundary.
func (r *Runtime) reads(delta *state.Delta) func(string) Accessor {
	return func(name string) Accessor {
		return newDeltaAccessor(delta, name)
	}
}

// hookContext builds a HookContext scoped to one module's namespace.
func (r *Runtime) hookContext(delta *state.Delta, height uint64, moduleName string) *HookContext {
	return &HookContext{
		Height: height,
		State:  newModuleState(delta, moduleName),
		Reads:  r.reads(delta),
	}
}

// Genesis runs every module's Genesis hook in registration order.
func (r *Runtime) Genesis(delta *state.Delta, configs map[string][]byte) error {
	for _, d := range r.descriptors {
		if err := d.Module.Genesis(r.hookContext(delta, 0, d.Name), configs[d.Name]); err != nil {
			return fmt.Errorf("module %q genesis: %w", d.Name, err)
		}
	}
	return nil
}

// BeginSlot runs every module's BeginSlot hook in registration order.
func (r *Runtime) BeginSlot(delta *state.Delta, height uint64) error {
	for _, d := range r.descriptors {
		if err := d.Module.BeginSlot(r.hookContext(delta, height, d.Name)); err != nil {
			return fmt.Errorf("module %q begin_slot: %w", d.Name, err)
		}
	}
	return nil
}

// EndSlot runs every module's EndSlot hook in registration order.
func (r *Runtime) EndSlot(delta *state.Delta, height uint64) error {
	for _, d := range r.descriptors {
		if err := d.Module.EndSlot(r.hookContext(delta, height, d.Name)); err != nil {
			return fmt.Errorf("module %q end_slot: %w", d.Name, err)
		}
	}
	return nil
}

// Finalize runs every module's Finalize hook in registration order, after
// commit.
func (r *Runtime) Finalize(delta *state.Delta, height uint64) error {
	for _, d := range r.descriptors {
		if err := d.Module.Finalize(r.hookContext(delta, height, d.Name)); err != nil {
			return fmt.Errorf("module %q finalize: %w", d.Name, err)
		}
	}
	return nil
}

// Dispatch routes one decoded call input to the module named by its tag.
func (r *Runtime) Dispatch(delta *state.Delta, height uint64, sender, sequencer auth.Address, tag byte, payload []byte) (CallResponse, error) {
	mod, ok := r.byTag[tag]
	if !ok {
		return CallResponse{}, fmt.Errorf("%w: %d", ErrUnknownModuleTag, tag)
	}

	ctx := &CallContext{
		Sender:    sender,
		Sequencer: sequencer,
		Height:    height,
		State:     newModuleState(delta, mod.Name()),
		Reads:     r.reads(delta),
	}
	return mod.Call(ctx, payload)
}

// Descriptors returns the registered descriptors in dispatch order.
func (r *Runtime) Descriptors() []Descriptor {
	return r.descriptors
}
