// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package module implements the fixed-order module runtime: registry,
// dispatch, and the namespaced state handle every module call sees.
package module

import (
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/state"
)

// ModuleState is the only way a module touches the store. Every key is
// transparently namespaced under the module's own name, so two modules can
// never collide on a key no matter what they choose to call it.
type ModuleState struct {
	delta *state.Delta
	name  string
}

func newModuleState(delta *state.Delta, name string) *ModuleState {
	return &ModuleState{delta: delta, name: name}
}

// NewModuleState builds a ModuleState scoped to name's namespace within
// delta, for callers outside the runtime that need direct access to a
// module's state — the slot driver's gas/nonce/bond bookkeeping, and
// module test suites.
func NewModuleState(delta *state.Delta, name string) *ModuleState {
	return newModuleState(delta, name)
}

// Get reads a module-local key.
func (m *ModuleState) Get(key string) ([]byte, bool) {
	return m.delta.Get([]byte(encoding.Key(m.name, key)))
}

// Put writes a module-local key.
func (m *ModuleState) Put(key string, value []byte) {
	m.delta.Put([]byte(encoding.Key(m.name, key)), value)
}

// Delete removes a module-local key.
func (m *ModuleState) Delete(key string) {
	m.delta.Delete([]byte(encoding.Key(m.name, key)))
}

// Iterate returns all key-value pairs under this module's namespace with
// the given local prefix.
func (m *ModuleState) Iterate(prefix string) []state.KVPair {
	return m.delta.Iterate([]byte(encoding.Key(m.name, prefix)))
}

// Emit buffers an event tagged with this module's name.
func (m *ModuleState) Emit(kind string, data []byte) {
	m.delta.Emit(state.Event{Module: m.name, Kind: kind, Data: data})
}

// Accessor is a read-only view into another module's state, handed out for
// cross-module reads like "balance of" without exposing the full delta or
// any write method.
type Accessor struct {
	get func(key string) ([]byte, bool)
}

// Get reads a module-local key through the accessor.
func (a Accessor) Get(key string) ([]byte, bool) {
	if a.get == nil {
		return nil, false
	}
	return a.get(key)
}

// NewAccessor returns a read-only accessor scoped to module name's
// namespace within a committed snapshot, used for query-time reads.
func NewAccessor(snapshot *state.Snapshot, name string) Accessor {
	return Accessor{get: func(key string) ([]byte, bool) {
		return snapshot.Get([]byte(encoding.Key(name, key)))
	}}
}

// newDeltaAccessor returns a read-only accessor scoped to module name's
// namespace within the slot's in-flight delta, used for cross-module reads
// during call dispatch within the same slot.
func newDeltaAccessor(delta *state.Delta, name string) Accessor {
	return Accessor{get: func(key string) ([]byte, bool) {
		return delta.Get([]byte(encoding.Key(name, key)))
	}}
}
