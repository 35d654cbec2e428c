// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sequencer tracks which DA addresses are registered to sequence
// batches, the bond amount each declared at registration, which one is
// preferred, and whether it has asked to deregister. It keeps records only:
// registering does not debit the bank ledger, and no component credits a
// bond back after deregistration, so a deregistering sequencer stays
// registered.
package sequencer

import (
	"errors"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/module"
)

// Name is the module's namespace and registry key.
const Name = "sequencer"

// Tag is the module discriminant, fixed to auth.RegisterSequencerTag so an
// unbonded sequencer's bootstrap registration routes here without any
// other module being reachable first.
const Tag = auth.RegisterSequencerTag

var (
	ErrAlreadyRegistered = errors.New("sequencer: already registered")
	ErrNotRegistered     = errors.New("sequencer: not registered")
	ErrUnbonding         = errors.New("sequencer: already deregistering")
	ErrUnknownMethod     = errors.New("sequencer: unknown call method")
)

// CallEnvelope is the CBOR-encoded shape of every sequencer call payload.
type CallEnvelope struct {
	Method string
	Args   []byte
}

// RegisterArgs is the argument shape for the "register" method.
type RegisterArgs struct {
	BondAmount uint64
}

// Record is one DA address's bonding state.
type Record struct {
	DAAddress auth.Address
	Bond      uint64
	Preferred bool

	// Deregistering is set once the sequencer has requested exit.
	Deregistering bool
	// ReleaseHeight is the slot height of the deregister call, set when
	// Deregistering flips true. No unbonding delay is added to it, and
	// nothing releases the bond when it is reached.
	ReleaseHeight uint64
}

// Module is the sequencer module.
type Module struct{}

// New returns a fresh sequencer module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return Name }
func (m *Module) Tag() byte    { return Tag }

func (m *Module) Genesis(ctx *module.HookContext, config []byte) error { return nil }
func (m *Module) BeginSlot(ctx *module.HookContext) error              { return nil }
func (m *Module) EndSlot(ctx *module.HookContext) error                { return nil }
func (m *Module) Finalize(ctx *module.HookContext) error               { return nil }

func recordKey(da auth.Address) string {
	hexDA, _ := encoding.EncodeHex(encoding.HexNC, da[:])
	return encoding.Key("record", hexDA)
}

// Records adapts a sequencer-namespaced ModuleState into the get/put
// surface the slot driver uses to read and update bonding records
// directly, outside of Call dispatch.
type Records struct {
	state *module.ModuleState
}

// NewRecords wraps state, which must be sequencer's own ModuleState.
func NewRecords(state *module.ModuleState) *Records {
	return &Records{state: state}
}

// Get returns da's bonding record, if one exists.
func (r *Records) Get(da auth.Address) (Record, bool) {
	raw, ok := r.state.Get(recordKey(da))
	if !ok {
		return Record{}, false
	}
	var rec Record
	if _, err := encoding.State.Unmarshal(raw, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

// Put writes da's bonding record.
func (r *Records) Put(rec Record) error {
	raw, err := encoding.State.Marshal(encoding.CurrentVersion, rec)
	if err != nil {
		return err
	}
	r.state.Put(recordKey(rec.DAAddress), raw)
	return nil
}

// IsRegistered reports whether da currently holds an active (not fully
// released) bond.
func (r *Records) IsRegistered(da auth.Address) bool {
	rec, ok := r.Get(da)
	return ok && rec.Bond > 0
}

// Call dispatches a decoded sequencer call to its method. Register is the
// one call an unbonded sequencer's blob may carry (see
// auth.AuthenticateUnregistered); Deregister requires an already-registered
// sender and is authenticated through the normal path.
func (m *Module) Call(ctx *module.CallContext, payload []byte) (module.CallResponse, error) {
	var env CallEnvelope
	if _, err := encoding.State.Unmarshal(payload, &env); err != nil {
		return module.CallResponse{}, err
	}

	records := NewRecords(ctx.State)
	switch env.Method {
	case "register":
		var args RegisterArgs
		if _, err := encoding.State.Unmarshal(env.Args, &args); err != nil {
			return module.CallResponse{}, err
		}
		return module.CallResponse{}, m.register(ctx, records, args)
	case "deregister":
		return module.CallResponse{}, m.deregister(ctx, records)
	default:
		return module.CallResponse{}, ErrUnknownMethod
	}
}

func (m *Module) register(ctx *module.CallContext, records *Records, args RegisterArgs) error {
	if _, ok := records.Get(ctx.Sender); ok {
		return ErrAlreadyRegistered
	}
	// The first registered sequencer becomes preferred by default; a
	// later governance call to change preference is out of scope here.
	preferred := true
	for _, existing := range allRecords(records, ctx) {
		if existing.Preferred {
			preferred = false
			break
		}
	}
	rec := Record{DAAddress: ctx.Sender, Bond: args.BondAmount, Preferred: preferred}
	if err := records.Put(rec); err != nil {
		return err
	}
	ctx.State.Emit("registered", nil)
	return nil
}

func (m *Module) deregister(ctx *module.CallContext, records *Records) error {
	rec, ok := records.Get(ctx.Sender)
	if !ok {
		return ErrNotRegistered
	}
	if rec.Deregistering {
		return ErrUnbonding
	}
	rec.Deregistering = true
	rec.ReleaseHeight = ctx.Height // no unbonding delay is added
	if err := records.Put(rec); err != nil {
		return err
	}
	ctx.State.Emit("deregistering", nil)
	return nil
}

// allRecords scans every record under the sequencer namespace through the
// module's own write-side state, used only by register's preferred-seat
// check.
func allRecords(records *Records, ctx *module.CallContext) []Record {
	pairs := ctx.State.Iterate("record")
	out := make([]Record, 0, len(pairs))
	for _, kv := range pairs {
		var rec Record
		if _, err := encoding.State.Unmarshal(kv.Value, &rec); err == nil {
			out = append(out, rec)
		}
	}
	return out
}
