// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package campaigns

import (
	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/module"
)

// Name is the module's namespace and registry key.
const Name = "campaigns"

// Tag is the module discriminant campaign calls are dispatched under.
const Tag byte = 0x03

// CallEnvelope is the CBOR-encoded shape of every campaigns call payload.
type CallEnvelope struct {
	Method string
	Args   []byte
}

// GenesisConfig seeds the admin set, the global proposed-delegate set, and
// initial voting power.
type GenesisConfig struct {
	Admins            []auth.Address
	ProposedDelegates []auth.Address
	InitialPower      []PowerEntry
}

// Module is the campaigns module.
type Module struct{}

// New returns a fresh campaigns module.
func New() *Module { return &Module{} }

func (m *Module) Name() string { return Name }
func (m *Module) Tag() byte    { return Tag }

// Genesis seeds admins, the proposed-delegate set, and initial voting
// power.
func (m *Module) Genesis(ctx *module.HookContext, config []byte) error {
	if len(config) == 0 {
		return nil
	}
	var gen GenesisConfig
	if _, err := encoding.State.Unmarshal(config, &gen); err != nil {
		return err
	}
	store := NewStore(ctx.State)
	for _, a := range gen.Admins {
		store.SetAdmin(a, true)
	}
	for _, a := range gen.ProposedDelegates {
		store.SetProposedDelegate(a, true)
	}
	for _, pe := range gen.InitialPower {
		if err := store.SetVotingPower(pe.Address, pe.Power); err != nil {
			return err
		}
	}
	return nil
}

func (m *Module) BeginSlot(ctx *module.HookContext) error { return nil }
func (m *Module) EndSlot(ctx *module.HookContext) error   { return nil }
func (m *Module) Finalize(ctx *module.HookContext) error  { return nil }

// Call decodes the envelope and dispatches to the named method.
func (m *Module) Call(ctx *module.CallContext, payload []byte) (module.CallResponse, error) {
	var env CallEnvelope
	if _, err := encoding.State.Unmarshal(payload, &env); err != nil {
		return module.CallResponse{}, err
	}
	store := NewStore(ctx.State)

	switch env.Method {
	case "draft":
		return module.CallResponse{}, m.draft(ctx, store, env.Args)
	case "init":
		return module.CallResponse{}, m.init(ctx, store, env.Args)
	case "propose_criteria":
		return module.CallResponse{}, m.proposeCriteria(ctx, store, env.Args)
	case "vote_criteria":
		return module.CallResponse{}, m.voteCriteria(ctx, store, env.Args)
	case "confirm_criteria":
		return module.CallResponse{}, m.confirmCriteria(ctx, store, env.Args)
	case "reject_criteria":
		return module.CallResponse{}, ErrNotImplemented
	case "index_campaign":
		return module.CallResponse{}, m.indexCampaign(ctx, store, env.Args)
	case "post_segment":
		return module.CallResponse{}, m.postSegment(ctx, store, env.Args)
	case "vote_distribution":
		return module.CallResponse{}, m.voteDistribution(ctx, store, env.Args)
	case "conclude_distribution":
		return module.CallResponse{}, m.concludeDistribution(ctx, store, env.Args)
	case "cancel_campaign":
		return module.CallResponse{}, m.cancelCampaign(ctx, store, env.Args)
	case "fail_campaign":
		return module.CallResponse{}, m.failCampaign(ctx, store, env.Args)
	case "register_indexer":
		return module.CallResponse{}, m.registerIndexer(ctx, store, env.Args)
	case "unregister_indexer":
		return module.CallResponse{}, m.unregisterIndexer(ctx, store, env.Args)
	case "register_relayer":
		return module.CallResponse{}, m.registerRelayer(ctx, store, env.Args)
	case "unregister_relayer":
		return module.CallResponse{}, m.unregisterRelayer(ctx, store, env.Args)
	case "update_voting_power":
		return module.CallResponse{}, m.updateVotingPower(ctx, store, env.Args)
	default:
		return module.CallResponse{}, ErrUnknownMethod
	}
}
