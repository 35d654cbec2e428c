// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package campaigns

import (
	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/internal/set"
	"github.com/filament-zone/hub/module"
)

func decodeArgs(raw []byte, v interface{}) error {
	_, err := encoding.State.Unmarshal(raw, v)
	return err
}

func emit(ctx *module.CallContext, kind string, payload interface{}) {
	data, err := encoding.State.Marshal(encoding.CurrentVersion, payload)
	if err != nil {
		return
	}
	ctx.State.Emit(kind, data)
}

func isDelegate(c Campaign, addr auth.Address) bool {
	_, ok := c.Delegates[addrHex(addr)]
	return ok
}

// DraftArgs is the argument shape for "draft".
type DraftArgs struct {
	Title       string
	Description string
	Criteria    []Criterion
	Evictions   []auth.Address
	Origin      string
	OriginID    uint64
}

func (m *Module) draft(ctx *module.CallContext, store *Store, raw []byte) error {
	var args DraftArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	if len(args.Criteria) == 0 {
		return ErrMissingCriteria
	}
	if store.OriginExists(args.Origin, args.OriginID) {
		return ErrCampaignExists
	}

	proposed := store.ProposedDelegates()
	proposedSet := set.Of(proposed...)
	evicted := set.Of(args.Evictions...)
	for e := range evicted {
		if !proposedSet.Contains(e) {
			return ErrInvalidEviction
		}
	}

	delegates := make(map[string]uint64)
	for _, p := range proposed {
		if evicted.Contains(p) {
			continue
		}
		delegates[addrHex(p)] = store.VotingPower(p)
	}

	id := store.NextCampaignID()
	c := Campaign{
		ID:          id,
		Campaigner:  ctx.Sender,
		Phase:       PhaseDraft,
		Title:       args.Title,
		Description: args.Description,
		Criteria:    args.Criteria,
		Evictions:   args.Evictions,
		Delegates:   delegates,
		Origin:      args.Origin,
		OriginID:    args.OriginID,
	}
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventCampaignDrafted, c.ID)
	return nil
}

// InitArgs is the argument shape for "init".
type InitArgs struct {
	CampaignID uint64
}

func (m *Module) init(ctx *module.CallContext, store *Store, raw []byte) error {
	var args InitArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	c, ok := store.GetCampaign(args.CampaignID)
	if !ok {
		return ErrCampaignNotFound
	}
	if c.Campaigner != ctx.Sender {
		return ErrSenderNotCampaigner
	}
	if c.Phase != PhaseDraft {
		return &InvalidTransition{CampaignID: c.ID, Current: c.Phase, Attempted: "init"}
	}
	c.Phase = PhaseCriteria
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventCampaignInitialized, c.ID)
	return nil
}

// ProposeCriteriaArgs is the argument shape for "propose_criteria".
type ProposeCriteriaArgs struct {
	CampaignID uint64
	Criteria   []Criterion
}

func (m *Module) proposeCriteria(ctx *module.CallContext, store *Store, raw []byte) error {
	var args ProposeCriteriaArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	c, ok := store.GetCampaign(args.CampaignID)
	if !ok {
		return ErrCampaignNotFound
	}
	if !isDelegate(c, ctx.Sender) {
		return ErrInvalidProposer
	}
	if c.Phase != PhaseCriteria {
		return &InvalidTransition{CampaignID: c.ID, Current: c.Phase, Attempted: "propose_criteria"}
	}
	if len(args.Criteria) == 0 {
		return ErrMissingCriteria
	}
	proposalID := uint64(len(c.Proposals))
	c.Proposals = append(c.Proposals, CriteriaProposal{
		ProposalID: proposalID,
		Proposer:   ctx.Sender,
		Criteria:   args.Criteria,
	})
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventCriteriaProposed, c.ID)
	return nil
}

// VoteCriteriaArgs is the argument shape for "vote_criteria".
type VoteCriteriaArgs struct {
	CampaignID uint64
	Vote       Vote
}

func (m *Module) voteCriteria(ctx *module.CallContext, store *Store, raw []byte) error {
	var args VoteCriteriaArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	c, ok := store.GetCampaign(args.CampaignID)
	if !ok {
		return ErrCampaignNotFound
	}
	if !isDelegate(c, ctx.Sender) {
		return ErrInvalidProposer
	}
	if c.Phase != PhaseCriteria {
		return &InvalidTransition{CampaignID: c.ID, Current: c.Phase, Attempted: "vote_criteria"}
	}
	if c.CriteriaVotes == nil {
		c.CriteriaVotes = make(map[string]Vote)
	}
	var prior *Vote
	if v, ok := c.CriteriaVotes[addrHex(ctx.Sender)]; ok {
		p := v
		prior = &p
	}
	c.CriteriaVotes[addrHex(ctx.Sender)] = args.Vote
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventCriteriaVoted, CriteriaVotedPayload{
		CampaignID: c.ID,
		Delegate:   ctx.Sender,
		Prior:      prior,
		Vote:       args.Vote,
	})
	return nil
}

// ConfirmCriteriaArgs is the argument shape for "confirm_criteria".
type ConfirmCriteriaArgs struct {
	CampaignID uint64
	ProposalID *uint64
}

func (m *Module) confirmCriteria(ctx *module.CallContext, store *Store, raw []byte) error {
	var args ConfirmCriteriaArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	c, ok := store.GetCampaign(args.CampaignID)
	if !ok {
		return ErrCampaignNotFound
	}
	if c.Campaigner != ctx.Sender {
		return ErrSenderNotCampaigner
	}
	if c.Phase != PhaseCriteria {
		return &InvalidTransition{CampaignID: c.ID, Current: c.Phase, Attempted: "confirm_criteria"}
	}
	if args.ProposalID != nil {
		if *args.ProposalID >= uint64(len(c.Proposals)) {
			return ErrProposalNotFound
		}
		c.Criteria = c.Proposals[*args.ProposalID].Criteria
	}
	c.Phase = PhasePublish
	c.CriteriaVotes = nil
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventCriteriaConfirmed, c.ID)
	return nil
}

// IndexCampaignArgs is the argument shape for "index_campaign".
type IndexCampaignArgs struct {
	CampaignID uint64
}

func (m *Module) indexCampaign(ctx *module.CallContext, store *Store, raw []byte) error {
	var args IndexCampaignArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	c, ok := store.GetCampaign(args.CampaignID)
	if !ok {
		return ErrCampaignNotFound
	}
	if c.Phase != PhasePublish {
		return &InvalidTransition{CampaignID: c.ID, Current: c.Phase, Attempted: "index_campaign"}
	}
	// An assigned indexer claims the role; absent an assignment, the
	// campaigner may claim it directly as a temporary shortcut.
	if c.Indexer != nil {
		if *c.Indexer != ctx.Sender {
			return ErrIndexerMismatch
		}
	} else if ctx.Sender != c.Campaigner {
		if !store.IsIndexer(ctx.Sender) {
			return ErrIndexerNotRegistered
		}
	}
	indexer := ctx.Sender
	c.Indexer = &indexer
	c.Phase = PhaseIndexing
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventCampaignIndexing, c.ID)
	return nil
}

// PostSegmentArgs is the argument shape for "post_segment".
type PostSegmentArgs struct {
	CampaignID uint64
	Segment    []byte
}

func (m *Module) postSegment(ctx *module.CallContext, store *Store, raw []byte) error {
	var args PostSegmentArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	c, ok := store.GetCampaign(args.CampaignID)
	if !ok {
		return ErrCampaignNotFound
	}
	if c.Indexer == nil || *c.Indexer != ctx.Sender {
		return ErrIndexerMismatch
	}
	if c.Phase != PhaseIndexing {
		return &InvalidTransition{CampaignID: c.ID, Current: c.Phase, Attempted: "post_segment"}
	}
	if len(c.Segment) != 0 {
		return ErrSegmentExists
	}
	c.Segment = args.Segment
	c.Phase = PhaseDistribution
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventSegmentPosted, c.ID)
	return nil
}

// VoteDistributionArgs is the argument shape for "vote_distribution".
type VoteDistributionArgs struct {
	CampaignID uint64
	Vote       Vote
}

func (m *Module) voteDistribution(ctx *module.CallContext, store *Store, raw []byte) error {
	var args VoteDistributionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	c, ok := store.GetCampaign(args.CampaignID)
	if !ok {
		return ErrCampaignNotFound
	}
	if !isDelegate(c, ctx.Sender) {
		return ErrInvalidProposer
	}
	if c.Phase != PhaseDistribution {
		return &InvalidTransition{CampaignID: c.ID, Current: c.Phase, Attempted: "vote_distribution"}
	}
	if c.DistributionVotes == nil {
		c.DistributionVotes = make(map[string]Vote)
	}
	c.DistributionVotes[addrHex(ctx.Sender)] = args.Vote
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventDistributionVoted, c.ID)
	return nil
}

// ConcludeDistributionArgs is the argument shape for
// "conclude_distribution".
type ConcludeDistributionArgs struct {
	CampaignID uint64
}

func (m *Module) concludeDistribution(ctx *module.CallContext, store *Store, raw []byte) error {
	var args ConcludeDistributionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	c, ok := store.GetCampaign(args.CampaignID)
	if !ok {
		return ErrCampaignNotFound
	}
	if ctx.Sender != c.Campaigner && !store.IsAdmin(ctx.Sender) {
		return ErrSenderNotCampaigner
	}
	if c.Phase != PhaseDistribution {
		return &InvalidTransition{CampaignID: c.ID, Current: c.Phase, Attempted: "conclude_distribution"}
	}
	c.Phase = PhaseFinished
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventDistributionConclude, c.ID)
	return nil
}

// CancelCampaignArgs is the argument shape for "cancel_campaign".
type CancelCampaignArgs struct {
	CampaignID uint64
}

func (m *Module) cancelCampaign(ctx *module.CallContext, store *Store, raw []byte) error {
	var args CancelCampaignArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	c, ok := store.GetCampaign(args.CampaignID)
	if !ok {
		return ErrCampaignNotFound
	}
	if c.Campaigner != ctx.Sender {
		return ErrSenderNotCampaigner
	}
	switch c.Phase {
	case PhaseCanceled, PhaseFailed, PhaseFinished:
		return &InvalidTransition{CampaignID: c.ID, Current: c.Phase, Attempted: "cancel_campaign"}
	}
	c.Phase = PhaseCanceled
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventCampaignCanceled, c.ID)
	return nil
}

// FailCampaignArgs is the argument shape for "fail_campaign".
type FailCampaignArgs struct {
	CampaignID uint64
}

func (m *Module) failCampaign(ctx *module.CallContext, store *Store, raw []byte) error {
	var args FailCampaignArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	if !store.IsAdmin(ctx.Sender) {
		return ErrSenderNotAdmin
	}
	c, ok := store.GetCampaign(args.CampaignID)
	if !ok {
		return ErrCampaignNotFound
	}
	switch c.Phase {
	case PhaseCanceled, PhaseFailed, PhaseFinished:
		return &InvalidTransition{CampaignID: c.ID, Current: c.Phase, Attempted: "fail_campaign"}
	}
	c.Phase = PhaseFailed
	if err := store.PutCampaign(c); err != nil {
		return err
	}
	emit(ctx, EventCampaignFailed, c.ID)
	return nil
}

// RegisterIndexerArgs is the argument shape for "register_indexer".
type RegisterIndexerArgs struct {
	Indexer auth.Address
}

func (m *Module) registerIndexer(ctx *module.CallContext, store *Store, raw []byte) error {
	var args RegisterIndexerArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	if !store.IsAdmin(ctx.Sender) {
		return ErrSenderNotAdmin
	}
	store.SetIndexer(args.Indexer, true)
	emit(ctx, EventIndexerRegistered, args.Indexer)
	return nil
}

// UnregisterIndexerArgs is the argument shape for "unregister_indexer".
type UnregisterIndexerArgs struct {
	Indexer auth.Address
}

func (m *Module) unregisterIndexer(ctx *module.CallContext, store *Store, raw []byte) error {
	var args UnregisterIndexerArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	if !store.IsAdmin(ctx.Sender) {
		return ErrSenderNotAdmin
	}
	if !store.IsIndexer(args.Indexer) {
		return ErrIndexerNotRegistered
	}
	store.SetIndexer(args.Indexer, false)
	emit(ctx, EventIndexerUnregistered, args.Indexer)
	return nil
}

// RegisterRelayerArgs is the argument shape for "register_relayer".
type RegisterRelayerArgs struct {
	Relayer auth.Address
}

func (m *Module) registerRelayer(ctx *module.CallContext, store *Store, raw []byte) error {
	var args RegisterRelayerArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	if !store.IsAdmin(ctx.Sender) {
		return ErrSenderNotAdmin
	}
	store.SetRelayer(args.Relayer, true)
	emit(ctx, EventRelayerRegistered, args.Relayer)
	return nil
}

// UnregisterRelayerArgs is the argument shape for "unregister_relayer".
type UnregisterRelayerArgs struct {
	Relayer auth.Address
}

func (m *Module) unregisterRelayer(ctx *module.CallContext, store *Store, raw []byte) error {
	var args UnregisterRelayerArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	if !store.IsAdmin(ctx.Sender) {
		return ErrSenderNotAdmin
	}
	if !store.IsRelayer(args.Relayer) {
		return ErrRelayerNotRegistered
	}
	store.SetRelayer(args.Relayer, false)
	emit(ctx, EventRelayerUnregistered, args.Relayer)
	return nil
}

// UpdateVotingPowerArgs is the argument shape for "update_voting_power".
type UpdateVotingPowerArgs struct {
	Address auth.Address
	Power   uint64
}

func (m *Module) updateVotingPower(ctx *module.CallContext, store *Store, raw []byte) error {
	var args UpdateVotingPowerArgs
	if err := decodeArgs(raw, &args); err != nil {
		return err
	}
	if !store.IsRelayer(ctx.Sender) {
		return ErrRelayerNotRegistered
	}
	if err := store.SetVotingPower(args.Address, args.Power); err != nil {
		return err
	}
	emit(ctx, EventVotingPowerUpdated, args)
	return nil
}
