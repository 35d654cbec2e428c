// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package campaigns implements the campaign/indexer/relayer state machine:
// the multi-phase coordination game among a campaigner, its delegates, and
// an assigned indexer.
package campaigns

import "github.com/filament-zone/hub/auth"

// Phase is one state of the campaign lifecycle. Phases are disjoint and
// transitions are guarded: no call ever moves a campaign backward.
type Phase int

const (
	PhaseDraft Phase = iota
	PhaseCriteria
	PhasePublish
	PhaseIndexing
	PhaseDistribution
	PhaseCanceled
	PhaseFailed
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseDraft:
		return "draft"
	case PhaseCriteria:
		return "criteria"
	case PhasePublish:
		return "publish"
	case PhaseIndexing:
		return "indexing"
	case PhaseDistribution:
		return "distribution"
	case PhaseCanceled:
		return "canceled"
	case PhaseFailed:
		return "failed"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Vote is a delegate's ballot on a criteria proposal or a distribution.
type Vote int

const (
	VoteAccept Vote = iota
	VoteReject
)

// Criterion is one acceptance criterion attached to a campaign or proposed
// as a revision during the Criteria phase.
type Criterion string

// PowerEntry is one address's entry in the voting-power index.
type PowerEntry struct {
	Address auth.Address
	Power   uint64
}

// CriteriaProposal is one delegate's proposed revision to a campaign's
// criteria, keyed by its position in the proposal list.
type CriteriaProposal struct {
	ProposalID uint64
	Proposer   auth.Address
	Criteria   []Criterion
}

// Campaign is the protocol's first-class workflow object.
type Campaign struct {
	ID          uint64
	Campaigner  auth.Address
	Phase       Phase
	Title       string
	Description string
	Criteria    []Criterion
	Evictions   []auth.Address

	// Delegates maps a delegate address (hex string) to its voting power
	// as seeded at Draft time.
	Delegates map[string]uint64

	Indexer *auth.Address

	// Origin and OriginID identify the external system this campaign
	// mirrors, if any. Origin == "" means a native, hub-originated
	// campaign, exempt from the (origin, origin_id) uniqueness check.
	Origin   string
	OriginID uint64

	Proposals []CriteriaProposal

	// CriteriaVotes is the current Criteria-phase ballot, keyed by
	// delegate address hex, reset whenever ConfirmCriteria moves the
	// campaign out of Criteria.
	CriteriaVotes map[string]Vote

	Segment []byte

	// DistributionVotes is the Distribution-phase ballot, keyed by
	// delegate address hex.
	DistributionVotes map[string]Vote
}
