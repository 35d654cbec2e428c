// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package campaigns

import (
	"errors"
	"fmt"
)

var (
	ErrCampaignNotFound     = errors.New("campaigns: campaign not found")
	ErrCampaignExists       = errors.New("campaigns: campaign with this (origin, origin_id) already exists")
	ErrIdExists             = errors.New("campaigns: campaign id already exists")
	ErrSegmentExists        = errors.New("campaigns: segment already posted")
	ErrIndexerMismatch      = errors.New("campaigns: sender is not the assigned indexer")
	ErrInvalidEviction      = errors.New("campaigns: eviction is not a proposed delegate")
	ErrMissingCriteria      = errors.New("campaigns: criteria must be non-empty")
	ErrNextIdMissing        = errors.New("campaigns: next campaign id counter missing")
	ErrSenderNotCampaigner  = errors.New("campaigns: sender is not the campaigner")
	ErrInvalidProposer      = errors.New("campaigns: sender is not a delegate of this campaign")
	ErrSenderNotAdmin       = errors.New("campaigns: sender is not an admin")
	ErrIndexerNotRegistered = errors.New("campaigns: indexer is not registered")
	ErrRelayerNotRegistered = errors.New("campaigns: relayer is not registered")
	ErrNotImplemented       = errors.New("campaigns: call is reserved and not implemented")
	ErrUnknownMethod        = errors.New("campaigns: unknown call method")
	ErrProposalNotFound     = errors.New("campaigns: proposal not found")
)

// InvalidTransition is returned whenever a call is invalid for a
// campaign's current phase; state is left untouched.
type InvalidTransition struct {
	CampaignID uint64
	Current    Phase
	Attempted  string
}

func (e *InvalidTransition) Error() string {
	return fmt.Sprintf("campaigns: campaign %d: invalid transition %q from phase %s", e.CampaignID, e.Attempted, e.Current)
}
