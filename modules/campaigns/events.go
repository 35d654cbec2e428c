// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package campaigns

import "github.com/filament-zone/hub/auth"

// Event kinds emitted on every campaign phase transition and vote.
const (
	EventCampaignDrafted      = "campaign_drafted"
	EventCampaignInitialized  = "campaign_initialized"
	EventCriteriaProposed     = "criteria_proposed"
	EventCriteriaVoted        = "criteria_voted"
	EventCriteriaConfirmed    = "criteria_confirmed"
	EventCampaignIndexing     = "campaign_indexing"
	EventSegmentPosted        = "segment_posted"
	EventDistributionVoted    = "distribution_voted"
	EventDistributionConclude = "distribution_concluded"
	EventCampaignCanceled     = "campaign_canceled"
	EventCampaignFailed       = "campaign_failed"
	EventIndexerRegistered    = "indexer_registered"
	EventIndexerUnregistered  = "indexer_unregistered"
	EventRelayerRegistered    = "relayer_registered"
	EventRelayerUnregistered  = "relayer_unregistered"
	EventVotingPowerUpdated   = "voting_power_updated"
)

// CriteriaVotedPayload is the event body for EventCriteriaVoted, carrying
// the delegate's prior vote if any.
type CriteriaVotedPayload struct {
	CampaignID uint64
	Delegate   auth.Address
	Prior      *Vote
	Vote       Vote
}
