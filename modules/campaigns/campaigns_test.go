// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package campaigns

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/module"
	"github.com/filament-zone/hub/state"
)

func newModuleState(t *testing.T) *module.ModuleState {
	t.Helper()
	store := state.NewStore(state.NewMemKV())
	delta := store.OpenDelta(store.LatestSnapshot())
	return module.NewModuleState(delta, Name)
}

func call(t *testing.T, m *Module, ms *module.ModuleState, sender auth.Address, method string, args interface{}) error {
	t.Helper()
	var argBytes []byte
	if args != nil {
		b, err := encoding.State.Marshal(encoding.CurrentVersion, args)
		require.NoError(t, err)
		argBytes = b
	}
	payload, err := encoding.State.Marshal(encoding.CurrentVersion, CallEnvelope{Method: method, Args: argBytes})
	require.NoError(t, err)
	_, err = m.Call(&module.CallContext{Sender: sender, State: ms}, payload)
	return err
}

// TestCampaignHappyPath mirrors spec.md's end-to-end "Campaign happy path"
// scenario: genesis registers delegate D with power 100, campaigner C
// drafts, inits, D proposes and votes criteria, C confirms.
func TestCampaignHappyPath(t *testing.T) {
	ms := newModuleState(t)
	store := NewStore(ms)

	var campaigner, delegate auth.Address
	campaigner[0] = 0xC
	delegate[0] = 0xD

	store.SetProposedDelegate(delegate, true)
	require.NoError(t, store.SetVotingPower(delegate, 100))

	m := New()

	require.NoError(t, call(t, m, ms, campaigner, "draft", DraftArgs{
		Title:     "campaign zero",
		Criteria:  []Criterion{"c1"},
		Evictions: nil,
	}))

	c, ok := store.GetCampaign(0)
	require.True(t, ok)
	require.Equal(t, PhaseDraft, c.Phase)
	require.Equal(t, uint64(100), c.Delegates[addrHex(delegate)])

	require.NoError(t, call(t, m, ms, campaigner, "init", InitArgs{CampaignID: 0}))
	c, _ = store.GetCampaign(0)
	require.Equal(t, PhaseCriteria, c.Phase)

	require.NoError(t, call(t, m, ms, delegate, "propose_criteria", ProposeCriteriaArgs{
		CampaignID: 0,
		Criteria:   []Criterion{"c1-revised"},
	}))
	c, _ = store.GetCampaign(0)
	require.Len(t, c.Proposals, 1)
	require.Equal(t, uint64(0), c.Proposals[0].ProposalID)

	require.NoError(t, call(t, m, ms, delegate, "vote_criteria", VoteCriteriaArgs{
		CampaignID: 0,
		Vote:       VoteAccept,
	}))
	c, _ = store.GetCampaign(0)
	require.Equal(t, VoteAccept, c.CriteriaVotes[addrHex(delegate)])

	proposalID := uint64(0)
	require.NoError(t, call(t, m, ms, campaigner, "confirm_criteria", ConfirmCriteriaArgs{
		CampaignID: 0,
		ProposalID: &proposalID,
	}))
	c, _ = store.GetCampaign(0)
	require.Equal(t, PhasePublish, c.Phase)
	require.Equal(t, []Criterion{"c1-revised"}, c.Criteria)
}

func TestDraftRejectsEmptyCriteria(t *testing.T) {
	ms := newModuleState(t)
	m := New()
	var campaigner auth.Address
	err := call(t, m, ms, campaigner, "draft", DraftArgs{Title: "x"})
	require.ErrorIs(t, err, ErrMissingCriteria)
}

func TestDraftRejectsInvalidEviction(t *testing.T) {
	ms := newModuleState(t)
	m := New()
	var campaigner, notProposed auth.Address
	notProposed[0] = 9
	err := call(t, m, ms, campaigner, "draft", DraftArgs{
		Title:     "x",
		Criteria:  []Criterion{"c1"},
		Evictions: []auth.Address{notProposed},
	})
	require.ErrorIs(t, err, ErrInvalidEviction)
}

func TestInitRejectsNonCampaigner(t *testing.T) {
	ms := newModuleState(t)
	store := NewStore(ms)
	m := New()
	var campaigner, other auth.Address
	campaigner[0] = 1
	other[0] = 2
	require.NoError(t, call(t, m, ms, campaigner, "draft", DraftArgs{Title: "x", Criteria: []Criterion{"c1"}}))

	err := call(t, m, ms, other, "init", InitArgs{CampaignID: 0})
	require.ErrorIs(t, err, ErrSenderNotCampaigner)
	c, _ := store.GetCampaign(0)
	require.Equal(t, PhaseDraft, c.Phase)
}

func TestRejectCriteriaIsReserved(t *testing.T) {
	ms := newModuleState(t)
	m := New()
	var campaigner auth.Address
	err := call(t, m, ms, campaigner, "reject_criteria", nil)
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestRegisterIndexerRequiresAdmin(t *testing.T) {
	ms := newModuleState(t)
	m := New()
	var sender, indexer auth.Address
	err := call(t, m, ms, sender, "register_indexer", RegisterIndexerArgs{Indexer: indexer})
	require.ErrorIs(t, err, ErrSenderNotAdmin)
}

func TestUpdateVotingPowerKeepsIndexSortedDescending(t *testing.T) {
	ms := newModuleState(t)
	store := NewStore(ms)
	m := New()
	var admin, relayer, a, b, c auth.Address
	admin[0], relayer[0], a[0], b[0], c[0] = 1, 2, 3, 4, 5
	store.SetAdmin(admin, true)

	require.NoError(t, call(t, m, ms, admin, "register_relayer", RegisterRelayerArgs{Relayer: relayer}))
	require.NoError(t, call(t, m, ms, relayer, "update_voting_power", UpdateVotingPowerArgs{Address: a, Power: 10}))
	require.NoError(t, call(t, m, ms, relayer, "update_voting_power", UpdateVotingPowerArgs{Address: b, Power: 50}))
	require.NoError(t, call(t, m, ms, relayer, "update_voting_power", UpdateVotingPowerArgs{Address: c, Power: 30}))

	index := store.PowersIndex()
	require.Len(t, index, 3)
	require.Equal(t, b, index[0].Address)
	require.Equal(t, c, index[1].Address)
	require.Equal(t, a, index[2].Address)
}
