// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package campaigns

import (
	"fmt"
	"strings"

	"github.com/filament-zone/hub/auth"
	"github.com/filament-zone/hub/encoding"
	"github.com/filament-zone/hub/module"
)

// Store wraps a campaigns-namespaced ModuleState with typed accessors for
// every piece of module-global and per-campaign state.
type Store struct {
	state *module.ModuleState
}

// NewStore wraps state, which must be campaigns' own ModuleState.
func NewStore(state *module.ModuleState) *Store {
	return &Store{state: state}
}

func campaignKey(id uint64) string {
	return encoding.Uint64Key("campaign", id)
}

func originKey(origin string, originID uint64) string {
	return fmt.Sprintf("origin/%s/%d", origin, originID)
}

func addrHex(a auth.Address) string {
	s, _ := encoding.EncodeHex(encoding.HexNC, a[:])
	return s
}

// NextCampaignID returns and then advances the monotonic campaign id
// counter. It is never reused, even when a campaign is later canceled.
func (s *Store) NextCampaignID() uint64 {
	next := uint64(0)
	if raw, ok := s.state.Get("next_campaign_id"); ok {
		_, _ = encoding.State.Unmarshal(raw, &next)
	}
	raw, err := encoding.State.Marshal(encoding.CurrentVersion, next+1)
	if err == nil {
		s.state.Put("next_campaign_id", raw)
	}
	return next
}

// GetCampaign loads a campaign by id.
func (s *Store) GetCampaign(id uint64) (Campaign, bool) {
	raw, ok := s.state.Get(campaignKey(id))
	if !ok {
		return Campaign{}, false
	}
	var c Campaign
	if _, err := encoding.State.Unmarshal(raw, &c); err != nil {
		return Campaign{}, false
	}
	return c, true
}

// PutCampaign writes a campaign, and keeps the (origin, origin_id) index in
// sync for non-native campaigns.
func (s *Store) PutCampaign(c Campaign) error {
	raw, err := encoding.State.Marshal(encoding.CurrentVersion, c)
	if err != nil {
		return err
	}
	s.state.Put(campaignKey(c.ID), raw)
	if c.Origin != "" {
		idRaw, err := encoding.State.Marshal(encoding.CurrentVersion, c.ID)
		if err != nil {
			return err
		}
		s.state.Put(originKey(c.Origin, c.OriginID), idRaw)
	}
	return nil
}

// OriginExists reports whether a non-native (origin, origin_id) pair is
// already claimed by a campaign.
func (s *Store) OriginExists(origin string, originID uint64) bool {
	if origin == "" {
		return false
	}
	_, ok := s.state.Get(originKey(origin, originID))
	return ok
}

// IsAdmin reports whether addr was seeded as an admin at genesis.
func (s *Store) IsAdmin(addr auth.Address) bool {
	_, ok := s.state.Get("admin/" + addrHex(addr))
	return ok
}

func (s *Store) setFlag(prefix string, addr auth.Address, on bool) {
	key := prefix + "/" + addrHex(addr)
	if on {
		s.state.Put(key, []byte{1})
	} else {
		s.state.Delete(key)
	}
}

// SetAdmin seeds or revokes addr's admin flag.
func (s *Store) SetAdmin(addr auth.Address, on bool) { s.setFlag("admin", addr, on) }

// IsIndexer reports whether addr is a registered indexer.
func (s *Store) IsIndexer(addr auth.Address) bool {
	_, ok := s.state.Get("indexer/" + addrHex(addr))
	return ok
}

// SetIndexer registers or deregisters addr as an indexer.
func (s *Store) SetIndexer(addr auth.Address, on bool) { s.setFlag("indexer", addr, on) }

// IsRelayer reports whether addr is a registered relayer.
func (s *Store) IsRelayer(addr auth.Address) bool {
	_, ok := s.state.Get("relayer/" + addrHex(addr))
	return ok
}

// SetRelayer registers or deregisters addr as a relayer.
func (s *Store) SetRelayer(addr auth.Address, on bool) { s.setFlag("relayer", addr, on) }

// IsProposedDelegate reports whether addr is in the global proposed-
// delegate set that Draft seeds new campaigns' delegate lists from.
func (s *Store) IsProposedDelegate(addr auth.Address) bool {
	_, ok := s.state.Get("proposed_delegate/" + addrHex(addr))
	return ok
}

// SetProposedDelegate adds or removes addr from the proposed-delegate set.
func (s *Store) SetProposedDelegate(addr auth.Address, on bool) {
	s.setFlag("proposed_delegate", addr, on)
}

// ProposedDelegates returns every address currently in the proposed-
// delegate set.
func (s *Store) ProposedDelegates() []auth.Address {
	pairs := s.state.Iterate("proposed_delegate")
	out := make([]auth.Address, 0, len(pairs))
	for _, kv := range pairs {
		var a auth.Address
		idx := strings.LastIndex(string(kv.Key), "/")
		if idx < 0 {
			continue
		}
		hexPart := string(kv.Key)[idx+1:]
		if b, err := encoding.DecodeHex(encoding.HexNC, hexPart); err == nil && len(b) == len(a) {
			copy(a[:], b)
			out = append(out, a)
		}
	}
	return out
}

// VotingPower returns addr's current voting power, 0 if never set.
func (s *Store) VotingPower(addr auth.Address) uint64 {
	raw, ok := s.state.Get("power/" + addrHex(addr))
	if !ok {
		return 0
	}
	var power uint64
	_, _ = encoding.State.Unmarshal(raw, &power)
	return power
}

// SetVotingPower updates addr's power and re-sorts the denormalized
// descending power index. Entries of equal power keep their relative order
// from the existing index: a new address goes after its ties, and an
// updated address keeps its place among them, which is not necessarily
// first-insertion order.
func (s *Store) SetVotingPower(addr auth.Address, power uint64) error {
	raw, err := encoding.State.Marshal(encoding.CurrentVersion, power)
	if err != nil {
		return err
	}
	s.state.Put("power/"+addrHex(addr), raw)

	index := s.powerIndex()
	found := false
	for i := range index {
		if index[i].Address == addr {
			index[i].Power = power
			found = true
			break
		}
	}
	if !found {
		index = append(index, PowerEntry{Address: addr, Power: power})
	}
	// Insertion sort that swaps only on strictly greater power, so entries
	// of equal power keep their relative order from the existing index.
	for i := 1; i < len(index); i++ {
		for j := i; j > 0 && index[j].Power > index[j-1].Power; j-- {
			index[j], index[j-1] = index[j-1], index[j]
		}
	}
	idxRaw, err := encoding.State.Marshal(encoding.CurrentVersion, index)
	if err != nil {
		return err
	}
	s.state.Put("powers_index", idxRaw)
	return nil
}

func (s *Store) powerIndex() []PowerEntry {
	raw, ok := s.state.Get("powers_index")
	if !ok {
		return nil
	}
	var index []PowerEntry
	_, _ = encoding.State.Unmarshal(raw, &index)
	return index
}

// PowersIndex returns the current descending voting-power index.
func (s *Store) PowersIndex() []PowerEntry {
	return s.powerIndex()
}
