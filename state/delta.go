// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import "sort"

// Event is a single state-change notification buffered on a Delta while a
// call or slot hook runs, and surfaced once the delta is applied. Modules
// use it to record campaign phase transitions, bond releases, and the like
// without forcing the caller to diff the before/after snapshot.
type Event struct {
	Module string
	Kind   string
	Data   []byte
}

// Recorder observes every read and write a Delta sees, used by the witness
// package to build the proof set a prover needs to replay a slot without
// the full store. Implementations decide for themselves whether to record
// only a key's first touch in a slot.
type Recorder interface {
	OnRead(key []byte, found bool)
	OnWrite(key []byte)
}

// Delta is a write-buffered overlay opened from a Snapshot. Reads see
// pending writes layered over the base snapshot; nothing is visible to any
// other delta or snapshot until Apply runs.
type Delta struct {
	base     *Snapshot
	writes   map[string][]byte
	deletes  map[string]struct{}
	events   []Event
	recorder Recorder
}

// SetRecorder attaches r to observe every subsequent Get/Put/Delete. Pass
// nil to stop recording.
func (d *Delta) SetRecorder(r Recorder) {
	d.recorder = r
}

// OpenDelta opens a new write-buffered overlay on top of base.
func OpenDelta(base *Snapshot) *Delta {
	return &Delta{
		base:    base,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}
}

// Get returns the value for key, checking pending writes before falling
// back to the base snapshot.
func (d *Delta) Get(key []byte) ([]byte, bool) {
	k := string(key)
	if _, deleted := d.deletes[k]; deleted {
		if d.recorder != nil {
			d.recorder.OnRead(key, false)
		}
		return nil, false
	}
	if v, ok := d.writes[k]; ok {
		out := make([]byte, len(v))
		copy(out, v)
		if d.recorder != nil {
			d.recorder.OnRead(key, true)
		}
		return out, true
	}
	v, ok := d.base.Get(key)
	if d.recorder != nil {
		d.recorder.OnRead(key, ok)
	}
	return v, ok
}

// Put buffers a write.
func (d *Delta) Put(key, value []byte) {
	k := string(key)
	delete(d.deletes, k)
	v := make([]byte, len(value))
	copy(v, value)
	d.writes[k] = v
	if d.recorder != nil {
		d.recorder.OnWrite(key)
	}
}

// Delete buffers a delete.
func (d *Delta) Delete(key []byte) {
	k := string(key)
	delete(d.writes, k)
	d.deletes[k] = struct{}{}
	if d.recorder != nil {
		d.recorder.OnWrite(key)
	}
}

// Emit buffers an event to be surfaced when this delta is applied.
func (d *Delta) Emit(e Event) {
	d.events = append(d.events, e)
}

// Events returns the events buffered on this delta so far.
func (d *Delta) Events() []Event {
	return d.events
}

// Iterate returns all key-value pairs with the given prefix as seen through
// this delta, merging pending writes over the base snapshot.
func (d *Delta) Iterate(prefix []byte) []KVPair {
	merged := make(map[string][]byte)
	for _, kv := range d.base.Iterate(prefix) {
		merged[string(kv.Key)] = kv.Value
	}
	p := string(prefix)
	for k, v := range d.writes {
		if len(k) >= len(p) && k[:len(p)] == p {
			merged[k] = v
		}
	}
	for k := range d.deletes {
		delete(merged, k)
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]KVPair, len(keys))
	for i, k := range keys {
		out[i] = KVPair{Key: []byte(k), Value: merged[k]}
	}
	return out
}

// Mark is a checkpoint of a Delta's buffered state, taken to later undo
// everything written since, without disturbing anything written before.
// Used by the slot driver to revert a single transaction's writes on
// module failure while keeping its already-applied nonce and gas charges,
// and to revert a whole batch on a fatal authentication error.
type Mark struct {
	writes    map[string][]byte
	deletes   map[string]struct{}
	eventsLen int
}

// Mark snapshots d's current buffered writes, deletes, and event count.
func (d *Delta) Mark() Mark {
	writes := make(map[string][]byte, len(d.writes))
	for k, v := range d.writes {
		writes[k] = v
	}
	deletes := make(map[string]struct{}, len(d.deletes))
	for k := range d.deletes {
		deletes[k] = struct{}{}
	}
	return Mark{writes: writes, deletes: deletes, eventsLen: len(d.events)}
}

// Rollback restores d to the state captured by m, discarding every write,
// delete, and event buffered since.
func (d *Delta) Rollback(m Mark) {
	d.writes = m.writes
	d.deletes = m.deletes
	d.events = d.events[:m.eventsLen]
}

// Apply folds this delta's writes over the base snapshot's full key set and
// returns the resulting flattened data, ready for Store.Commit to root and
// persist. It does not touch the backing KV or assign a version; Commit
// does both.
func (d *Delta) Apply() map[string][]byte {
	out := make(map[string][]byte, len(d.base.data)+len(d.writes))
	for k, v := range d.base.data {
		out[k] = v
	}
	for k, v := range d.writes {
		out[k] = v
	}
	for k := range d.deletes {
		delete(out, k)
	}
	return out
}
