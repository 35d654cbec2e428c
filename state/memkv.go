// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by Get when a key is absent.
var ErrNotFound = errors.New("state: not found")

// MemKV is an in-memory KV backend, used by tests and by the Driver's
// embedded state when no external database is configured.
type MemKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemKV returns an empty in-memory backend.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

func (m *MemKV) Has(key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[string(key)]
	return ok, nil
}

func (m *MemKV) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemKV) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[string(key)] = v
	return nil
}

func (m *MemKV) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *MemKV) NewBatch() Batch {
	return &memBatch{kv: m}
}

func (m *MemKV) Close() error {
	return nil
}

func (m *MemKV) NewIteratorWithPrefix(prefix []byte) Iterator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p := string(prefix)
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if len(k) >= len(p) && k[:len(p)] == p {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	vals := make([][]byte, len(keys))
	for i, k := range keys {
		v := m.data[k]
		cp := make([]byte, len(v))
		copy(cp, v)
		vals[i] = cp
	}

	return &memIterator{keys: keys, vals: vals, idx: -1}
}

type memOp struct {
	del   bool
	key   []byte
	value []byte
}

type memBatch struct {
	kv  *MemKV
	ops []memOp
}

func (b *memBatch) Put(key, value []byte) error {
	b.ops = append(b.ops, memOp{key: append([]byte(nil), key...), value: append([]byte(nil), value...)})
	return nil
}

func (b *memBatch) Delete(key []byte) error {
	b.ops = append(b.ops, memOp{del: true, key: append([]byte(nil), key...)})
	return nil
}

func (b *memBatch) Size() int {
	return len(b.ops)
}

func (b *memBatch) Write() error {
	b.kv.mu.Lock()
	defer b.kv.mu.Unlock()
	for _, op := range b.ops {
		if op.del {
			delete(b.kv.data, string(op.key))
			continue
		}
		b.kv.data[string(op.key)] = op.value
	}
	return nil
}

func (b *memBatch) Reset() {
	b.ops = b.ops[:0]
}

func (b *memBatch) Replay(w Writer) error {
	for _, op := range b.ops {
		if op.del {
			if err := w.Delete(op.key); err != nil {
				return err
			}
			continue
		}
		if err := w.Put(op.key, op.value); err != nil {
			return err
		}
	}
	return nil
}

type memIterator struct {
	keys []string
	vals [][]byte
	idx  int
}

func (it *memIterator) Next() bool {
	it.idx++
	return it.idx < len(it.keys)
}

func (it *memIterator) Key() []byte {
	return []byte(it.keys[it.idx])
}

func (it *memIterator) Value() []byte {
	return it.vals[it.idx]
}

func (it *memIterator) Release() {}

func (it *memIterator) Error() error { return nil }
