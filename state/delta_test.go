// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkRollbackDiscardsLaterWrites(t *testing.T) {
	base := &Snapshot{version: 0, data: map[string][]byte{}}
	d := OpenDelta(base)

	d.Put([]byte("a"), []byte("1"))
	mark := d.Mark()
	d.Put([]byte("b"), []byte("2"))
	d.Delete([]byte("a"))
	d.Emit(Event{Kind: "x"})

	d.Rollback(mark)

	v, ok := d.Get([]byte("a"))
	require.True(t, ok)
	require.Equal(t, []byte("1"), v)
	_, ok = d.Get([]byte("b"))
	require.False(t, ok)
	require.Empty(t, d.Events())
}

func TestMarkPreservesPriorEvents(t *testing.T) {
	base := &Snapshot{version: 0, data: map[string][]byte{}}
	d := OpenDelta(base)

	d.Emit(Event{Kind: "before"})
	mark := d.Mark()
	d.Emit(Event{Kind: "after"})
	d.Rollback(mark)

	require.Len(t, d.Events(), 1)
	require.Equal(t, "before", d.Events()[0].Kind)
}
