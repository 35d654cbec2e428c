package gas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type memLedger struct {
	balances map[[20]byte]uint64
}

func newMemLedger() *memLedger {
	return &memLedger{balances: make(map[[20]byte]uint64)}
}

func (m *memLedger) Balance(holder [20]byte, token string) uint64 {
	return m.balances[holder]
}

func (m *memLedger) Debit(holder [20]byte, token string, amount uint64) error {
	m.balances[holder] -= amount
	return nil
}

func (m *memLedger) Credit(holder [20]byte, token string, amount uint64) error {
	m.balances[holder] += amount
	return nil
}

func TestReserveAndRefund(t *testing.T) {
	ledger := newMemLedger()
	var sender, pool, sequencer [20]byte
	sender[0] = 1
	pool[0] = 2
	sequencer[0] = 3
	ledger.balances[sender] = 1000

	e := NewEnforcer(ledger)
	res, err := e.ReserveTx(sender, 500)
	require.NoError(t, err)
	require.Equal(t, uint64(500), ledger.balances[sender])

	require.NoError(t, res.Consume(300))
	require.Equal(t, uint64(200), res.Remaining())

	require.NoError(t, res.Refund(pool, sequencer, 100, 50))
	require.Equal(t, uint64(700), ledger.balances[sender])
	require.Equal(t, uint64(100), ledger.balances[pool])
	require.Equal(t, uint64(50), ledger.balances[sequencer])
}

func TestReserveInsufficientBalance(t *testing.T) {
	ledger := newMemLedger()
	var sender [20]byte
	e := NewEnforcer(ledger)
	_, err := e.ReserveTx(sender, 100)
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestConsumeOverReservation(t *testing.T) {
	ledger := newMemLedger()
	var sender [20]byte
	ledger.balances[sender] = 100
	e := NewEnforcer(ledger)
	res, err := e.ReserveTx(sender, 100)
	require.NoError(t, err)
	require.ErrorIs(t, res.Consume(200), ErrOverConsumed)
}

func TestBondReleaseAndForfeit(t *testing.T) {
	ledger := newMemLedger()
	var seq [20]byte
	ledger.balances[seq] = 1000
	e := NewEnforcer(ledger)

	bond, err := e.BondSequencer(seq, 10, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(950), ledger.balances[seq])

	require.NoError(t, bond.Forfeit(20))
	require.Equal(t, uint64(980), ledger.balances[seq])
}

func TestBondReleaseIsIdempotent(t *testing.T) {
	ledger := newMemLedger()
	var seq [20]byte
	ledger.balances[seq] = 1000
	e := NewEnforcer(ledger)
	bond, err := e.BondSequencer(seq, 10, 5)
	require.NoError(t, err)

	require.NoError(t, bond.Release())
	before := ledger.balances[seq]
	require.NoError(t, bond.Release())
	require.Equal(t, before, ledger.balances[seq])
}
