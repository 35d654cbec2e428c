package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string
	Value uint64
}

func TestStateCodecRoundTrip(t *testing.T) {
	in := record{Name: "campaign", Value: 7}
	data, err := State.Marshal(CurrentVersion, in)
	require.NoError(t, err)

	var out record
	version, err := State.Unmarshal(data, &out)
	require.NoError(t, err)
	require.Equal(t, CurrentVersion, version)
	require.Equal(t, in, out)
}

func TestStateCodecRejectsUnknownVersion(t *testing.T) {
	_, err := State.Marshal(Version(99), record{})
	require.Error(t, err)
}

func TestKeyNamespacing(t *testing.T) {
	require.Equal(t, "campaigns/1/criteria", Key("campaigns", "1", "criteria"))
	require.Equal(t, "campaigns", Key("campaigns"))
}
