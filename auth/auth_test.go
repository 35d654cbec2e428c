package auth

import (
	stded25519 "crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filament-zone/hub/encoding"
)

type fixedHeight uint64

func (h fixedHeight) Height() uint64 { return uint64(h) }

func signedEd25519Tx(t *testing.T, chainID, nonce uint64, inputs []Input) ([]byte, stded25519.PublicKey) {
	t.Helper()
	pub, priv, err := stded25519.GenerateKey(nil)
	require.NoError(t, err)

	body := Body{
		ChainID:      chainID,
		AccountID:    DeriveCredentialID(pub),
		Nonce:        nonce,
		GasLimit:     21000,
		MaxFeePerGas: 1,
		Inputs:       inputs,
	}
	sig := stded25519.Sign(priv, SignBytes(body))

	raw, err := EncodeTransaction(Transaction{
		Cred: Credential{Variant: AuthEd25519, PubKey: pub, Signature: sig},
		Body: body,
	})
	require.NoError(t, err)
	return raw, pub
}

func TestAuthenticateEd25519Success(t *testing.T) {
	raw, pub := signedEd25519Tx(t, 7, 0, []Input{{ModuleTag: 1, Payload: []byte("x")}})

	meta, data, call, err := Authenticate(raw, Config{ChainID: 7}, fixedHeight(0))
	require.NoError(t, err)
	require.Equal(t, uint64(7), meta.ChainID)
	require.Equal(t, DeriveCredentialID(pub), data.CredentialID)
	require.Len(t, call.Inputs, 1)
}

func TestAuthenticateRejectsWrongChainID(t *testing.T) {
	raw, _ := signedEd25519Tx(t, 7, 0, []Input{{ModuleTag: 1, Payload: []byte("x")}})

	_, _, _, err := Authenticate(raw, Config{ChainID: 9}, fixedHeight(0))
	require.Error(t, err)
	var fatal *FatalError
	require.ErrorAs(t, err, &fatal)
	require.ErrorIs(t, err, ErrInvalidChainID)
}

func TestAuthenticateRejectsTamperedBody(t *testing.T) {
	raw, _ := signedEd25519Tx(t, 7, 0, []Input{{ModuleTag: 1, Payload: []byte("x")}})
	raw[len(raw)-1] ^= 0xFF

	_, _, _, err := Authenticate(raw, Config{ChainID: 7}, fixedHeight(0))
	require.Error(t, err)
}

func TestAuthenticateRejectsEmptyInputs(t *testing.T) {
	raw, _ := signedEd25519Tx(t, 7, 0, nil)

	_, _, _, err := Authenticate(raw, Config{ChainID: 7}, fixedHeight(0))
	require.ErrorIs(t, err, ErrEmptyInputs)
}

func TestAuthenticateUnregisteredRejectsNonRegisterCall(t *testing.T) {
	raw, _ := signedEd25519Tx(t, 7, 0, []Input{{ModuleTag: 1, Payload: []byte("x")}})

	_, _, _, err := AuthenticateUnregistered(raw, Config{ChainID: 7}, fixedHeight(0))
	require.ErrorIs(t, err, ErrUnregisteredRuntimeCall)
}

func TestAuthenticateUnregisteredAcceptsRegisterCall(t *testing.T) {
	payload, err := encoding.State.Marshal(encoding.CurrentVersion, struct{ Method string }{Method: "register"})
	require.NoError(t, err)
	raw, _ := signedEd25519Tx(t, 7, 0, []Input{{ModuleTag: RegisterSequencerTag, Payload: payload}})

	_, _, call, err := AuthenticateUnregistered(raw, Config{ChainID: 7}, fixedHeight(0))
	require.NoError(t, err)
	require.Len(t, call.Inputs, 1)
}

func TestAddressFromCredentialDeterministic(t *testing.T) {
	cred := DeriveCredentialID([]byte("pubkey"))
	a1 := AddressFromCredential(cred)
	a2 := AddressFromCredential(cred)
	require.Equal(t, a1, a2)
	require.False(t, a1.IsZero())
}
