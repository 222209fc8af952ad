package resources

import (
	"encoding/json"
	"testing"

	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_UnmarshalJSON(t *testing.T) {
	kp := keypair.MustRandom()

	var s Signer
	err := json.Unmarshal([]byte(`{"weight":255,"key":"`+kp.Address()+`","type":"ed25519_public_key"}`), &s)
	require.NoError(t, err)

	assert.Equal(t, uint32(255), s.Weight())
	assert.Equal(t, kp.Address(), s.Key())
	assert.Equal(t, SignerTypeEd25519, s.Type())
	assert.True(t, s.IsEd25519())
	assert.Equal(t, NewSigner(255, kp.Address(), SignerTypeEd25519), s)

	t.Run("🟢weight_is_not_range_checked", func(t *testing.T) {
		var s Signer
		require.NoError(t, json.Unmarshal([]byte(`{"weight":1000,"key":"k","type":"sha256_hash"}`), &s))
		assert.Equal(t, uint32(1000), s.Weight())
		assert.False(t, s.IsEd25519())
	})

	t.Run("🔴type_key_is_required", func(t *testing.T) {
		var s Signer
		err := json.Unmarshal([]byte(`{"weight":1,"key":"k","signer_type":"x"}`), &s)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("🔴negative_weight_fails", func(t *testing.T) {
		var s Signer
		err := json.Unmarshal([]byte(`{"weight":-1,"key":"k","type":"x"}`), &s)
		assert.ErrorIs(t, err, ErrInvalidType)
	})
}

func TestSigner_IsEd25519(t *testing.T) {
	assert.False(t, NewSigner(1, "GABC", SignerTypeEd25519).IsEd25519())
	assert.False(t, NewSigner(1, keypair.MustRandom().Address(), "preauth_tx").IsEd25519())
}

func TestSigner_MarshalJSON(t *testing.T) {
	encoded, err := json.Marshal(NewSigner(3, "GABC", SignerTypeEd25519))
	require.NoError(t, err)
	assert.JSONEq(t, `{"weight":3,"key":"GABC","type":"ed25519_public_key"}`, string(encoded))
}

func TestThresholdsAndFlags(t *testing.T) {
	var th Thresholds
	require.NoError(t, json.Unmarshal([]byte(`{"low_threshold":1,"med_threshold":2,"high_threshold":3}`), &th))
	assert.Equal(t, NewThresholds(1, 2, 3), th)
	assert.Equal(t, uint8(1), th.Low())
	assert.Equal(t, uint8(2), th.Med())
	assert.Equal(t, uint8(3), th.High())

	err := json.Unmarshal([]byte(`{"low_threshold":256,"med_threshold":2,"high_threshold":3}`), &th)
	assert.ErrorIs(t, err, ErrInvalidType)

	var fl Flags
	require.NoError(t, json.Unmarshal([]byte(`{"auth_required":true,"auth_revocable":false,"auth_immutable":true}`), &fl))
	assert.Equal(t, NewFlags(true, false, true), fl)

	err = json.Unmarshal([]byte(`{"auth_required":"yes","auth_revocable":false,"auth_immutable":true}`), &fl)
	assert.ErrorIs(t, err, ErrInvalidType)
}
