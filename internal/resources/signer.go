package resources

import (
	"encoding/json"

	"github.com/stellar/go-stellar-sdk/strkey"
)

// SignerTypeEd25519 is the signer type for a plain account key
const SignerTypeEd25519 = "ed25519_public_key"

// Signer is one key allowed to sign for an account, with its weight
type Signer struct {
	weight     uint32
	key        string
	signerType string
}

// NewSigner creates a signer
func NewSigner(weight uint32, key, signerType string) Signer {
	return Signer{weight: weight, key: key, signerType: signerType}
}

// Weight is the signature weight. Not range-checked.
func (s Signer) Weight() uint32 {
	return s.weight
}

// Key is the signer's public key or hash, depending on Type
func (s Signer) Key() string {
	return s.key
}

// Type is the signer discriminator, read from the wire key "type"
func (s Signer) Type() string {
	return s.signerType
}

// IsEd25519 reports whether the signer is a well-formed ed25519 account key
func (s Signer) IsEd25519() bool {
	return s.signerType == SignerTypeEd25519 && strkey.IsValidEd25519PublicKey(s.key)
}

func (s *Signer) UnmarshalJSON(data []byte) error {
	f, err := newFields("signer", data)
	if err != nil {
		return err
	}

	decoded := Signer{
		weight:     f.requiredUint32("weight"),
		key:        f.requiredString("key"),
		signerType: f.requiredString("type"),
	}
	if err := f.Err(); err != nil {
		return err
	}

	*s = decoded
	return nil
}

func (s Signer) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Weight uint32 `json:"weight"`
		Key    string `json:"key"`
		Type   string `json:"type"`
	}{s.weight, s.key, s.signerType})
}
