package resources

import "encoding/json"

// Thresholds are the signature weights an operation needs, by category
type Thresholds struct {
	low  uint8
	med  uint8
	high uint8
}

// NewThresholds creates a thresholds record
func NewThresholds(low, med, high uint8) Thresholds {
	return Thresholds{low: low, med: med, high: high}
}

// Low is the weight required for low security operations
func (t Thresholds) Low() uint8 { return t.low }

// Med is the weight required for medium security operations
func (t Thresholds) Med() uint8 { return t.med }

// High is the weight required for high security operations
func (t Thresholds) High() uint8 { return t.high }

func (t *Thresholds) UnmarshalJSON(data []byte) error {
	f, err := newFields("thresholds", data)
	if err != nil {
		return err
	}

	decoded := Thresholds{
		low:  f.requiredUint8("low_threshold"),
		med:  f.requiredUint8("med_threshold"),
		high: f.requiredUint8("high_threshold"),
	}
	if err := f.Err(); err != nil {
		return err
	}

	*t = decoded
	return nil
}

func (t Thresholds) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Low  uint8 `json:"low_threshold"`
		Med  uint8 `json:"med_threshold"`
		High uint8 `json:"high_threshold"`
	}{t.low, t.med, t.high})
}

// Flags denote the enabling or disabling of asset issuer privileges
type Flags struct {
	authRequired  bool
	authRevocable bool
	authImmutable bool
}

// NewFlags creates a flags record
func NewFlags(authRequired, authRevocable, authImmutable bool) Flags {
	return Flags{
		authRequired:  authRequired,
		authRevocable: authRevocable,
		authImmutable: authImmutable,
	}
}

// IsAuthRequired reports whether trustlines need issuer approval
func (f Flags) IsAuthRequired() bool { return f.authRequired }

// IsAuthRevocable reports whether the issuer can revoke trustlines
func (f Flags) IsAuthRevocable() bool { return f.authRevocable }

// IsAuthImmutable reports whether the flags above can never change
func (f Flags) IsAuthImmutable() bool { return f.authImmutable }

func (f *Flags) UnmarshalJSON(data []byte) error {
	fs, err := newFields("flags", data)
	if err != nil {
		return err
	}

	decoded := Flags{
		authRequired:  fs.requiredBool("auth_required"),
		authRevocable: fs.requiredBool("auth_revocable"),
		authImmutable: fs.requiredBool("auth_immutable"),
	}
	if err := fs.Err(); err != nil {
		return err
	}

	*f = decoded
	return nil
}

func (f Flags) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AuthRequired  bool `json:"auth_required"`
		AuthRevocable bool `json:"auth_revocable"`
		AuthImmutable bool `json:"auth_immutable"`
	}{f.authRequired, f.authRevocable, f.authImmutable})
}
