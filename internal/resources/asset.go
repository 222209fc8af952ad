package resources

import "encoding/json"

// Asset is an issued asset as listed by the /assets endpoint
type Asset struct {
	assetType   string
	assetCode   string
	assetIssuer string
	pagingToken string
	amount      string
	numAccounts uint64
	flags       Flags
}

// NewAsset creates an asset record
func NewAsset(assetType, assetCode, assetIssuer, pagingToken, amount string, numAccounts uint64, flags Flags) Asset {
	return Asset{
		assetType:   assetType,
		assetCode:   assetCode,
		assetIssuer: assetIssuer,
		pagingToken: pagingToken,
		amount:      amount,
		numAccounts: numAccounts,
		flags:       flags,
	}
}

// AssetType is credit_alphanum4 or credit_alphanum12
func (a Asset) AssetType() string { return a.assetType }

// AssetCode is the 1-12 character code the issuer chose
func (a Asset) AssetCode() string { return a.assetCode }

// AssetIssuer is the G... address of the issuing account
func (a Asset) AssetIssuer() string { return a.assetIssuer }

// PagingToken can be passed as the cursor of the next listing request
func (a Asset) PagingToken() string { return a.pagingToken }

// Amount is the number of units issued
func (a Asset) Amount() string { return a.amount }

// NumAccounts is the number of accounts holding a trustline to the asset
func (a Asset) NumAccounts() uint64 { return a.numAccounts }

func (a Asset) Flags() Flags { return a.flags }

func (a *Asset) UnmarshalJSON(data []byte) error {
	f, err := newFields("asset", data)
	if err != nil {
		return err
	}

	decoded := Asset{
		assetType:   f.requiredString("asset_type"),
		assetCode:   f.requiredString("asset_code"),
		assetIssuer: f.requiredString("asset_issuer"),
		pagingToken: f.requiredString("paging_token"),
		amount:      f.requiredString("amount"),
		numAccounts: f.requiredUint64("num_accounts"),
		flags:       requiredObject[Flags](f, "flags"),
	}
	if err := f.Err(); err != nil {
		return err
	}

	*a = decoded
	return nil
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AssetType   string `json:"asset_type"`
		AssetCode   string `json:"asset_code"`
		AssetIssuer string `json:"asset_issuer"`
		PagingToken string `json:"paging_token"`
		Amount      string `json:"amount"`
		NumAccounts uint64 `json:"num_accounts"`
		Flags       Flags  `json:"flags"`
	}{a.assetType, a.assetCode, a.assetIssuer, a.pagingToken, a.amount, a.numAccounts, a.flags})
}

// DataValue is a single entry of an account's key/value store
type DataValue struct {
	value Base64String
}

// NewDataValue creates a data value
func NewDataValue(value Base64String) DataValue {
	return DataValue{value: value}
}

func (d DataValue) Value() Base64String {
	return d.value
}

func (d *DataValue) UnmarshalJSON(data []byte) error {
	f, err := newFields("data value", data)
	if err != nil {
		return err
	}

	decoded := DataValue{value: Base64String(f.requiredString("value"))}
	if err := f.Err(); err != nil {
		return err
	}

	*d = decoded
	return nil
}

func (d DataValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value Base64String `json:"value"`
	}{d.value})
}
