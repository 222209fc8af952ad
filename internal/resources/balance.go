package resources

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stellar/go-stellar-sdk/amount"
)

// Asset type discriminators
const (
	AssetTypeNative           = "native"
	AssetTypeCreditAlphanum4  = "credit_alphanum4"
	AssetTypeCreditAlphanum12 = "credit_alphanum12"
)

// Balance is the amount of one asset held by an account.
// Balances are comparable with ==; optional fields are stored with a
// presence flag so equality stays structural.
type Balance struct {
	balance            string
	buyingLiabilities  string
	sellingLiabilities string
	limit              string
	lastModifiedLedger uint64
	assetType          string
	assetCode          string
	hasAssetCode       bool
	assetIssuer        string
	hasAssetIssuer     bool
}

// NewBalance creates a balance. Pass nil for asset code and issuer of the native asset.
func NewBalance(
	balance string,
	buyingLiabilities string,
	sellingLiabilities string,
	limit string,
	lastModifiedLedger uint64,
	assetType string,
	assetCode *string,
	assetIssuer *string,
) Balance {
	b := Balance{
		balance:            balance,
		buyingLiabilities:  buyingLiabilities,
		sellingLiabilities: sellingLiabilities,
		limit:              limit,
		lastModifiedLedger: lastModifiedLedger,
		assetType:          assetType,
	}
	if assetCode != nil {
		b.assetCode, b.hasAssetCode = *assetCode, true
	}
	if assetIssuer != nil {
		b.assetIssuer, b.hasAssetIssuer = *assetIssuer, true
	}
	return b
}

// Balance is how much of the asset is owned
func (b Balance) Balance() string {
	return b.balance
}

// BuyingLiabilities is the total amount offered to buy, over all offers of the account
func (b Balance) BuyingLiabilities() string {
	return b.buyingLiabilities
}

// SellingLiabilities is the total amount offered to sell, over all offers of the account
func (b Balance) SellingLiabilities() string {
	return b.sellingLiabilities
}

// Limit is the most of the asset the account accepts. Empty for the native asset.
func (b Balance) Limit() string {
	return b.limit
}

// LastModifiedLedger is the ledger that last changed this balance, or 0 when the server omitted it
func (b Balance) LastModifiedLedger() uint64 {
	return b.lastModifiedLedger
}

// AssetType is one of native, credit_alphanum4 or credit_alphanum12
func (b Balance) AssetType() string {
	return b.assetType
}

// AssetCode returns the asset code and whether it was present
func (b Balance) AssetCode() (string, bool) {
	return b.assetCode, b.hasAssetCode
}

// AssetIssuer returns the issuer address and whether it was present
func (b Balance) AssetIssuer() (string, bool) {
	return b.assetIssuer, b.hasAssetIssuer
}

// IsNative reports whether this is the network's native asset
func (b Balance) IsNative() bool {
	return b.assetType == AssetTypeNative
}

// Amount parses the balance as a decimal
func (b Balance) Amount() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(b.balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing balance %q: %w", b.balance, err)
	}
	return d, nil
}

// Stroops returns the balance in the smallest indivisible unit (1e-7)
func (b Balance) Stroops() (int64, error) {
	v, err := amount.ParseInt64(b.balance)
	if err != nil {
		return 0, fmt.Errorf("parsing balance %q: %w", b.balance, err)
	}
	return v, nil
}

// AssetName renders the asset as CODE:ISSUER, or "native"
func (b Balance) AssetName() string {
	if b.IsNative() || !b.hasAssetCode {
		return b.assetType
	}
	if !b.hasAssetIssuer {
		return b.assetCode
	}
	return b.assetCode + ":" + b.assetIssuer
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	f, err := newFields("balance", data)
	if err != nil {
		return err
	}

	decoded := Balance{
		balance: f.requiredString("balance"),
		// older servers omit these four
		buyingLiabilities:  f.defaultString("buying_liabilities"),
		sellingLiabilities: f.defaultString("selling_liabilities"),
		limit:              f.defaultString("limit"),
		lastModifiedLedger: f.defaultUint64("last_modified_ledger"),
		assetType:          f.requiredString("asset_type"),
	}
	decoded.assetCode, decoded.hasAssetCode = f.optionalString("asset_code")
	decoded.assetIssuer, decoded.hasAssetIssuer = f.optionalString("asset_issuer")
	if err := f.Err(); err != nil {
		return err
	}

	*b = decoded
	return nil
}

func (b Balance) MarshalJSON() ([]byte, error) {
	out := struct {
		Balance            string  `json:"balance"`
		BuyingLiabilities  string  `json:"buying_liabilities"`
		SellingLiabilities string  `json:"selling_liabilities"`
		Limit              string  `json:"limit"`
		LastModifiedLedger uint64  `json:"last_modified_ledger"`
		AssetType          string  `json:"asset_type"`
		AssetCode          *string `json:"asset_code,omitempty"`
		AssetIssuer        *string `json:"asset_issuer,omitempty"`
	}{
		Balance:            b.balance,
		BuyingLiabilities:  b.buyingLiabilities,
		SellingLiabilities: b.sellingLiabilities,
		Limit:              b.limit,
		LastModifiedLedger: b.lastModifiedLedger,
		AssetType:          b.assetType,
	}
	if b.hasAssetCode {
		out.AssetCode = &b.assetCode
	}
	if b.hasAssetIssuer {
		out.AssetIssuer = &b.assetIssuer
	}
	return json.Marshal(out)
}
