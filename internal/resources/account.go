package resources

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// Account is an entity on the ledger controlled by one or more signers.
// It is built once per decode and never changes afterwards.
type Account struct {
	id                 string
	pagingToken        string
	accountID          string
	sequence           uint64
	subentryCount      uint64
	lastModifiedLedger uint64
	thresholds         Thresholds
	flags              Flags
	balances           []Balance
	signers            []Signer
	data               map[string]Base64String
}

// ParseAccount decodes an account document
func ParseAccount(data []byte) (Account, error) {
	var a Account
	if err := json.Unmarshal(data, &a); err != nil {
		return Account{}, err
	}
	return a, nil
}

// ID is the canonical id, usable as the :id parameter of account URLs
func (a Account) ID() string {
	return a.id
}

// PagingToken is the cursor value for this record
func (a Account) PagingToken() string {
	return a.pagingToken
}

// AccountID is the account's public key in strkey form
func (a Account) AccountID() string {
	return a.accountID
}

// Sequence is the current sequence number for transactions from this account
func (a Account) Sequence() uint64 {
	return a.sequence
}

// SubentryCount is the number of subentries (trustlines, offers, signers, data)
func (a Account) SubentryCount() uint64 {
	return a.subentryCount
}

// LastModifiedLedger is the ledger height of the last change to the account
func (a Account) LastModifiedLedger() uint64 {
	return a.lastModifiedLedger
}

func (a Account) Thresholds() Thresholds {
	return a.thresholds
}

func (a Account) Flags() Flags {
	return a.flags
}

// Balances returns a copy of the account's balances, in server order
func (a Account) Balances() []Balance {
	return slices.Clone(a.balances)
}

// Signers returns a copy of the account's signers, in server order
func (a Account) Signers() []Signer {
	return slices.Clone(a.signers)
}

// Data returns a copy of the account's key/value store
func (a Account) Data() map[string]Base64String {
	return maps.Clone(a.data)
}

// MinimumBalance is the native reserve the account must hold: (2 + subentries) * baseReserve
func (a Account) MinimumBalance(baseReserve decimal.Decimal) decimal.Decimal {
	entries := decimal.NewFromInt(2 + int64(a.subentryCount))
	return entries.Mul(baseReserve)
}

// NativeBalance returns the native balance, if the account has one
func (a Account) NativeBalance() (Balance, bool) {
	for _, b := range a.balances {
		if b.IsNative() {
			return b, true
		}
	}
	return Balance{}, false
}

func (a *Account) UnmarshalJSON(data []byte) error {
	f, err := newFields("account", data)
	if err != nil {
		return err
	}

	decoded := Account{
		id:                 f.requiredString("id"),
		pagingToken:        f.requiredString("paging_token"),
		accountID:          f.requiredString("account_id"),
		sequence:           f.requiredUint64String("sequence"),
		subentryCount:      f.requiredUint64("subentry_count"),
		lastModifiedLedger: f.requiredUint64("last_modified_ledger"),
		thresholds:         requiredObject[Thresholds](f, "thresholds"),
		flags:              requiredObject[Flags](f, "flags"),
		balances:           requiredList[Balance](f, "balances"),
		signers:            requiredList[Signer](f, "signers"),
		data:               f.requiredBase64Map("data"),
	}
	if err := f.Err(); err != nil {
		return err
	}

	*a = decoded
	return nil
}

func (a Account) MarshalJSON() ([]byte, error) {
	balances := a.balances
	if balances == nil {
		balances = []Balance{}
	}
	signers := a.signers
	if signers == nil {
		signers = []Signer{}
	}
	data := a.data
	if data == nil {
		data = map[string]Base64String{}
	}

	return json.Marshal(struct {
		ID                 string                  `json:"id"`
		PagingToken        string                  `json:"paging_token"`
		AccountID          string                  `json:"account_id"`
		Sequence           string                  `json:"sequence"`
		SubentryCount      uint64                  `json:"subentry_count"`
		LastModifiedLedger uint64                  `json:"last_modified_ledger"`
		Thresholds         Thresholds              `json:"thresholds"`
		Flags              Flags                   `json:"flags"`
		Balances           []Balance               `json:"balances"`
		Signers            []Signer                `json:"signers"`
		Data               map[string]Base64String `json:"data"`
	}{
		ID:                 a.id,
		PagingToken:        a.pagingToken,
		AccountID:          a.accountID,
		Sequence:           strconv.FormatUint(a.sequence, 10),
		SubentryCount:      a.subentryCount,
		LastModifiedLedger: a.lastModifiedLedger,
		Thresholds:         a.thresholds,
		Flags:              a.flags,
		Balances:           balances,
		Signers:            signers,
		Data:               data,
	})
}

func (a Account) String() string {
	return fmt.Sprintf("Account(%s seq=%d balances=%d signers=%d)", a.accountID, a.sequence, len(a.balances), len(a.signers))
}
