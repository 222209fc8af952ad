package resources

import (
	"encoding/json"
	"os"
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fixtureAccountID = "GCEZWKCA5VLDNRLN3RPRJMRZOX3Z6G5CHCGSNFHEYVXM3XOJMDS674JZ"
	fixtureIssuer    = "GBAUUA74H4XOQYRSOW2RZUA4QL5PB37U3JS5NE3RTB2ELJVMIF5RLMAG"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

// accountDoc returns the account fixture with mutate applied to its top-level keys
func accountDoc(t *testing.T, mutate func(doc map[string]any)) []byte {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(loadFixture(t, "account.json"), &doc))
	if mutate != nil {
		mutate(doc)
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

func strPtr(s string) *string {
	return &s
}

func TestParseAccount(t *testing.T) {
	account, err := ParseAccount(loadFixture(t, "account.json"))
	require.NoError(t, err)

	assert.Equal(t, fixtureAccountID, account.ID())
	assert.Equal(t, "", account.PagingToken())
	assert.Equal(t, fixtureAccountID, account.AccountID())
	assert.Equal(t, uint64(604941848674305), account.Sequence())
	assert.Equal(t, uint64(1), account.SubentryCount())
	assert.Equal(t, uint64(140917), account.LastModifiedLedger())
	assert.Equal(t, NewThresholds(0, 0, 0), account.Thresholds())
	assert.False(t, account.Flags().IsAuthImmutable())
	assert.False(t, account.Flags().IsAuthRequired())
	assert.False(t, account.Flags().IsAuthRevocable())

	require.Len(t, account.Balances(), 2)
	assert.Equal(t, NewBalance(
		"100.0000000",
		"0.0000000",
		"0.0000000",
		"100.0000000",
		140993,
		AssetTypeCreditAlphanum4,
		strPtr("USD"),
		strPtr(fixtureIssuer),
	), account.Balances()[0])

	assert.Equal(t, []Signer{NewSigner(1, fixtureAccountID, SignerTypeEd25519)}, account.Signers())
	assert.Empty(t, account.Data())
}

func TestParseAccount_literalDocument(t *testing.T) {
	doc := `{"id":"GCEZ","paging_token":"","account_id":"GCEZ","sequence":"604941848674305",` +
		`"subentry_count":1,"last_modified_ledger":140917,` +
		`"thresholds":{"low_threshold":0,"med_threshold":0,"high_threshold":0},` +
		`"flags":{"auth_required":false,"auth_revocable":false,"auth_immutable":false},` +
		`"balances":[{"balance":"100.0000000","asset_type":"credit_alphanum4","asset_code":"USD","asset_issuer":"GBAU","last_modified_ledger":140993}],` +
		`"signers":[{"weight":1,"key":"GCEZ","type":"ed25519_public_key"}],"data":{}}`

	account, err := ParseAccount([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, uint64(604941848674305), account.Sequence())
	assert.Equal(t, uint64(1), account.SubentryCount())
	code, ok := account.Balances()[0].AssetCode()
	assert.True(t, ok)
	assert.Equal(t, "USD", code)
	assert.Equal(t, uint32(1), account.Signers()[0].Weight())
	assert.Empty(t, account.Data())
}

func TestParseAccount_sequence(t *testing.T) {
	t.Run("🟢random_uint64_values_decode", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			want := gofakeit.Uint64()
			data := accountDoc(t, func(doc map[string]any) {
				doc["sequence"] = strconv.FormatUint(want, 10)
			})

			account, err := ParseAccount(data)
			require.NoError(t, err)
			assert.Equal(t, want, account.Sequence())
		}
	})

	t.Run("🟢boundaries", func(t *testing.T) {
		for _, seq := range []string{"0", "18446744073709551615", "000042"} {
			data := accountDoc(t, func(doc map[string]any) { doc["sequence"] = seq })
			account, err := ParseAccount(data)
			require.NoError(t, err, seq)
			want, _ := strconv.ParseUint(seq, 10, 64)
			assert.Equal(t, want, account.Sequence())
		}
	})

	t.Run("🔴non_digit_strings_fail", func(t *testing.T) {
		invalid := []string{
			"",
			"-1",
			"+1",
			" 1",
			"1 ",
			"1.0",
			"0x10",
			"1_000",
			"18446744073709551616",
			"99999999999999999999999",
			strconv.FormatUint(gofakeit.Uint64(), 10) + gofakeit.LetterN(1),
		}
		for _, seq := range invalid {
			data := accountDoc(t, func(doc map[string]any) { doc["sequence"] = seq })
			_, err := ParseAccount(data)
			require.Error(t, err, seq)
			assert.ErrorIs(t, err, ErrInvalidNumericString, seq)

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, "sequence", decodeErr.Field)
		}
	})

	t.Run("🔴json_number_is_a_type_error", func(t *testing.T) {
		data := accountDoc(t, func(doc map[string]any) { doc["sequence"] = 12 })
		_, err := ParseAccount(data)
		assert.ErrorIs(t, err, ErrInvalidType)
	})
}

func TestParseAccount_requiredFields(t *testing.T) {
	for _, key := range []string{
		"id", "paging_token", "account_id", "sequence", "subentry_count",
		"last_modified_ledger", "thresholds", "flags", "balances", "signers", "data",
	} {
		t.Run(key, func(t *testing.T) {
			data := accountDoc(t, func(doc map[string]any) { delete(doc, key) })
			_, err := ParseAccount(data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingField)

			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, "account", decodeErr.Resource)
			assert.Equal(t, key, decodeErr.Field)
		})
	}
}

func TestParseAccount_nestedErrorsNameThePath(t *testing.T) {
	data := accountDoc(t, func(doc map[string]any) {
		balances := doc["balances"].([]any)
		delete(balances[1].(map[string]any), "asset_type")
	})

	_, err := ParseAccount(data)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "balances[1].asset_type", decodeErr.Field)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestParseAccount_malformed(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "🔴not_json", input: `{"id":`, wantErr: ErrMalformedDocument},
		{name: "🔴array", input: `[]`, wantErr: ErrMalformedDocument},
		{name: "🔴null", input: `null`, wantErr: ErrMalformedDocument},
		{name: "🔴empty_object", input: `{}`, wantErr: ErrMissingField},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAccount([]byte(tc.input))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestAccount_data(t *testing.T) {
	data := accountDoc(t, func(doc map[string]any) {
		doc["data"] = map[string]any{
			"config.memo_required": "MQ==",
			"not_base64":           "%%%",
		}
	})

	account, err := ParseAccount(data)
	require.NoError(t, err)
	require.Len(t, account.Data(), 2)

	decoded, err := account.Data()["config.memo_required"].Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), decoded)

	// the envelope is only checked when decoded
	_, err = account.Data()["not_base64"].Decode()
	assert.Error(t, err)

	t.Run("🔴non_string_values_fail", func(t *testing.T) {
		data := accountDoc(t, func(doc map[string]any) {
			doc["data"] = map[string]any{"k": 1}
		})
		_, err := ParseAccount(data)
		assert.ErrorIs(t, err, ErrInvalidType)
	})
}

func TestAccount_accessorsReturnCopies(t *testing.T) {
	account, err := ParseAccount(loadFixture(t, "account.json"))
	require.NoError(t, err)

	balances := account.Balances()
	balances[0] = Balance{}
	signers := account.Signers()
	signers[0] = Signer{}
	data := account.Data()
	data["injected"] = "eA=="

	assert.NotEqual(t, Balance{}, account.Balances()[0])
	assert.NotEqual(t, Signer{}, account.Signers()[0])
	assert.NotContains(t, account.Data(), "injected")
}

func TestAccount_MarshalJSON(t *testing.T) {
	account, err := ParseAccount(loadFixture(t, "account.json"))
	require.NoError(t, err)

	encoded, err := json.Marshal(account)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(encoded, &wire))
	assert.Equal(t, "604941848674305", wire["sequence"])
	assert.NotContains(t, wire["balances"].([]any)[1], "asset_code")
	assert.NotContains(t, wire["balances"].([]any)[1], "asset_issuer")

	again, err := ParseAccount(encoded)
	require.NoError(t, err)
	assert.Equal(t, account, again)
}

func TestAccount_MinimumBalance(t *testing.T) {
	account, err := ParseAccount(loadFixture(t, "account.json"))
	require.NoError(t, err)

	got := account.MinimumBalance(decimal.RequireFromString("0.5"))
	assert.True(t, decimal.RequireFromString("1.5").Equal(got), got.String())
}

func TestAccount_NativeBalance(t *testing.T) {
	account, err := ParseAccount(loadFixture(t, "account.json"))
	require.NoError(t, err)

	native, ok := account.NativeBalance()
	require.True(t, ok)
	assert.Equal(t, "9999.9999900", native.Balance())

	stripped := accountDoc(t, func(doc map[string]any) {
		doc["balances"] = doc["balances"].([]any)[:1]
	})
	account, err = ParseAccount(stripped)
	require.NoError(t, err)
	_, ok = account.NativeBalance()
	assert.False(t, ok)
}
