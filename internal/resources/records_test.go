package resources

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords_assets(t *testing.T) {
	var page Records[Asset]
	require.NoError(t, json.Unmarshal(loadFixture(t, "assets.json"), &page))

	require.Equal(t, 2, page.Len())
	first := page.Records()[0]
	assert.Equal(t, AssetTypeCreditAlphanum4, first.AssetType())
	assert.Equal(t, "AAA", first.AssetCode())
	assert.Equal(t, fixtureIssuer, first.AssetIssuer())
	assert.Equal(t, "AAA_"+fixtureIssuer+"_credit_alphanum4", first.PagingToken())
	assert.Equal(t, "1.0000000", first.Amount())
	assert.Equal(t, uint64(2), first.NumAccounts())
	assert.Equal(t, NewFlags(false, true, false), first.Flags())

	next, ok := page.NextCursor()
	assert.True(t, ok)
	assert.Equal(t, "ABC_GAQQ_credit_alphanum4", next)
	prev, ok := page.PrevCursor()
	assert.True(t, ok)
	assert.Equal(t, "AAA_GBAU_credit_alphanum4", prev)
	assert.Contains(t, page.SelfLink(), "/assets?")
}

func TestRecords_errors(t *testing.T) {
	t.Run("🔴missing_embedded", func(t *testing.T) {
		var page Records[Asset]
		err := json.Unmarshal([]byte(`{"_links":{}}`), &page)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("🔴assets_are_strict", func(t *testing.T) {
		var page Records[Asset]
		err := json.Unmarshal([]byte(`{"_embedded":{"records":[{"asset_type":"native"}]}}`), &page)
		require.Error(t, err)

		var decodeErr *DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "records", decodeErr.Resource)
		assert.Equal(t, "_embedded.records[0].asset_code", decodeErr.Field)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("🔴link_without_href", func(t *testing.T) {
		var page Records[Asset]
		err := json.Unmarshal([]byte(`{"_links":{"next":{}},"_embedded":{"records":[]}}`), &page)
		assert.ErrorIs(t, err, ErrMissingField)
	})
}

func TestRecords_emptyPage(t *testing.T) {
	var page Records[Asset]
	require.NoError(t, json.Unmarshal([]byte(`{"_embedded":{"records":[]}}`), &page))
	assert.Equal(t, 0, page.Len())
	_, ok := page.NextCursor()
	assert.False(t, ok)
}

func TestDataValue(t *testing.T) {
	var v DataValue
	require.NoError(t, json.Unmarshal([]byte(`{"value":"aGVsbG8="}`), &v))
	raw, err := v.Value().Decode()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))

	err = json.Unmarshal([]byte(`{}`), &v)
	assert.ErrorIs(t, err, ErrMissingField)
}
