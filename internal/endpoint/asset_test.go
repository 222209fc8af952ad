package endpoint

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllAssets_IntoRequest(t *testing.T) {
	testCases := []struct {
		name      string
		endpoint  AllAssets
		wantPath  string
		wantQuery url.Values
	}{
		{
			name:      "🟢no_filters",
			endpoint:  NewAllAssets(),
			wantPath:  "/assets",
			wantQuery: url.Values{},
		},
		{
			name:      "🟢descending",
			endpoint:  NewAllAssets().WithOrder(Descending),
			wantPath:  "/assets",
			wantQuery: url.Values{"order": {"desc"}},
		},
		{
			name:      "🟢ascending",
			endpoint:  NewAllAssets().WithOrder(Ascending),
			wantPath:  "/assets",
			wantQuery: url.Values{"order": {"asc"}},
		},
		{
			name: "🟢all_filters",
			endpoint: NewAllAssets().
				WithAssetCode("USD").
				WithAssetIssuer("GBAUUA74H4XOQYRSOW2RZUA4QL5PB37U3JS5NE3RTB2ELJVMIF5RLMAG").
				WithCursor("AAA_GBAU_credit_alphanum4").
				WithLimit(MaxLimit).
				WithOrder(Descending),
			wantPath: "/assets",
			wantQuery: url.Values{
				"asset_code":   {"USD"},
				"asset_issuer": {"GBAUUA74H4XOQYRSOW2RZUA4QL5PB37U3JS5NE3RTB2ELJVMIF5RLMAG"},
				"cursor":       {"AAA_GBAU_credit_alphanum4"},
				"limit":        {"200"},
				"order":        {"desc"},
			},
		},
		{
			name:      "🟢zero_limit_omitted",
			endpoint:  NewAllAssets().WithLimit(0).WithAssetCode("EUR"),
			wantPath:  "/assets",
			wantQuery: url.Values{"asset_code": {"EUR"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := tc.endpoint.IntoRequest(testHost)
			require.NoError(t, err)

			parsed, err := url.Parse(req.URL)
			require.NoError(t, err)
			assert.Equal(t, "horizon.example.org", parsed.Host)
			assert.Equal(t, tc.wantPath, parsed.Path)
			assert.Equal(t, tc.wantQuery, parsed.Query())
			assert.False(t, req.HasBody())
		})
	}
}

func TestAllAssets_OrderDescInQueryString(t *testing.T) {
	req, err := NewAllAssets().WithOrder(Descending).IntoRequest(testHost)
	require.NoError(t, err)
	assert.Equal(t, "https://horizon.example.org/assets?order=desc", req.URL)
}

func TestAllAssets_LimitTooLarge(t *testing.T) {
	_, err := NewAllAssets().WithLimit(MaxLimit + 1).IntoRequest(testHost)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQueryParameter)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, "all assets", reqErr.Endpoint)
}

func TestAllAssets_BuildersDoNotMutate(t *testing.T) {
	base := NewAllAssets()
	_ = base.WithAssetCode("USD").WithOrder(Descending)

	req, err := base.IntoRequest(testHost)
	require.NoError(t, err)
	assert.Equal(t, "https://horizon.example.org/assets", req.URL)
}

func TestAllAssets_EncodesQueryValues(t *testing.T) {
	req, err := NewAllAssets().WithCursor("a b&c").IntoRequest(testHost)
	require.NoError(t, err)

	parsed, err := url.Parse(req.URL)
	require.NoError(t, err)
	assert.Equal(t, "a b&c", parsed.Query().Get("cursor"))
}
