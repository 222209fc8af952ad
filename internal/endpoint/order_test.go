package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Param(t *testing.T) {
	assert.Equal(t, "asc", Ascending.Param())
	assert.Equal(t, "desc", Descending.Param())
	assert.Equal(t, "desc", Descending.String())
	assert.NotEqual(t, Ascending.Param(), Descending.Param())
}

func TestOrder_ZeroValueIsAscending(t *testing.T) {
	var o Order
	assert.Equal(t, Ascending, o)
	assert.Equal(t, "asc", o.Param())

	req, err := NewAllAssets().WithOrder(o).IntoRequest(testHost)
	require.NoError(t, err)
	assert.Equal(t, "https://horizon.example.org/assets?order=asc", req.URL)
}

func TestParseOrder(t *testing.T) {
	testCases := []struct {
		in      string
		want    Order
		wantErr bool
	}{
		{in: "asc", want: Ascending},
		{in: "ASC", want: Ascending},
		{in: "ascending", want: Ascending},
		{in: "desc", want: Descending},
		{in: " Desc ", want: Descending},
		{in: "descending", want: Descending},
		{in: "", wantErr: true},
		{in: "sideways", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseOrder(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseOrder_RoundTrip(t *testing.T) {
	for _, o := range []Order{Ascending, Descending} {
		got, err := ParseOrder(o.Param())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
}
