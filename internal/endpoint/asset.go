package endpoint

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/substratumservices/horizon-client/internal/resources"
)

// MaxLimit is the largest page size the server accepts
const MaxLimit = 200

var _ Endpoint[resources.Records[resources.Asset], Unit] = AllAssets{}

// AllAssets lists the assets issued on the network, one page at a time.
// Unset filters are left out of the query string.
type AllAssets struct {
	code     string
	issuer   string
	cursor   string
	limit    uint32
	order    Order
	hasOrder bool
}

// NewAllAssets creates an unfiltered asset listing
func NewAllAssets() AllAssets {
	return AllAssets{}
}

// WithAssetCode filters by asset code
func (e AllAssets) WithAssetCode(code string) AllAssets {
	e.code = code
	return e
}

// WithAssetIssuer filters by issuer address
func (e AllAssets) WithAssetIssuer(issuer string) AllAssets {
	e.issuer = issuer
	return e
}

// WithCursor starts the page after the given paging token
func (e AllAssets) WithCursor(cursor string) AllAssets {
	e.cursor = cursor
	return e
}

// WithLimit sets the page size; 0 leaves the server default
func (e AllAssets) WithLimit(limit uint32) AllAssets {
	e.limit = limit
	return e
}

// WithOrder sets the sort direction
func (e AllAssets) WithOrder(order Order) AllAssets {
	e.order = order
	e.hasOrder = true
	return e
}

// IntoRequest builds GET {host}/assets with the configured filters
func (e AllAssets) IntoRequest(host string) (Request[Unit], error) {
	query, err := e.query()
	if err != nil {
		return Request[Unit]{}, &RequestError{Endpoint: "all assets", Err: err}
	}
	return newGet("all assets", host, query, "assets")
}

// DecodeResponse parses one page of asset records
func (e AllAssets) DecodeResponse(data []byte) (resources.Records[resources.Asset], error) {
	return decodeJSON[resources.Records[resources.Asset]](data)
}

func (e AllAssets) query() (url.Values, error) {
	if e.limit > MaxLimit {
		return nil, fmt.Errorf("%w: limit %d exceeds %d", ErrInvalidQueryParameter, e.limit, MaxLimit)
	}

	q := url.Values{}
	if e.code != "" {
		q.Set("asset_code", e.code)
	}
	if e.issuer != "" {
		q.Set("asset_issuer", e.issuer)
	}
	if e.cursor != "" {
		q.Set("cursor", e.cursor)
	}
	if e.limit > 0 {
		q.Set("limit", strconv.FormatUint(uint64(e.limit), 10))
	}
	if e.hasOrder {
		q.Set("order", e.order.Param())
	}
	return q, nil
}
