package endpoint

import (
	"github.com/substratumservices/horizon-client/internal/resources"
)

var (
	_ Endpoint[resources.Account, Unit]   = AccountDetails{}
	_ Endpoint[resources.DataValue, Unit] = AccountData{}
)

// AccountDetails fetches a single account by its id
type AccountDetails struct {
	ID string
}

// NewAccountDetails creates an account lookup for id
func NewAccountDetails(id string) AccountDetails {
	return AccountDetails{ID: id}
}

// IntoRequest builds GET {host}/accounts/{id}
func (e AccountDetails) IntoRequest(host string) (Request[Unit], error) {
	return newGet("account details", host, nil, "accounts", e.ID)
}

// DecodeResponse parses an account document
func (e AccountDetails) DecodeResponse(data []byte) (resources.Account, error) {
	return decodeJSON[resources.Account](data)
}

// AccountData fetches one entry of an account's key/value store
type AccountData struct {
	ID  string
	Key string
}

// NewAccountData creates a data entry lookup
func NewAccountData(id, key string) AccountData {
	return AccountData{ID: id, Key: key}
}

// IntoRequest builds GET {host}/accounts/{id}/data/{key}
func (e AccountData) IntoRequest(host string) (Request[Unit], error) {
	return newGet("account data", host, nil, "accounts", e.ID, "data", e.Key)
}

// DecodeResponse parses a {"value": ...} data entry
func (e AccountData) DecodeResponse(data []byte) (resources.DataValue, error) {
	return decodeJSON[resources.DataValue](data)
}
