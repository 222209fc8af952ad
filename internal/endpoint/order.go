package endpoint

import (
	"fmt"
	"strings"
)

// Order is the sort direction of a listing. Its field is unexported so the
// only values are Ascending and Descending; the zero value is Ascending.
type Order struct {
	desc bool
}

var (
	Ascending  = Order{}
	Descending = Order{desc: true}
)

// Param returns the wire form used in query strings
func (o Order) Param() string {
	if o.desc {
		return "desc"
	}
	return "asc"
}

func (o Order) String() string {
	return o.Param()
}

// ParseOrder reads "asc" or "desc", case-insensitively
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return Ascending, fmt.Errorf("unknown order %q, expected asc or desc", s)
	}
}
