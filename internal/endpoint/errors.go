package endpoint

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHost is returned when the host cannot be used as a base URL
	ErrInvalidHost = errors.New("invalid host")
	// ErrInvalidPathParameter is returned when a path parameter cannot be embedded safely
	ErrInvalidPathParameter = errors.New("invalid path parameter")
	// ErrInvalidQueryParameter is returned when a query parameter is out of range
	ErrInvalidQueryParameter = errors.New("invalid query parameter")
)

// RequestError reports which query failed to build its request
type RequestError struct {
	Endpoint string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("building %s request: %v", e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func hostErr(host, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidHost, host, reason)
}

func pathErr(value, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidPathParameter, value, reason)
}
