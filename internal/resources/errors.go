package resources

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument is returned when the input is not a JSON object
	ErrMalformedDocument = errors.New("malformed JSON document")
	// ErrMissingField is returned when a required key is absent or null
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidType is returned when a key holds a value of the wrong JSON type
	ErrInvalidType = errors.New("invalid field type")
	// ErrInvalidNumericString is returned when a numeric string is not a base-10 unsigned 64-bit integer
	ErrInvalidNumericString = errors.New("invalid numeric string")
)

// DecodeError describes why a resource could not be deserialized
type DecodeError struct {
	Resource string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decoding %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("decoding %s field %q: %v", e.Resource, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(resource, field string, err error) error {
	// nested resources already carry their own context
	var nested *DecodeError
	if errors.As(err, &nested) {
		if nested.Field != "" {
			field += "." + nested.Field
		}
		return &DecodeError{Resource: resource, Field: field, Err: nested.Err}
	}
	return &DecodeError{Resource: resource, Field: field, Err: err}
}
