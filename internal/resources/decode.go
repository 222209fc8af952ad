package resources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// fields holds the top-level keys of a JSON object while a resource is decoded.
// Each decode method applies one coercion rule. The first failure is kept and
// every later call becomes a no-op, so a resource decodes in a single pass and
// checks Err once at the end.
type fields struct {
	resource string
	raw      map[string]json.RawMessage
	err      error
}

func newFields(resource string, data []byte) (*fields, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Resource: resource, Err: fmt.Errorf("%w: %v", ErrMalformedDocument, err)}
	}
	if raw == nil {
		return nil, &DecodeError{Resource: resource, Err: fmt.Errorf("%w: expected object, got null", ErrMalformedDocument)}
	}
	return &fields{resource: resource, raw: raw}, nil
}

// Err returns the first decode failure, if any
func (f *fields) Err() error {
	return f.err
}

func (f *fields) fail(key string, err error) {
	if f.err == nil {
		f.err = decodeErr(f.resource, key, err)
	}
}

// lookup reports a key as present only when it exists and is not JSON null
func (f *fields) lookup(key string) (json.RawMessage, bool) {
	raw, ok := f.raw[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

func (f *fields) required(key string) (json.RawMessage, bool) {
	if f.err != nil {
		return nil, false
	}
	raw, ok := f.lookup(key)
	if !ok {
		f.fail(key, ErrMissingField)
		return nil, false
	}
	return raw, true
}

func (f *fields) requiredString(key string) string {
	raw, ok := f.required(key)
	if !ok {
		return ""
	}
	return f.asString(key, raw)
}

func (f *fields) requiredBool(key string) bool {
	raw, ok := f.required(key)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		f.fail(key, fmt.Errorf("%w: expected boolean", ErrInvalidType))
	}
	return b
}

func (f *fields) requiredUint64(key string) uint64 {
	raw, ok := f.required(key)
	if !ok {
		return 0
	}
	return f.asUint64(key, raw)
}

func (f *fields) requiredUint32(key string) uint32 {
	raw, ok := f.required(key)
	if !ok {
		return 0
	}
	var n uint32
	if err := json.Unmarshal(raw, &n); err != nil {
		f.fail(key, fmt.Errorf("%w: expected unsigned 32-bit integer", ErrInvalidType))
	}
	return n
}

func (f *fields) requiredUint8(key string) uint8 {
	raw, ok := f.required(key)
	if !ok {
		return 0
	}
	var n uint8
	if err := json.Unmarshal(raw, &n); err != nil {
		f.fail(key, fmt.Errorf("%w: expected unsigned 8-bit integer", ErrInvalidType))
	}
	return n
}

// requiredUint64String decodes an unsigned integer that travels as a JSON string
func (f *fields) requiredUint64String(key string) uint64 {
	raw, ok := f.required(key)
	if !ok {
		return 0
	}
	s := f.asString(key, raw)
	if f.err != nil {
		return 0
	}
	n, err := parseUint64String(s)
	if err != nil {
		f.fail(key, err)
		return 0
	}
	return n
}

// defaultString returns "" when the key is absent
func (f *fields) defaultString(key string) string {
	if f.err != nil {
		return ""
	}
	raw, ok := f.lookup(key)
	if !ok {
		return ""
	}
	return f.asString(key, raw)
}

// defaultUint64 returns 0 when the key is absent
func (f *fields) defaultUint64(key string) uint64 {
	if f.err != nil {
		return 0
	}
	raw, ok := f.lookup(key)
	if !ok {
		return 0
	}
	return f.asUint64(key, raw)
}

// optionalString reports whether the key carried a string
func (f *fields) optionalString(key string) (string, bool) {
	if f.err != nil {
		return "", false
	}
	raw, ok := f.lookup(key)
	if !ok {
		return "", false
	}
	s := f.asString(key, raw)
	return s, f.err == nil
}

// requiredBase64Map checks only that every value is a JSON string
func (f *fields) requiredBase64Map(key string) map[string]Base64String {
	raw, ok := f.required(key)
	if !ok {
		return nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		f.fail(key, fmt.Errorf("%w: expected object", ErrInvalidType))
		return nil
	}
	out := make(map[string]Base64String, len(entries))
	for name, value := range entries {
		var s string
		if isNull(value) || json.Unmarshal(value, &s) != nil {
			f.fail(key+"."+name, fmt.Errorf("%w: expected string", ErrInvalidType))
			return nil
		}
		out[name] = Base64String(s)
	}
	return out
}

func (f *fields) asString(key string, raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		f.fail(key, fmt.Errorf("%w: expected string", ErrInvalidType))
		return ""
	}
	return s
}

func (f *fields) asUint64(key string, raw json.RawMessage) uint64 {
	var n uint64
	if err := json.Unmarshal(raw, &n); err != nil {
		f.fail(key, fmt.Errorf("%w: expected unsigned integer", ErrInvalidType))
		return 0
	}
	return n
}

// requiredObject decodes a nested resource through its own UnmarshalJSON
func requiredObject[T any](f *fields, key string) T {
	var out T
	raw, ok := f.required(key)
	if !ok {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		f.fail(key, err)
	}
	return out
}

// requiredList decodes a JSON array element by element so failures name the index
func requiredList[T any](f *fields, key string) []T {
	raw, ok := f.required(key)
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		f.fail(key, fmt.Errorf("%w: expected array", ErrInvalidType))
		return nil
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			f.fail(fmt.Sprintf("%s[%d]", key, i), err)
			return nil
		}
		out = append(out, v)
	}
	return out
}

// parseUint64String accepts only plain base-10 digits that fit in 64 bits
func parseUint64String(s string) (uint64, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNumericString, s)
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumericString, s)
	}
	return n, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
