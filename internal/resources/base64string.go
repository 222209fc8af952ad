package resources

import "encoding/base64"

// Base64String is an opaque base64-encoded value as it arrives from the server.
// Decoding is deferred until the caller asks for the bytes.
type Base64String string

// Decode returns the raw bytes behind the base64 envelope
func (b Base64String) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(string(b))
}

// String returns the encoded form
func (b Base64String) String() string {
	return string(b)
}
