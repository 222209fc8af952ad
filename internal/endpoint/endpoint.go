// Package endpoint declares the Horizon queries this client knows about. Each
// query type fixes the resource it expects back and the body it sends, and
// turns itself into a request descriptor for a given host. Nothing here does
// any I/O; executing the descriptor is the transport's job.
package endpoint

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"unicode"
)

// Endpoint is implemented by every query type. Resp is the resource decoded
// from a successful response, Body is what gets sent (usually Unit).
type Endpoint[Resp any, Body any] interface {
	IntoRequest(host string) (Request[Body], error)
	DecodeResponse(data []byte) (Resp, error)
}

// Unit is the empty request body of read-only queries
type Unit struct{}

// Request describes an HTTP request ready to hand to a transport
type Request[Body any] struct {
	Method string
	URL    string
	Header http.Header
	Body   Body
}

// HasBody reports whether the descriptor carries a non-empty body
func (r Request[Body]) HasBody() bool {
	_, empty := any(r.Body).(Unit)
	return !empty
}

// decodeJSON unmarshals data into a fresh T; the resource types do their own
// field validation in UnmarshalJSON
func decodeJSON[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

func defaultHeader() http.Header {
	h := make(http.Header)
	h.Set("Accept", "application/hal+json, application/json")
	return h
}

// newGet builds a GET descriptor for host joined with the escaped path segments
func newGet(name, host string, query url.Values, segments ...string) (Request[Unit], error) {
	base, err := parseHost(host)
	if err != nil {
		return Request[Unit]{}, &RequestError{Endpoint: name, Err: err}
	}

	for _, segment := range segments {
		if err := checkPathParam(segment); err != nil {
			return Request[Unit]{}, &RequestError{Endpoint: name, Err: err}
		}
	}

	// JoinPath expects escaped elements
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	target := base.JoinPath(escaped...)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	return Request[Unit]{
		Method: http.MethodGet,
		URL:    target.String(),
		Header: defaultHeader(),
		Body:   Unit{},
	}, nil
}

// parseHost accepts an absolute http(s) base URL, optionally with a base path
func parseHost(host string) (*url.URL, error) {
	trimmed := strings.TrimSpace(host)
	if trimmed == "" {
		return nil, hostErr(host, "empty host")
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, hostErr(host, err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, hostErr(host, "scheme must be http or https")
	}
	if u.Host == "" {
		return nil, hostErr(host, "missing host name")
	}
	if u.User != nil {
		return nil, hostErr(host, "credentials are not allowed in the host")
	}
	if u.RawQuery != "" || u.Fragment != "" || u.ForceQuery {
		return nil, hostErr(host, "query and fragment are not allowed in the host")
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

// checkPathParam rejects values that cannot be embedded as a single path segment
func checkPathParam(value string) error {
	if value == "" {
		return pathErr(value, "empty value")
	}
	if value == "." || value == ".." {
		return pathErr(value, "relative path segment")
	}
	for _, r := range value {
		switch {
		case r == '/' || r == '?' || r == '#' || r == '\\':
			return pathErr(value, "reserved character")
		case unicode.IsSpace(r) || unicode.IsControl(r):
			return pathErr(value, "whitespace or control character")
		}
	}
	return nil
}
