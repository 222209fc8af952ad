package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is returned for any non-2xx response. Title and Detail come from
// the problem document Horizon sends with errors, when it parses.
type HTTPError struct {
	StatusCode int
	Title      string
	Detail     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	switch {
	case e.Title != "" && e.Detail != "":
		return fmt.Sprintf("HTTP error %d: %s: %s", e.StatusCode, e.Title, e.Detail)
	case e.Title != "":
		return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Title)
	default:
		return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, string(e.Body))
	}
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func newHTTPError(statusCode int, body []byte) *HTTPError {
	httpErr := &HTTPError{StatusCode: statusCode, Body: body}

	var p problem
	if err := json.Unmarshal(body, &p); err == nil {
		httpErr.Title = p.Title
		httpErr.Detail = p.Detail
	}
	return httpErr
}

// IsNotFound reports whether err is a 404 from Horizon
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}
