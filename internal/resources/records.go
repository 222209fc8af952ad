package resources

import (
	"net/url"
	"slices"
)

// Records is one page of a listing endpoint
type Records[T any] struct {
	self    string
	next    string
	prev    string
	records []T
}

// NewRecords creates a page from its links and records
func NewRecords[T any](self, next, prev string, records []T) Records[T] {
	return Records[T]{self: self, next: next, prev: prev, records: slices.Clone(records)}
}

// Records returns a copy of the page's records
func (r Records[T]) Records() []T {
	return slices.Clone(r.records)
}

// Len is the number of records on the page
func (r Records[T]) Len() int {
	return len(r.records)
}

func (r Records[T]) SelfLink() string { return r.self }
func (r Records[T]) NextLink() string { return r.next }
func (r Records[T]) PrevLink() string { return r.prev }

// NextCursor extracts the cursor query parameter of the next link
func (r Records[T]) NextCursor() (string, bool) {
	return cursorOf(r.next)
}

// PrevCursor extracts the cursor query parameter of the prev link
func (r Records[T]) PrevCursor() (string, bool) {
	return cursorOf(r.prev)
}

func cursorOf(link string) (string, bool) {
	if link == "" {
		return "", false
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	cursor := u.Query().Get("cursor")
	return cursor, cursor != ""
}

func (r *Records[T]) UnmarshalJSON(data []byte) error {
	f, err := newFields("records", data)
	if err != nil {
		return err
	}

	var decoded Records[T]
	if links, ok := f.lookup("_links"); ok {
		lf, err := newFields("links", links)
		if err != nil {
			return decodeErr("records", "_links", err)
		}
		decoded.self = lf.linkHref("self")
		decoded.next = lf.linkHref("next")
		decoded.prev = lf.linkHref("prev")
		if err := lf.Err(); err != nil {
			return decodeErr("records", "_links", err)
		}
	}

	embedded, ok := f.required("_embedded")
	if !ok {
		return f.Err()
	}
	ef, err := newFields("embedded", embedded)
	if err != nil {
		return decodeErr("records", "_embedded", err)
	}
	decoded.records = requiredList[T](ef, "records")
	if err := ef.Err(); err != nil {
		return decodeErr("records", "_embedded", err)
	}

	*r = decoded
	return nil
}

// linkHref reads {"<key>": {"href": "..."}}; absent links are empty
func (f *fields) linkHref(key string) string {
	if f.err != nil {
		return ""
	}
	raw, ok := f.lookup(key)
	if !ok {
		return ""
	}
	lf, err := newFields("link", raw)
	if err != nil {
		f.fail(key, err)
		return ""
	}
	href := lf.requiredString("href")
	if err := lf.Err(); err != nil {
		f.fail(key, err)
		return ""
	}
	return href
}
