package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCursor is returned for cursors that are malformed or belong to another collection.
var ErrInvalidCursor = errors.New("invalid cursor format")

// Cursor is an opaque position in a collection: the kind of collection and the ID of the
// last item already seen. An empty After starts from the beginning.
type Cursor struct {
	Kind  string
	After string
}

// Encode returns the URL-safe Base64 form used in query strings and Link headers.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Kind + ":" + c.After))
}

// DecodeCursor parses s and checks it was issued for kind. An empty s is the first page.
func DecodeCursor(s, kind string) (Cursor, error) {
	if s == "" {
		return Cursor{Kind: kind}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	k, after, ok := strings.Cut(string(raw), ":")
	if !ok || k != kind {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Kind: k, After: after}, nil
}
