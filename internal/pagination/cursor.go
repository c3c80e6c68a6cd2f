// Package pagination implements opaque keyset cursors. A cursor encodes
// the (timestamp, id) pair of the last item on a page, so listing stays
// stable while rows are inserted or deleted between requests.
package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"
)

// Cursor represents a decoded pagination cursor.
type Cursor struct {
	LastID    string
	Timestamp time.Time
}

var ErrInvalidCursor = errors.New("invalid cursor format")

// EncodeCursor creates an opaque cursor from the last item ID and timestamp.
func EncodeCursor(lastID string, timestamp time.Time) string {
	if lastID == "" {
		return ""
	}
	raw := lastID + "|" + timestamp.UTC().Format(time.RFC3339Nano)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor decodes a cursor produced by EncodeCursor. An empty
// cursor decodes to nil, meaning "first page".
func DecodeCursor(cursor string) (*Cursor, error) {
	if cursor == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	parts := strings.SplitN(string(decoded), "|", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidCursor
	}

	timestamp, err := time.Parse(time.RFC3339Nano, parts[1])
	if err != nil {
		return nil, ErrInvalidCursor
	}

	return &Cursor{
		LastID:    parts[0],
		Timestamp: timestamp,
	}, nil
}
