package util

import "github.com/oklog/ulid/v2"

// NewULID returns a lexically sortable unique id. Safe for concurrent use.
func NewULID() string {
	return ulid.Make().String()
}
