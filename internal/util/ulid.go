package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string using ulid's default monotonic,
// cryptographically seeded entropy source.
func NewULID() string {
	return ulid.Make().String()
}
