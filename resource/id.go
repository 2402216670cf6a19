package resource

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidID is returned when an ID cannot be parsed.
var ErrInvalidID = errors.New("invalid resource id")

// ID names a resource uniquely across all pools.
// The pool name disambiguates resources that share a local name.
type ID struct {
	Pool string `json:"pool"`
	Name string `json:"name"`
}

// NewID returns the ID of name in pool.
func NewID(pool, name string) ID {
	return ID{Pool: pool, Name: name}
}

// ParseID parses the "pool/name" form produced by String.
// The name may itself contain slashes; the pool may not.
func ParseID(s string) (ID, error) {
	pool, name, ok := strings.Cut(s, "/")
	if !ok || pool == "" || name == "" {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID{Pool: pool, Name: name}, nil
}

// String returns "pool/name".
func (id ID) String() string {
	return id.Pool + "/" + id.Name
}

// IsZero reports whether the ID is empty.
func (id ID) IsZero() bool {
	return id.Pool == "" && id.Name == ""
}
