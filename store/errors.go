package store

import (
	"errors"
	"fmt"

	"github.com/hupe1980/respool/resource"
)

var (
	// ErrInvalidName is returned for empty pool or resource names and for
	// pool names that are not a single path segment.
	ErrInvalidName = errors.New("invalid resource name")

	// ErrRoundTrip is wrapped by a SerializationError when a value encodes
	// but does not decode back to an equal value.
	ErrRoundTrip = errors.New("value does not survive a round trip")

	// ErrUnknownType is logged for records whose value type is not
	// registered in this process.
	ErrUnknownType = errors.New("unregistered value type")
)

// SerializationError is returned by Put when a value cannot be encoded.
type SerializationError struct {
	ID  resource.ID
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize %s: %v", e.ID, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// StorageError reports a failure of the backing medium.
type StorageError struct {
	Op  string
	ID  resource.ID
	Err error
}

func (e *StorageError) Error() string {
	if e.ID.IsZero() {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.ID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
