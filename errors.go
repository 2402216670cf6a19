package respool

import (
	"errors"
	"fmt"

	"github.com/hupe1980/respool/store"
)

var (
	// ErrStorage is returned when the local store cannot complete a put,
	// remove or listing.
	ErrStorage = errors.New("storage failure")

	// ErrSerialization is returned by Put when the value cannot be encoded.
	// It wraps ErrStorage.
	ErrSerialization = fmt.Errorf("%w: value not serializable", ErrStorage)

	// ErrInvalidName is returned for empty pool or resource names.
	ErrInvalidName = errors.New("invalid resource name")

	// ErrClosed is returned by operations on a closed pool.
	ErrClosed = errors.New("pool is closed")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, store.ErrInvalidName) {
		return fmt.Errorf("%w: %w", ErrInvalidName, err)
	}
	var se *store.SerializationError
	if errors.As(err, &se) {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	var ste *store.StorageError
	if errors.As(err, &ste) {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return err
}
