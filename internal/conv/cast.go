package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a length does not fit the target width.
var ErrOverflow = errors.New("integer overflow")

// LenUint8 converts a length to uint8.
func LenUint8(n int) (uint8, error) {
	if n < 0 || n > math.MaxUint8 {
		return 0, fmt.Errorf("%w: %d does not fit uint8", ErrOverflow, n)
	}
	return uint8(n), nil
}

// LenUint16 converts a length to uint16.
func LenUint16(n int) (uint16, error) {
	if n < 0 || n > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d does not fit uint16", ErrOverflow, n)
	}
	return uint16(n), nil
}

// LenUint32 converts a length to uint32.
func LenUint32(n int) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d does not fit uint32", ErrOverflow, n)
	}
	return uint32(n), nil
}

// Uint32ToInt converts a length read from disk to int.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d does not fit int", ErrOverflow, v)
	}
	return int(v), nil
}
