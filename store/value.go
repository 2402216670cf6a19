package store

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hupe1980/respool/codec"
)

// Nil and empty slices and maps are not distinguished; encoders do not
// keep the difference.
var roundTripOpts = cmp.Options{
	cmpopts.EquateEmpty(),
	cmpopts.EquateNaNs(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

func decodeValue(c codec.Codec, typ string, payload []byte) (any, error) {
	ptr, ok := codec.New(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	if err := c.Unmarshal(payload, ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

// encodeValue encodes value and checks that decoding the result yields an
// equal value of the same type.
func encodeValue(c codec.Codec, value any) (typ string, payload []byte, err error) {
	typ, err = codec.TypeName(value)
	if err != nil {
		return "", nil, err
	}
	payload, err = c.Marshal(value)
	if err != nil {
		return "", nil, err
	}
	back, err := decodeValue(c, typ, payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrRoundTrip, err)
	}
	if !cmp.Equal(value, back, roundTripOpts) {
		return "", nil, fmt.Errorf("%w: %T with codec %s", ErrRoundTrip, value, c.Name())
	}
	return typ, payload, nil
}
