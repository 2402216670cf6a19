package codec

import (
	"bytes"
	"encoding/gob"
)

// Gob is the encoding/gob codec.
//
// Unlike the JSON codecs it keeps the concrete types of values held in
// interfaces, so map[string]any{"n": 3} decodes back with an int. Concrete
// types stored inside interfaces must be known to gob (see gob.Register).
type Gob struct{}

// Marshal encodes the value with gob.
func (Gob) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes gob data into v.
func (Gob) Unmarshal(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// Name returns the unique name of the codec ("gob").
func (Gob) Name() string { return "gob" }
