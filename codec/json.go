package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Notes:
//   - Values held in interfaces decode into their generic forms
//     (map[string]any, []any, float64), so stores reject such values at put.
//   - Channels, funcs and complex numbers cannot be encoded; Marshal fails.
//
// If you need custom encoding (e.g. protobuf/msgpack), implement Codec and
// pass it to the pool with WithCodec.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// NOTE: This affects newly written records only. Existing records are
// self-describing and decoded with the codec named in their header.
var Default Codec = Gob{}
