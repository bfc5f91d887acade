package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Note that JSON round-trips numeric property values as float64 and rejects
// funcs, channels and complex numbers; snapshot properties should stick to
// plain scalars, slices and maps.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
