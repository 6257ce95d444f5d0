package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString tracks presence and value for untrusted JSON fields.
// This enables tri-state handling that Go's *string cannot express:
//   - Present=false: field absent from JSON
//   - Present=true, Value=nil: field was null or not a string
//   - Present=true, Value=&"text": field is a string
//
// A wrong-typed field is deliberately not a decode error; it surfaces as a
// field-level validation message instead of failing the whole body.
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	o.Value = nil

	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Not a string; leave Value nil for the validator to report
		return nil
	}
	o.Value = &s
	return nil
}
