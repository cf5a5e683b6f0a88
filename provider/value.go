package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const absentValue = "None"

var jsonNull = []byte("null")

// Value keeps a JSON scalar exactly as it was spelled in the payload. Numbers are not reformatted,
// so 28.0 stays 28.0. Strings are unquoted
type Value struct {
	raw   string
	valid bool
}

func NewValue(raw string) Value {
	return Value{raw: raw, valid: true}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		*v = Value{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("unquote value: %w", err)
		}

		*v = NewValue(s)
		return nil
	}

	*v = NewValue(string(b))

	return nil
}

// Valid reports whether the field was present and not null
func (v Value) Valid() bool {
	return v.valid
}

func (v Value) String() string {
	if !v.valid {
		return absentValue
	}

	return v.raw
}
