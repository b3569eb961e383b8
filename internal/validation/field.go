package validation

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is a loosely typed request value. Clients send scalars either as JSON
// strings or bare numbers, and some rules care which one arrived.
type Field struct {
	Value    string
	Present  bool
	IsString bool
}

// String returns a present string field.
func String(v string) Field {
	return Field{Value: v, Present: true, IsString: true}
}

// Blank reports whether the field is absent, null, or whitespace only.
func (f Field) Blank() bool {
	return !f.Present || strings.TrimSpace(f.Value) == ""
}

// Trimmed returns the value without surrounding whitespace.
func (f Field) Trimmed() string {
	return strings.TrimSpace(f.Value)
}

func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = Field{}
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field{Value: s, Present: true, IsString: true}
	case data[0] == '{' || data[0] == '[':
		// Composite values never satisfy scalar rules.
		*f = Field{Present: true}
	default:
		*f = Field{Value: string(data), Present: true}
	}
	return nil
}

func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
