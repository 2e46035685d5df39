package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Attribute is a free-form profile value. The mobile client sends forms, so most values
// arrive as strings, but JSON callers may send numbers; both are stored as text.
type Attribute string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (a *Attribute) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Attribute(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Attribute(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*a = Attribute(fmt.Sprint(b))
		return nil
	}
	return fmt.Errorf("attribute: unsupported JSON value %s", data)
}

func (a Attribute) String() string {
	return string(a)
}

// IsBlank reports whether the value is empty after trimming.
func (a Attribute) IsBlank() bool {
	return strings.TrimSpace(string(a)) == ""
}
