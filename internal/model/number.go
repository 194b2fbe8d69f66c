package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Number is a backend amount that may arrive as a JSON number, a numeric
// string ("1500000.00"), false or null. Anything else decodes as 0.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*n = 0
	switch {
	case unset(b):
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if f, ok := numberText(s); ok {
			*n = Number(f)
		}
		return nil
	case b[0] == '{' || b[0] == '[' || bytes.Equal(b, []byte("true")):
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// String renders the value the way a form input shows it ("4", "4.5").
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}
