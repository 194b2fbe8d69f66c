package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The booking backend is Odoo-style: an unset field arrives as false, numbers
// sometimes arrive as strings and many2one references as [id, "name"]. The
// types below decode those without failing the surrounding item.

var (
	jsonNull  = []byte("null")
	jsonFalse = []byte("false")
)

// unset reports whether b is a JSON value the backend uses for "no value".
func unset(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, jsonNull) || bytes.Equal(b, jsonFalse)
}

// Text is a backend string field.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case unset(b):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case b[0] == '[':
		_, name := pair(b)
		*t = Text(name)
	case b[0] == '{':
		*t = ""
	default:
		// numbers and true keep their literal text
		*t = Text(b)
	}
	return nil
}

// Int is a backend integer field. Unparsable values decode as 0.
type Int int64

func (n *Int) UnmarshalJSON(b []byte) error {
	var f Number
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	*n = Int(f)
	return nil
}

// pair reads a many2one [id, "name"] value.
func pair(b []byte) (int64, string) {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil || len(items) == 0 {
		return 0, ""
	}
	var id Int
	_ = id.UnmarshalJSON(items[0])
	var name Text
	if len(items) > 1 {
		_ = name.UnmarshalJSON(items[1])
	}
	return int64(id), string(name)
}

// decodeRef fills a reference struct. It returns false when b is not an
// object and the caller should keep only id and name.
func decodeRef(b []byte, dst any) (id int64, name string, object bool, err error) {
	b = bytes.TrimSpace(b)
	switch {
	case unset(b):
		return 0, "", false, nil
	case b[0] == '{':
		return 0, "", true, json.Unmarshal(b, dst)
	case b[0] == '[':
		id, name = pair(b)
		return id, name, false, nil
	default:
		var n Int
		_ = n.UnmarshalJSON(b)
		return int64(n), "", false, nil
	}
}

// keepRaw copies b so an item can be sent on unchanged.
func keepRaw(b []byte) json.RawMessage {
	return append(json.RawMessage(nil), bytes.TrimSpace(b)...)
}

// numberText parses a numeric string the backend may format with spaces.
func numberText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
