package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	intPrefixRe   = regexp.MustCompile(`^\s*([+-]?\d+)`)
	floatPrefixRe = regexp.MustCompile(`^\s*([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
)

// Int parses the leading integer of a form value the way browser forms do:
// "12", " 12 ", "12abc" and "12.9" all give 12. It returns nil when no digits lead the value.
func Int(raw string) *int {
	m := intPrefixRe.FindStringSubmatch(raw)
	if len(m) != 2 {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// Float parses the leading decimal number of a form value ("4.5h" gives 4.5).
// It returns nil when the value does not start with a number.
func Float(raw string) *float64 {
	m := floatPrefixRe.FindStringSubmatch(raw)
	if len(m) != 2 {
		return nil
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &f
}

// Ints parses every value with Int, keeping nil entries for unparsable ones.
func Ints(raw []string) []*int {
	out := make([]*int, len(raw))
	for i, r := range raw {
		out[i] = Int(r)
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// Timestamp parses a backend timestamp. Values without a zone are read in loc.
func Timestamp(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// DateTimeLocal formats a backend timestamp as a datetime-local input value
// ("2006-01-02T15:04") in loc. Empty or unparsable values give "".
func DateTimeLocal(raw string, loc *time.Location) string {
	t, ok := Timestamp(raw, loc)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02T15:04")
}

// DatePart returns the date portion of a "date time" value.
func DatePart(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.Split(raw, " ")[0]
}
