package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected *int
	}{
		{name: "Plain number", raw: "12", expected: ptr(12)},
		{name: "Surrounding spaces", raw: "  7 ", expected: ptr(7)},
		{name: "Trailing garbage", raw: "5abc", expected: ptr(5)},
		{name: "Decimal truncates", raw: "12.9", expected: ptr(12)},
		{name: "Negative", raw: "-3", expected: ptr(-3)},
		{name: "Empty", raw: "", expected: nil},
		{name: "Letters first", raw: "abc5", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Int(tc.raw))
		})
	}
}

func TestFloat(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected *float64
	}{
		{name: "Integer", raw: "4", expected: ptr(4.0)},
		{name: "Decimal", raw: "1500000.5", expected: ptr(1500000.5)},
		{name: "Leading dot", raw: ".5", expected: ptr(0.5)},
		{name: "Exponent", raw: "2e3", expected: ptr(2000.0)},
		{name: "Suffix ignored", raw: "4.5h", expected: ptr(4.5)},
		{name: "Not a number", raw: "h4", expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Float(tc.raw))
		})
	}
}

func TestInts(t *testing.T) {
	out := Ints([]string{"1", "x", "3"})
	require.Len(t, out, 3)
	assert.Equal(t, 1, *out[0])
	assert.Nil(t, out[1])
	assert.Equal(t, 3, *out[2])
}

func TestDateTimeLocal(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)

	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "Space separated", raw: "2024-05-01 09:30:00", expected: "2024-05-01T09:30"},
		{name: "ISO local", raw: "2024-05-01T09:30:00", expected: "2024-05-01T09:30"},
		{name: "ISO with zone converts", raw: "2024-05-01T02:30:00Z", expected: "2024-05-01T09:30"},
		{name: "Date only", raw: "2024-05-01", expected: "2024-05-01T00:00"},
		{name: "Empty", raw: "", expected: ""},
		{name: "Garbage", raw: "yesterday", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DateTimeLocal(tc.raw, loc))
		})
	}
}

func TestDatePart(t *testing.T) {
	assert.Equal(t, "2023-01-15", DatePart("2023-01-15 00:00:00"))
	assert.Equal(t, "2023-01-15", DatePart("2023-01-15"))
	assert.Equal(t, "", DatePart(""))
}

func ptr[T any](v T) *T {
	return &v
}
