/*
Package convert provides fault-tolerant type conversion utilities.

It wraps [strconv] so that handler code parsing query parameters does not have
to branch on parse errors; malformed input collapses to a zero value or an
explicit default. Do not use this package where distinguishing malformed data
from a genuine zero matters.
*/
package convert

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	if s == "" {
		return 0
	}
	v, _ := strconv.Atoi(s)
	return v
}

// ToIntD converts a string to an int, returning def if parsing fails or the
// string is empty.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	if s == "" {
		return false
	}
	v, _ := strconv.ParseBool(s)
	return v
}

// FlexInt is an int that unmarshals from either a JSON number or a JSON
// string ("2" and 2 both decode to 2).
//
// Admin forms submit numeric fields as strings; public clients send numbers.
// FlexInt accepts both without per-handler coercion code.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	n, err := strconv.Atoi(string(data))
	if err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}

// MarshalJSON implements json.Marshaler. FlexInt always serializes as a number.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

// Int returns the value as a plain int.
func (f FlexInt) Int() int { return int(f) }
