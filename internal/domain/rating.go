package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rating is a rating as submitted by a client, before coercion.
//
// Clients send either a JSON number or a JSON string. A null, zero, empty or
// false rating is treated as absent. Int coerces the raw value to an integer
// by reading its leading digits, so "4stars" is 4 and 3.9 is 3.
type Rating struct {
	present bool
	value   int
	numeric bool
}

// RatingOf returns a present rating with the given integer value.
// A zero value is absent, as with a submitted 0.
func RatingOf(n int) Rating {
	return Rating{present: n != 0, value: n, numeric: true}
}

// ParseRating interprets s the way a submitted string rating is interpreted.
func ParseRating(s string) Rating {
	if s == "" {
		return Rating{}
	}
	n, ok := leadingInt(s)
	return Rating{present: true, value: n, numeric: ok}
}

// Present reports whether a rating was supplied at all.
func (r Rating) Present() bool { return r.present }

// Int returns the coerced integer. ok is false when the raw value has no
// leading integer or the rating is absent.
func (r Rating) Int() (n int, ok bool) {
	if !r.present || !r.numeric {
		return 0, false
	}
	return r.value, true
}

// UnmarshalJSON accepts numbers, strings, booleans and null.
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*r = Rating{}
		return nil
	}

	switch data[0] {
	case 'n':
		*r = Rating{}
		return nil
	case 't':
		*r = BoolRating(true)
		return nil
	case 'f':
		*r = BoolRating(false)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("rating: %w", err)
		}
		*r = ParseRating(s)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("rating must be a number or string: %w", err)
	}
	// Out of range numbers come back as ±Inf and fail the range rule.
	*r = NumberRating(f)
	return nil
}

// NumberRating interprets a submitted number. Zero is absent, the fraction is
// dropped, and values with no int form (huge, infinite, NaN) are present but
// never in range.
func NumberRating(f float64) Rating {
	switch {
	case f == 0:
		return Rating{}
	case math.IsNaN(f), math.Abs(f) > math.MaxInt32:
		return Rating{present: true}
	}
	return Rating{present: true, value: int(f), numeric: true}
}

// BoolRating interprets a submitted boolean: false is absent, true is present
// but has no integer form.
func BoolRating(b bool) Rating {
	if !b {
		return Rating{}
	}
	return Rating{present: true}
}

// MarshalJSON writes the coerced integer, or null when absent.
func (r Rating) MarshalJSON() ([]byte, error) {
	n, ok := r.Int()
	if !ok {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(n)), nil
}

// leadingInt parses an optional sign and the leading decimal digits of s,
// ignoring leading whitespace and anything after the digits.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Too many digits to fit; certainly not a valid rating.
		return math.MaxInt32, true
	}
	return sign * n, true
}
