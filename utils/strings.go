package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// nearZero is the magnitude below which formatted values are written as 0.
const nearZero = 1e-12

// ParseFloats parses a space-delimited list of exactly n floats. An empty string yields a nil slice and no error
// so callers can tell an absent attribute from a malformed one.
func ParseFloats(s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields) != n {
		return nil, errors.Errorf("expected %d values but got %d in %q", n, len(fields), s)
	}
	converted := make([]float64, 0, n)
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number in %q", s)
		}
		converted = append(converted, value)
	}
	return converted, nil
}

// FloatSliceToSpaceDelimitedString formats floats with the shortest representation that round-trips.
func FloatSliceToSpaceDelimitedString(values ...float64) string {
	fields := make([]string, 0, len(values))
	for _, v := range values {
		if math.Abs(v) < nearZero {
			v = 0
		}
		fields = append(fields, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return strings.Join(fields, " ")
}

// ParseRGBA parses an "r g b" or "r g b a" color. The alpha defaults to 1 and an empty string yields a nil
// slice.
func ParseRGBA(s string) ([]float64, error) {
	if len(strings.Fields(s)) == 3 {
		rgb, err := ParseFloats(s, 3)
		if err != nil {
			return nil, err
		}
		return append(rgb, 1), nil
	}
	return ParseFloats(s, 4)
}
