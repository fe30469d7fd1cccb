package exif

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrZeroDenominator = errors.New("rational has zero denominator")
	ErrInvalidRational = errors.New("invalid rational value")
)

// ParseRational converts "n/d", a bare number or "" to a float. An empty
// value is 0.
func ParseRational(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	num, den, found := strings.Cut(s, "/")
	n, err := parseFinite(num)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRational, s)
	}
	if !found {
		return n, nil
	}

	d, err := parseFinite(den)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRational, s)
	}
	if d == 0 {
		return 0, fmt.Errorf("%w: %q", ErrZeroDenominator, s)
	}
	return n / d, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// ToDecimal converts a degrees/minutes/seconds triple of rationals to signed
// decimal degrees. Missing components count as 0; a "W" or "S" reference
// negates the result.
func ToDecimal(components []string, ref string) (float64, error) {
	var parts [3]float64
	for i := 0; i < len(parts) && i < len(components); i++ {
		v, err := ParseRational(components[i])
		if err != nil {
			return 0, err
		}
		parts[i] = v
	}

	value := parts[0] + parts[1]/60 + parts[2]/3600
	if isNegativeRef(ref) {
		value = -value
	}
	return value, nil
}

func isNegativeRef(ref string) bool {
	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "W", "S":
		return true
	}
	return false
}
