package sheet

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numericNoise = strings.NewReplacer("%", "", ",", "")
	// leading float literal; anything after it is ignored
	numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// ParseNumeric reads a spreadsheet cell as a number. Percent signs and
// thousands separators are dropped. Empty or unparsable cells read as 0.
func ParseNumeric(s string) float64 {
	s = strings.TrimSpace(numericNoise.Replace(s))
	if s == "" {
		return 0
	}

	literal := numericPrefix.FindString(s)
	if literal == "" {
		return 0
	}

	v, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NormalizeRate converts fractional rates in (0, 1] to percentages. A value
// of exactly 1 is read as 100%, so a true 1% rate exported as "1" is
// indistinguishable from a full fraction.
func NormalizeRate(v float64) float64 {
	if v > 0 && v <= 1 {
		return v * 100
	}
	return v
}

// NormalizePath ensures the path starts with a slash.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if path[0] != '/' {
		return "/" + path
	}
	return path
}
