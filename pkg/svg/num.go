package svg

import (
	"strconv"
	"strings"
)

// Num formats v in its shortest fixed-point form: 400 for 400.0, 0.5 for 0.5.
// Negative zero is written as 0.
func Num(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}

// Round formats v rounded to the given number of decimal places, dropping
// trailing zeros and the decimal point when the result is whole.
// A precision of 0 always yields an integer literal.
func Round(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
