package jsonvalue

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// NormalizeNumber rewrites a JSON number literal the way JavaScript prints
// the parsed value, so 1.50, 1.5e0 and 15e-1 all become 1.5 and -0 becomes
// 0. Literals that a float64 cannot hold exactly, such as integers beyond
// 2^53 or over-long fractions, are returned unchanged so no digits are lost.
func NormalizeNumber(literal string) string {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(f, 0) {
		return literal
	}
	if f == 0 {
		return "0"
	}

	short := formatFloat(f)
	if short == literal {
		return literal
	}
	exact, ok := new(big.Rat).SetString(literal)
	if !ok {
		return literal
	}
	printed, ok := new(big.Rat).SetString(short)
	if !ok || exact.Cmp(printed) != 0 {
		return literal
	}
	return short
}

// formatFloat renders f the way JavaScript prints numbers: plain decimal
// notation between 1e-6 and 1e21, exponent notation outside that range.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads the exponent to two digits, JavaScript does not.
		s = strings.Replace(s, "e-0", "e-", 1)
		s = strings.Replace(s, "e+0", "e+", 1)
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
