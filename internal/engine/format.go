package engine

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

var floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// FormatCapex renders a raw capex field as rupees with Indian digit grouping.
// Anything without a leading number renders as NaN.
func FormatCapex(raw string) string {
	return "₹" + inr.Sprint(number.Decimal(parseFloatPrefix(raw)))
}

// parseFloatPrefix reads the longest numeric prefix of s after leading
// whitespace, the way browsers parse loosely formatted numbers.
func parseFloatPrefix(s string) float64 {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}
