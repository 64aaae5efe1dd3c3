package utils

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const CurrencySuffix = " ₪"

var amountPrinter = message.NewPrinter(language.Hebrew)

func Round(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatAmount groups thousands using the Hebrew locale and keeps at most two
// fraction digits, e.g. 3500 -> "3,500", 1234.5 -> "1,234.5".
func FormatAmount(value float64) string {
	return amountPrinter.Sprint(number.Decimal(Round(value), number.MaxFractionDigits(2)))
}

func FormatCurrency(value float64) string {
	return FormatAmount(value) + CurrencySuffix
}

// ParseAmount parses a free-form numeric field. ok is false for empty or
// non-numeric input.
func ParseAmount(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseCount parses an integer field, truncating decimals ("10.5" -> 10).
func ParseCount(raw string) (int, bool) {
	v, ok := ParseAmount(raw)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// FormatNumber renders a number the way a JavaScript form would stringify it.
func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
