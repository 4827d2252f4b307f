// Package format renders numbers and currency amounts for humans.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/currency"
)

// Symbol returns the narrow symbol for an ISO 4217 code ("$" for USD).
func Symbol(code string) (string, error) {
	unit, err := parseCode(code)
	if err != nil {
		return "", err
	}
	return fmt.Sprint(currency.NarrowSymbol(unit)), nil
}

// Decimals returns the number of minor-unit digits an amount in code is
// normally written with (2 for USD, 0 for JPY).
func Decimals(code string) (int, error) {
	unit, err := parseCode(code)
	if err != nil {
		return 0, err
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale, nil
}

// Currency formats amount with the symbol and standard decimals of code,
// grouping thousands: Currency(-1234.5, "USD") is "-$1,234.50".
func Currency(amount float64, code string) (string, error) {
	sym, err := Symbol(code)
	if err != nil {
		return "", err
	}
	dec, err := Decimals(code)
	if err != nil {
		return "", err
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + sym + Number(amount, dec), nil
}

// Number formats v with thousands separators and exactly decimals digits
// after the point, rounding half away from zero.
func Number(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	pattern := "#,###."
	if decimals > 0 {
		pattern += strings.Repeat("#", decimals)
	}
	return humanize.FormatFloat(pattern, roundTo(v, decimals))
}

// Percent formats a ratio (0.256) as a percentage ("25.6%").
func Percent(ratio float64, decimals int) string {
	return Number(ratio*100, decimals) + "%"
}

// Integer formats n with thousands separators.
func Integer(n int64) string {
	return humanize.Comma(n)
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}

func parseCode(code string) (currency.Unit, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return currency.Unit{}, fmt.Errorf("currency %q: %w", code, err)
	}
	return unit, nil
}
