package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	decimalSep   = ","
	thousandsSep = "."
	currencySign = "€"
	placeholder  = "—"
)

// ParseNumber reads a user-entered number. Blank, non-numeric or non-finite
// input is zero; a comma decimal separator is accepted.
func ParseNumber(raw string) float64 {
	value, err := ParseAmount(raw)
	if err != nil {
		return 0
	}
	return value
}

// ParseAmount is the strict form of ParseNumber: blank is zero, anything
// that is not a finite number is an error.
func ParseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if strings.Contains(raw, ",") {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if !IsFinite(value) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return value, nil
}

func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Number renders value with the given precision, comma decimals and dot thousands.
func Number(value float64, precision int) string {
	if !IsFinite(value) {
		return placeholder
	}
	fixed := decimal.NewFromFloat(value).StringFixed(int32(precision))

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	if strings.Trim(intPart, "0") == "" && strings.Trim(fracPart, "0") == "" {
		sign = ""
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSep)
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteString(decimalSep)
		b.WriteString(fracPart)
	}
	return b.String()
}

func Currency(value float64) string {
	return Number(value, 2) + " " + currencySign
}

func Percent(value float64) string {
	if !IsFinite(value) {
		return placeholder
	}
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d%%", int64(value))
	}
	return Number(value, 2) + "%"
}

// Hours renders fractional hours as "H:MM".
func Hours(hours float64) string {
	if !IsFinite(hours) || !IsFinite(hours*60) {
		return placeholder
	}
	minutes := decimal.NewFromFloat(hours * 60).Round(0).IntPart()
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}

func Date(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format("02/01/2006")
}

func Value(value string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
