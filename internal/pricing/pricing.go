package pricing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nurpe/fieldops-docs/internal/format"
	"github.com/nurpe/fieldops-docs/internal/model"
)

// Presets are the tax rates offered by default; any other numeric rate is accepted.
var Presets = []float64{0, 6, 13, 23}

var ErrInvalidTaxRate = errors.New("invalid tax rate")

type Tax struct {
	Rate float64
	Show bool
}

type Line struct {
	Description string         `json:"description"`
	Kind        model.ItemKind `json:"kind"`
	UnitPrice   float64        `json:"unit_price"`
	Quantity    float64        `json:"quantity"`
	Total       float64        `json:"total"`
}

type Summary struct {
	Lines     []Line  `json:"lines"`
	Subtotal  float64 `json:"subtotal"`
	TaxRate   float64 `json:"tax_rate"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
	ShowTax   bool    `json:"show_tax"`
}

// ItemTotal is the sum of price times quantity over the item's entries.
// A single-entry item only looks at its first entry. An amount that overflows
// counts as zero.
func ItemTotal(item model.LineItem) float64 {
	entries := item.Entries
	if !item.Multiple && len(entries) > 1 {
		entries = entries[:1]
	}
	total := 0.0
	for _, e := range entries {
		total += finite(format.ParseNumber(e.Price) * format.ParseNumber(e.Quantity))
	}
	return finite(total)
}

func finite(v float64) float64 {
	if !format.IsFinite(v) {
		return 0
	}
	return v
}

// Compute prices a list of items. The tax amount is always computed; it is only
// added to the total when the document shows tax.
func Compute(items []model.LineItem, tax Tax) Summary {
	lines := make([]Line, 0, len(items))
	subtotal := 0.0
	for _, item := range items {
		line := Line{
			Description: item.Description,
			Kind:        item.Kind,
			Total:       ItemTotal(item),
		}
		if !item.Multiple && len(item.Entries) > 0 {
			line.UnitPrice = format.ParseNumber(item.Entries[0].Price)
			line.Quantity = format.ParseNumber(item.Entries[0].Quantity)
		} else {
			for _, e := range item.Entries {
				line.Quantity += format.ParseNumber(e.Quantity)
			}
			if line.Quantity != 0 {
				line.UnitPrice = line.Total / line.Quantity
			}
		}
		line.UnitPrice = finite(line.UnitPrice)
		line.Quantity = finite(line.Quantity)
		subtotal += line.Total
		lines = append(lines, line)
	}
	subtotal = finite(subtotal)

	taxAmount := finite(subtotal * (tax.Rate / 100))
	total := subtotal
	if tax.Show {
		total = finite(subtotal + taxAmount)
	}

	return Summary{
		Lines:     lines,
		Subtotal:  subtotal,
		TaxRate:   tax.Rate,
		TaxAmount: taxAmount,
		Total:     total,
		ShowTax:   tax.Show,
	}
}

// ParseTaxRate accepts a percentage such as "23", "13.5" or "6,5%".
func ParseTaxRate(raw string) (float64, error) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
	raw = strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	if raw == "" {
		return 0, nil
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 || !format.IsFinite(rate) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTaxRate, raw)
	}
	return rate, nil
}

func IsPreset(rate float64) bool {
	for _, p := range Presets {
		if p == rate {
			return true
		}
	}
	return false
}
