// Package pricing derives subtotal and tax from tax-inclusive line prices.
//
// Prices on the menu are gross: they already contain tax. Subtotal and tax
// are back-calculated from the total, never added on top of it.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Tax rates in percent. The order and checkout views use different rates;
// both are kept as they are shown to customers.
const (
	OrderViewRate = 14.0
	CheckoutRate  = 16.0
)

// Currency is the label prices are shown with.
const Currency = "EGP"

// Priced is anything carrying a tax-inclusive price.
type Priced interface {
	GrossPrice() float64
}

// Breakdown splits a gross total at a tax rate. Values keep full precision;
// use Display for rounded presentation.
type Breakdown struct {
	Rate     float64
	Total    float64
	Subtotal float64
	Tax      float64
}

// Compute sums the gross prices of items and decomposes the total at rate percent.
func Compute[T Priced](items []T, rate float64) Breakdown {
	var total float64
	for _, it := range items {
		total += it.GrossPrice()
	}
	return Decompose(total, rate)
}

// Decompose splits a gross total at rate percent:
//
//	subtotal = total / (1 + r/100)
//	tax      = total * r / (100 + r)
func Decompose(total, rate float64) Breakdown {
	return Breakdown{
		Rate:     rate,
		Total:    total,
		Subtotal: total / (1 + rate/100),
		Tax:      total * (rate / (100 + rate)),
	}
}

// DisplayBreakdown is a Breakdown rounded to two decimals for presentation.
type DisplayBreakdown struct {
	Rate     string `json:"rate"`
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func (b Breakdown) Display() DisplayBreakdown {
	return DisplayBreakdown{
		Rate:     decimal.NewFromFloat(b.Rate).String() + "%",
		Subtotal: Round2(b.Subtotal),
		Tax:      Round2(b.Tax),
		Total:    Round2(b.Total),
	}
}

// Round2 renders v rounded to two decimal places, e.g. "70.18".
func Round2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Format renders v as a price label, e.g. "EGP 9.82".
func Format(v float64) string {
	return Currency + " " + Round2(v)
}
