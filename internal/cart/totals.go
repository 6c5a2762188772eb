package cart

import "math"

// TaxRate is the flat sales tax applied to every cart.
const TaxRate = 0.10

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives tax and grand total from a subtotal. Tax is
// rounded to cents; the total is not rounded further.
func ComputeTotals(subtotal float64) Totals {
	tax := round2(subtotal * TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func subtotalOf(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

func countOf(items []LineItem) int {
	var n int
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
