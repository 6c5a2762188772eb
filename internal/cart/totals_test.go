package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		subtotal float64
		tax      float64
	}{
		{0, 0},
		{30, 3},
		{9.99, 1},
		{0.04, 0},
		{0.06, 0.01},
		{123.4, 12.34},
	}

	for _, tt := range tests {
		got := ComputeTotals(tt.subtotal)
		assert.Equal(t, tt.subtotal, got.Subtotal)
		assert.InDelta(t, tt.tax, got.Tax, 1e-9, "tax for %v", tt.subtotal)
		assert.InDelta(t, tt.subtotal+tt.tax, got.Total, 1e-9, "total for %v", tt.subtotal)
	}
}

func TestComputeTotalsTaxIsWholeCents(t *testing.T) {
	for s := 0.0; s < 50; s += 0.37 {
		tax := ComputeTotals(s).Tax
		assert.InDelta(t, round2(tax), tax, 1e-9)
	}
}
