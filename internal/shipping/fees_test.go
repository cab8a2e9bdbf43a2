package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCost_FlatRate(t *testing.T) {
	tests := []struct {
		name          string
		subtotalCents int64
		weightGrams   int64
		wantCents     int64
	}{
		{"empty cart", 0, 0, FlatRateCents},
		{"small order", 1250, 200, FlatRateCents},
		{"just under threshold", 6999, 1500, FlatRateCents},
		{"exactly at threshold", 7000, 1500, 0},
		{"well above threshold", 15000, 5000, 0},
		{"weight never changes the fee", 500, 30000, FlatRateCents},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCents, Cost(tt.subtotalCents, tt.weightGrams))
		})
	}
}

func TestCost_NeverPartial(t *testing.T) {
	// The fee is all-or-nothing: any subtotal yields either the flat
	// rate or free shipping, never an intermediate amount.
	for subtotal := int64(0); subtotal <= 10000; subtotal += 137 {
		got := Cost(subtotal, 0)
		if subtotal >= FreeShippingThresholdCents {
			assert.Zero(t, got, "subtotal %d", subtotal)
		} else {
			assert.Equal(t, int64(FlatRateCents), got, "subtotal %d", subtotal)
		}
	}
}
