// Package shipping computes the flat-rate shipping fee applied at
// checkout. Rates are a single France-wide flat fee waived above a
// free-shipping threshold; there are no weight tiers.
package shipping

const (
	// FlatRateCents is the standard Colissimo flat fee
	FlatRateCents = 1000

	// FreeShippingThresholdCents waives the fee at or above this subtotal
	FreeShippingThresholdCents = 7000
)

// Cost returns the shipping fee in cents for a pre-shipping subtotal.
// weightGrams is accepted for call-site compatibility with carrier-based
// quoting but does not influence the fee.
func Cost(subtotalCents, weightGrams int64) int64 {
	if subtotalCents >= FreeShippingThresholdCents {
		return 0
	}
	return FlatRateCents
}
