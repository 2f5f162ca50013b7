// Package pricing computes the checkout totals from a cart subtotal. The
// rules are flat storefront policy: a free-shipping threshold and a single
// tax rate. Amounts are kept unrounded; rounding happens at display time only
// so repeated additions cannot compound rounding error.
package pricing

import "strconv"

const (
	FreeShippingThreshold = 50.0
	FlatShippingRate      = 9.99
	TaxRate               = 0.08
)

// Quote is the full price breakdown for a cart.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// QuoteFor derives shipping, tax and the grand total from a subtotal.
func QuoteFor(subtotal float64) Quote {
	shipping := FlatShippingRate
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * TaxRate
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// FreeShippingRemainder returns how much more the cart needs to qualify for
// free shipping, or 0 when it already qualifies.
func FreeShippingRemainder(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FreeShippingThreshold - subtotal
}

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
