package cart

import (
	"math"

	"github.com/choppersalon/platform/internal/catalog"
)

// Line is one cart entry: a product and the quantity selected. The cart
// holds at most one line per product id.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// State is the persisted cart: lines plus the panel visibility flags the
// storefront keeps alongside them. Checkout wizard state is ephemeral and
// lives elsewhere.
type State struct {
	Lines          []Line `json:"cart"`
	IsCartOpen     bool   `json:"isCartOpen"`
	IsCheckoutOpen bool   `json:"isCheckoutOpen"`
}

// Count is the total quantity across lines.
func (s *State) Count() int {
	total := 0
	for _, line := range s.Lines {
		total += line.Quantity
	}
	return total
}

// Subtotal sums effective price × quantity across lines.
func (s *State) Subtotal() float64 {
	total := 0.0
	for _, line := range s.Lines {
		total += line.Product.EffectivePrice() * float64(line.Quantity)
	}
	return total
}

// Pricing holds the fixed checkout pricing rules.
type Pricing struct {
	ShippingFee float64
	TaxRate     float64
}

// Tax is the tax due on a subtotal.
func (p Pricing) Tax(subtotal float64) float64 {
	return subtotal * p.TaxRate
}

// OrderTotal is subtotal plus flat shipping plus tax.
func (p Pricing) OrderTotal(subtotal float64) float64 {
	return subtotal + p.ShippingFee + p.Tax(subtotal)
}

// Totals are the derived cart values; they are computed, never stored.
type Totals struct {
	Count      int     `json:"count"`
	CartTotal  float64 `json:"cartTotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	OrderTotal float64 `json:"orderTotal"`
}

// TotalsFor computes the derived values for a cart state.
func (p Pricing) TotalsFor(s *State) Totals {
	subtotal := s.Subtotal()
	return Totals{
		Count:      s.Count(),
		CartTotal:  subtotal,
		Shipping:   p.ShippingFee,
		Tax:        p.Tax(subtotal),
		OrderTotal: p.OrderTotal(subtotal),
	}
}

// Round2 rounds a dollar amount to cents for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
