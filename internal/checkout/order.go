package checkout

import (
	"time"

	"github.com/choppersalon/platform/internal/cart"
)

// Order statuses. Orders are recorded as pending; there is no downstream
// fulfillment pipeline.
const (
	StatusPending = "pending"
)

// Order is the record produced by a completed checkout. Monetary fields keep
// full precision; DisplayTotal carries the cent-rounded figure shown to the
// customer.
type Order struct {
	ID           string      `json:"id"`
	Date         time.Time   `json:"date"`
	Items        []cart.Line `json:"items"`
	Subtotal     float64     `json:"subtotal"`
	Shipping     float64     `json:"shipping"`
	Tax          float64     `json:"tax"`
	Total        float64     `json:"total"`
	DisplayTotal float64     `json:"displayTotal"`
	Customer     Form        `json:"customer"`
	Status       string      `json:"status"`
}
