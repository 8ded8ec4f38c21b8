package cart

import (
	"context"

	"github.com/choppersalon/platform/internal/catalog"
	"github.com/choppersalon/platform/internal/observability/metrics"
	"github.com/choppersalon/platform/pkg/logging"
)

// Service mutates per-session cart state. Every mutation is written through
// to the store before returning.
type Service struct {
	store   *Store
	pricing Pricing
	metrics *metrics.SalonMetrics
	logger  *logging.Logger
}

// NewService constructs a cart service.
func NewService(store *Store, pricing Pricing, m *metrics.SalonMetrics, logger *logging.Logger) *Service {
	if store == nil {
		panic("cart: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, pricing: pricing, metrics: m, logger: logger.Component("cart")}
}

// Pricing exposes the pricing rules for the checkout summary.
func (s *Service) Pricing() Pricing {
	return s.pricing
}

// Get returns the current cart state.
func (s *Service) Get(ctx context.Context, sessionID string) (*State, error) {
	return s.store.Get(ctx, sessionID)
}

// Totals returns the derived cart values.
func (s *Service) Totals(ctx context.Context, sessionID string) (Totals, error) {
	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Totals{}, err
	}
	return s.pricing.TotalsFor(state), nil
}

func (s *Service) mutate(ctx context.Context, sessionID string, op string, fn func(*State)) (*State, error) {
	state, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fn(state)
	if err := s.store.Put(ctx, sessionID, state); err != nil {
		return nil, err
	}
	s.metrics.ObserveCartMutation(op)
	return state, nil
}

// AddToCart increments the line for the product, inserting it at quantity 1
// when absent, and opens the cart panel.
func (s *Service) AddToCart(ctx context.Context, sessionID string, product catalog.Product) (*State, error) {
	state, err := s.mutate(ctx, sessionID, "add", func(state *State) {
		for i := range state.Lines {
			if state.Lines[i].Product.ID == product.ID {
				state.Lines[i].Quantity++
				state.IsCartOpen = true
				return
			}
		}
		state.Lines = append(state.Lines, Line{Product: product, Quantity: 1})
		state.IsCartOpen = true
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("product added to cart", "product_id", product.ID, "count", state.Count())
	return state, nil
}

// UpdateQuantity sets the line quantity; a quantity below 1 removes the
// line.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int) (*State, error) {
	return s.mutate(ctx, sessionID, "update_quantity", func(state *State) {
		if quantity < 1 {
			removeLine(state, productID)
			return
		}
		for i := range state.Lines {
			if state.Lines[i].Product.ID == productID {
				state.Lines[i].Quantity = quantity
				return
			}
		}
	})
}

// RemoveFromCart removes the line unconditionally; absent lines are a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, productID int) (*State, error) {
	return s.mutate(ctx, sessionID, "remove", func(state *State) {
		removeLine(state, productID)
	})
}

// ClearCart empties all lines.
func (s *Service) ClearCart(ctx context.Context, sessionID string) (*State, error) {
	return s.mutate(ctx, sessionID, "clear", func(state *State) {
		state.Lines = nil
	})
}

// ToggleCart flips the cart panel; opening it closes the checkout panel.
func (s *Service) ToggleCart(ctx context.Context, sessionID string) (*State, error) {
	return s.mutate(ctx, sessionID, "toggle_cart", func(state *State) {
		state.IsCartOpen = !state.IsCartOpen
		state.IsCheckoutOpen = false
	})
}

// CloseCart hides the cart panel.
func (s *Service) CloseCart(ctx context.Context, sessionID string) (*State, error) {
	return s.mutate(ctx, sessionID, "close_cart", func(state *State) {
		state.IsCartOpen = false
	})
}

// SetCheckoutOpen shows or hides the checkout panel; opening it closes the
// cart panel.
func (s *Service) SetCheckoutOpen(ctx context.Context, sessionID string, open bool) (*State, error) {
	op := "close_checkout"
	if open {
		op = "open_checkout"
	}
	return s.mutate(ctx, sessionID, op, func(state *State) {
		state.IsCheckoutOpen = open
		if open {
			state.IsCartOpen = false
		}
	})
}

func removeLine(state *State, productID int) {
	kept := state.Lines[:0]
	for _, line := range state.Lines {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}
	state.Lines = kept
}
