package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/choppersalon/platform/internal/cart"
	"github.com/choppersalon/platform/internal/notify"
	"github.com/choppersalon/platform/internal/observability/metrics"
	"github.com/choppersalon/platform/pkg/logging"
)

var checkoutTracer = otel.Tracer("salon.internal.checkout")

// ErrEmptyCart is returned when an order is submitted with nothing in the
// cart.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// Service drives the checkout wizard and turns a completed flow into an
// order. Wizard state lives in memory per session; the cart itself is read
// from and written through the cart service.
type Service struct {
	mu         sync.Mutex
	carts      *cart.Service
	wizards    *WizardStore
	sender     notify.EmailSender
	metrics    *metrics.SalonMetrics
	logger     *logging.Logger
	resetDelay time.Duration
}

// NewService constructs a checkout service. resetDelay is how long the
// confirmation stays visible before the cart and wizard are cleared.
func NewService(carts *cart.Service, wizards *WizardStore, sender notify.EmailSender, m *metrics.SalonMetrics, logger *logging.Logger, resetDelay time.Duration) *Service {
	if carts == nil {
		panic("checkout: cart service required")
	}
	if wizards == nil {
		wizards = NewWizardStore(0)
	}
	if sender == nil {
		sender = notify.NewStubEmailSender(logger)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		carts:      carts,
		wizards:    wizards,
		sender:     sender,
		metrics:    m,
		logger:     logger.Component("checkout"),
		resetDelay: resetDelay,
	}
}

// State returns the session's wizard, creating a fresh one when absent.
func (s *Service) State(sessionID string) Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.wizards.Get(sessionID)
}

// Open shows the checkout panel and starts the wizard at step 1.
func (s *Service) Open(ctx context.Context, sessionID string) (*cart.State, error) {
	s.mu.Lock()
	s.wizards.Get(sessionID).Reset()
	s.mu.Unlock()
	return s.carts.SetCheckoutOpen(ctx, sessionID, true)
}

// Cancel hides the checkout panel and discards any partial form.
func (s *Service) Cancel(ctx context.Context, sessionID string) (*cart.State, error) {
	s.mu.Lock()
	s.wizards.Drop(sessionID)
	s.mu.Unlock()
	return s.carts.SetCheckoutOpen(ctx, sessionID, false)
}

// SetField records one form field, reformatting card inputs as typed.
func (s *Service) SetField(sessionID, field, value string) (Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.wizards.Get(sessionID)
	if err := w.SetField(field, value); err != nil {
		return *w, err
	}
	return *w, nil
}

// Next advances the wizard when the current step is complete. The returned
// map carries per-field problems when it is not.
func (s *Service) Next(sessionID string) (Wizard, map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.wizards.Get(sessionID)
	problems := w.Next()
	return *w, problems
}

// Back moves the wizard to the previous step.
func (s *Service) Back(sessionID string) Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.wizards.Get(sessionID)
	w.Back()
	return *w
}

// Submit validates the payment step and places the order. The cart and
// wizard are cleared after resetDelay so the confirmation stays visible.
func (s *Service) Submit(ctx context.Context, sessionID string) (*Order, map[string]string, error) {
	ctx, span := checkoutTracer.Start(ctx, "checkout.submit")
	defer span.End()

	s.mu.Lock()
	w := s.wizards.Get(sessionID)
	if w.Step != StepPayment {
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("checkout: cannot submit from %s step", w.Step)
	}
	if problems := w.validateStep(); problems != nil {
		s.mu.Unlock()
		return nil, problems, nil
	}
	form := w.Form
	s.mu.Unlock()

	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if len(state.Lines) == 0 {
		return nil, nil, ErrEmptyCart
	}

	totals := s.carts.Pricing().TotalsFor(state)
	order := &Order{
		ID:           uuid.NewString(),
		Date:         time.Now().UTC(),
		Items:        state.Lines,
		Subtotal:     totals.CartTotal,
		Shipping:     totals.Shipping,
		Tax:          totals.Tax,
		Total:        totals.OrderTotal,
		DisplayTotal: cart.Round2(totals.OrderTotal),
		Customer:     form,
		Status:       StatusPending,
	}
	span.SetAttributes(
		attribute.String("salon.order_id", order.ID),
		attribute.Float64("salon.order_total", order.Total),
		attribute.Int("salon.order_items", len(order.Items)),
	)

	s.mu.Lock()
	w.OrderPlaced = true
	s.mu.Unlock()

	s.metrics.ObserveOrderPlaced(order.Total)
	s.logger.Info("order placed",
		"order_id", order.ID,
		"email", form.Email,
		"items", len(order.Items),
		"total", order.DisplayTotal,
	)
	s.sendConfirmation(ctx, order)

	time.AfterFunc(s.resetDelay, func() { s.finish(sessionID) })
	return order, nil, nil
}

func (s *Service) sendConfirmation(ctx context.Context, order *Order) {
	msg := notify.EmailMessage{
		To:      order.Customer.Email,
		ToName:  order.Customer.FirstName + " " + order.Customer.LastName,
		Subject: "Your Choppers Salon order",
		Body: fmt.Sprintf("Thanks for your order!\n\nOrder %s\nTotal: $%.2f\n\nWe'll let you know when it ships.",
			order.ID, order.DisplayTotal),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Error("order confirmation email failed", "error", err, "order_id", order.ID)
	}
}

// finish runs after the confirmation delay: empty the cart, hide the
// checkout panel and reset the wizard for the next purchase.
func (s *Service) finish(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.carts.ClearCart(ctx, sessionID); err != nil {
		s.logger.Error("post-order cart clear failed", "error", err)
	}
	if _, err := s.carts.SetCheckoutOpen(ctx, sessionID, false); err != nil {
		s.logger.Error("post-order checkout close failed", "error", err)
	}
	s.mu.Lock()
	s.wizards.Drop(sessionID)
	s.mu.Unlock()
}
