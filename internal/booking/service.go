package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/choppersalon/platform/internal/auth"
	"github.com/choppersalon/platform/internal/notify"
	"github.com/choppersalon/platform/internal/observability/metrics"
	"github.com/choppersalon/platform/pkg/logging"
)

var bookingTracer = otel.Tracer("salon.internal.booking")

// Confirmation is the terminal result of the wizard: the resolved selection
// plus the message shown to the visitor.
type Confirmation struct {
	Service  ServiceOption `json:"service"`
	Stylist  Stylist       `json:"stylist"`
	Date     DateOption    `json:"date"`
	TimeSlot TimeSlot      `json:"timeSlot"`
	Message  string        `json:"message"`
}

// Service drives the booking wizard. The flow never reaches a scheduling
// backend; confirming simply resolves the selection, notifies the visitor
// and resets the wizard.
type Service struct {
	mu       sync.Mutex
	wizards  *WizardStore
	sessions *auth.SessionStore
	sender   notify.EmailSender
	metrics  *metrics.SalonMetrics
	logger   *logging.Logger
	now      func() time.Time
}

// NewService constructs a booking service.
func NewService(wizards *WizardStore, sessions *auth.SessionStore, sender notify.EmailSender, m *metrics.SalonMetrics, logger *logging.Logger) *Service {
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
		wizards:  wizards,
		sessions: sessions,
		sender:   sender,
		metrics:  m,
		logger:   logger.Component("booking"),
		now:      time.Now,
	}
}

// State returns the session's wizard, creating a fresh one when absent.
func (s *Service) State(sessionID string) Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.wizards.Get(sessionID)
}

// Dates returns the currently offered appointment dates.
func (s *Service) Dates() []DateOption {
	return DateOptions(s.now())
}

// SelectService records the service choice for the session.
func (s *Service) SelectService(sessionID, id string) (Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.wizards.Get(sessionID)
	err := w.SelectService(id)
	return *w, err
}

// SelectStylist records the stylist choice for the session.
func (s *Service) SelectStylist(sessionID string, id int) (Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.wizards.Get(sessionID)
	err := w.SelectStylist(id)
	return *w, err
}

// SelectDate records the date choice for the session.
func (s *Service) SelectDate(sessionID, value string) (Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.wizards.Get(sessionID)
	err := w.SelectDate(value, s.now())
	return *w, err
}

// SelectTimeSlot records the slot choice for the session.
func (s *Service) SelectTimeSlot(sessionID, id string) (Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.wizards.Get(sessionID)
	err := w.SelectTimeSlot(id)
	return *w, err
}

// Prev moves the wizard to the previous step.
func (s *Service) Prev(sessionID string) Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.wizards.Get(sessionID)
	w.Prev()
	return *w
}

// Cancel discards the session's wizard.
func (s *Service) Cancel(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizards.Drop(sessionID)
}

// Next advances the wizard. On the final step a complete selection confirms
// the booking: the confirmation is returned and the wizard resets so the
// visitor lands back at step 1.
func (s *Service) Next(ctx context.Context, sessionID string) (Wizard, *Confirmation, error) {
	s.mu.Lock()
	w := s.wizards.Get(sessionID)
	done, err := w.Next()
	if err != nil || !done {
		state := *w
		s.mu.Unlock()
		return state, nil, err
	}
	selection := w.Selection
	w.Reset()
	state := *w
	s.mu.Unlock()

	confirmation, err := s.confirm(ctx, sessionID, selection)
	if err != nil {
		return state, nil, err
	}
	return state, confirmation, nil
}

func (s *Service) confirm(ctx context.Context, sessionID string, sel Selection) (*Confirmation, error) {
	ctx, span := bookingTracer.Start(ctx, "booking.confirm")
	defer span.End()
	span.SetAttributes(
		attribute.String("salon.booking_service", sel.Service),
		attribute.Int("salon.booking_stylist", sel.Stylist),
		attribute.String("salon.booking_date", sel.Date),
		attribute.String("salon.booking_slot", sel.TimeSlot),
	)

	service, ok := findService(sel.Service)
	if !ok {
		return nil, ErrUnknownService
	}
	stylist, ok := findStylist(sel.Stylist)
	if !ok {
		return nil, ErrUnknownStylist
	}
	date, ok := findDate(sel.Date, s.now())
	if !ok {
		return nil, ErrUnknownDate
	}
	slot, ok := findTimeSlot(sel.TimeSlot)
	if !ok {
		return nil, ErrUnknownSlot
	}

	confirmation := &Confirmation{
		Service:  service,
		Stylist:  stylist,
		Date:     date,
		TimeSlot: slot,
		Message: fmt.Sprintf("Your %s with %s on %s at %s is booked!",
			service.Name, stylist.Name, date.Label, slot.Time),
	}

	s.metrics.ObserveBookingConfirmed()
	s.logger.Info("booking confirmed",
		"service", service.ID,
		"stylist", stylist.Name,
		"date", date.Value,
		"slot", slot.ID,
	)
	s.sendConfirmation(ctx, sessionID, confirmation)
	return confirmation, nil
}

// sendConfirmation emails the logged-in visitor when their session carries a
// profile; the flow succeeds either way.
func (s *Service) sendConfirmation(ctx context.Context, sessionID string, c *Confirmation) {
	if s.sessions == nil {
		return
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		s.logger.Error("booking confirmation session lookup failed", "error", err)
		return
	}
	if sess.User == nil || sess.User.Email == "" {
		return
	}
	msg := notify.EmailMessage{
		To:      sess.User.Email,
		ToName:  sess.User.Name,
		Subject: "Your Choppers Salon appointment",
		Body: fmt.Sprintf("Hi %s,\n\n%s\n\nSee you soon!",
			sess.User.Name, c.Message),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Error("booking confirmation email failed", "error", err)
	}
}
