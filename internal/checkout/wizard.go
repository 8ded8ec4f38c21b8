package checkout

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Step is a checkout wizard stage. The flow is linear: contact → shipping →
// payment → terminal.
type Step int

const (
	StepContact Step = iota + 1
	StepShipping
	StepPayment
)

func (s Step) String() string {
	switch s {
	case StepContact:
		return "contact"
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Form is the flat checkout form record, mutated field by field.
type Form struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	ZipCode    string `json:"zipCode"`
	Country    string `json:"country"`
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCVC    string `json:"cardCVC"`
}

var checkoutEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Wizard is the ephemeral checkout flow state for one session. It is held
// only in memory and discarded on completion or cancellation.
type Wizard struct {
	Step        Step `json:"step"`
	Form        Form `json:"form"`
	OrderPlaced bool `json:"orderPlaced"`
}

// NewWizard starts a wizard at the contact step.
func NewWizard() *Wizard {
	return &Wizard{Step: StepContact}
}

// Reset returns the wizard to step 1 with empty fields.
func (w *Wizard) Reset() {
	*w = Wizard{Step: StepContact}
}

// SetField updates one form field. Card number and expiry are reformatted as
// typed; nothing is validated against a real payment processor.
func (w *Wizard) SetField(field, value string) error {
	switch field {
	case "firstName":
		w.Form.FirstName = value
	case "lastName":
		w.Form.LastName = value
	case "email":
		w.Form.Email = value
	case "address":
		w.Form.Address = value
	case "city":
		w.Form.City = value
	case "zipCode":
		w.Form.ZipCode = value
	case "country":
		w.Form.Country = value
	case "cardNumber":
		w.Form.CardNumber = FormatCardNumber(value)
	case "cardExpiry":
		w.Form.CardExpiry = FormatExpiry(value)
	case "cardCVC":
		w.Form.CardCVC = digitsOnly(value, 4)
	default:
		return fmt.Errorf("checkout: unknown form field %q", field)
	}
	return nil
}

// validateStep reports the missing or malformed required fields for the
// current step, keyed by field name for inline display.
func (w *Wizard) validateStep() map[string]string {
	problems := map[string]string{}
	switch w.Step {
	case StepContact:
		if strings.TrimSpace(w.Form.FirstName) == "" {
			problems["firstName"] = "first name is required"
		}
		if strings.TrimSpace(w.Form.LastName) == "" {
			problems["lastName"] = "last name is required"
		}
		if !checkoutEmailPattern.MatchString(w.Form.Email) {
			problems["email"] = "a valid email is required"
		}
	case StepShipping:
		if strings.TrimSpace(w.Form.Address) == "" {
			problems["address"] = "address is required"
		}
		if strings.TrimSpace(w.Form.City) == "" {
			problems["city"] = "city is required"
		}
		if strings.TrimSpace(w.Form.ZipCode) == "" {
			problems["zipCode"] = "zip code is required"
		}
		if strings.TrimSpace(w.Form.Country) == "" {
			problems["country"] = "country is required"
		}
	case StepPayment:
		if len(digitsOnly(w.Form.CardNumber, 16)) < 12 {
			problems["cardNumber"] = "card number is required"
		}
		if len(digitsOnly(w.Form.CardExpiry, 4)) < 4 {
			problems["cardExpiry"] = "expiry is required"
		}
		if len(w.Form.CardCVC) < 3 {
			problems["cardCVC"] = "CVC is required"
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// Next advances to the following step. It refuses to advance while the
// current step's required fields are incomplete, and never advances past the
// payment step; submitting handles that.
func (w *Wizard) Next() map[string]string {
	if problems := w.validateStep(); problems != nil {
		return problems
	}
	if w.Step < StepPayment {
		w.Step++
	}
	return nil
}

// Back returns to the previous step, never dropping below step 1.
func (w *Wizard) Back() {
	if w.Step > StepContact {
		w.Step--
	}
}

// WizardStore keeps per-session wizards in memory. Entries untouched for
// longer than maxAge are dropped by the janitor.
type WizardStore struct {
	mu      sync.Mutex
	entries map[string]*wizardEntry
	maxAge  time.Duration
	done    chan struct{}
}

type wizardEntry struct {
	wizard  *Wizard
	touched time.Time
}

// NewWizardStore creates a store; maxAge <= 0 disables expiry.
func NewWizardStore(maxAge time.Duration) *WizardStore {
	s := &WizardStore{
		entries: make(map[string]*wizardEntry),
		maxAge:  maxAge,
		done:    make(chan struct{}),
	}
	if maxAge > 0 {
		go s.janitor()
	}
	return s
}

func (s *WizardStore) janitor() {
	ticker := time.NewTicker(s.maxAge)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-s.maxAge)
			s.mu.Lock()
			for id, e := range s.entries {
				if e.touched.Before(cutoff) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the janitor.
func (s *WizardStore) Close() {
	close(s.done)
}

// Get returns the session's wizard, creating one at step 1 when absent.
func (s *WizardStore) Get(sessionID string) *Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		e = &wizardEntry{wizard: NewWizard()}
		s.entries[sessionID] = e
	}
	e.touched = time.Now()
	return e.wizard
}

// Drop discards the session's wizard.
func (s *WizardStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}
