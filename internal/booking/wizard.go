package booking

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Step is a booking wizard stage. The flow collects one field per step:
// service, stylist, date, then time slot.
type Step int

const (
	StepService Step = iota + 1
	StepStylist
	StepDate
	StepTime
)

func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepStylist:
		return "stylist"
	case StepDate:
		return "date"
	case StepTime:
		return "time"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Step validation and selection errors.
var (
	ErrSelectionRequired = errors.New("booking: a selection is required before advancing")
	ErrUnknownService    = errors.New("booking: unknown service")
	ErrUnknownStylist    = errors.New("booking: unknown stylist")
	ErrUnknownDate       = errors.New("booking: date is not offered")
	ErrUnknownSlot       = errors.New("booking: unknown time slot")
	ErrSlotUnavailable   = errors.New("booking: time slot is unavailable")
)

// Selection is the tuple collected by the wizard. Each field stays empty
// until its step is completed.
type Selection struct {
	Service  string `json:"service"`
	Stylist  int    `json:"stylist"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
}

// Wizard is the ephemeral booking flow state for one session. Nothing is
// persisted; abandoning the flow loses the selection.
type Wizard struct {
	Step      Step      `json:"step"`
	Selection Selection `json:"selection"`
}

// NewWizard starts a wizard at the service step.
func NewWizard() *Wizard {
	return &Wizard{Step: StepService}
}

// Reset returns the wizard to step 1 with an empty selection.
func (w *Wizard) Reset() {
	*w = Wizard{Step: StepService}
}

// stepComplete reports whether the active step's field has been chosen.
func (w *Wizard) stepComplete() bool {
	switch w.Step {
	case StepService:
		return w.Selection.Service != ""
	case StepStylist:
		return w.Selection.Stylist != 0
	case StepDate:
		return w.Selection.Date != ""
	case StepTime:
		return w.Selection.TimeSlot != ""
	default:
		return false
	}
}

// Next advances to the following step. It returns ErrSelectionRequired while
// the active step's field is empty. At the time step a successful Next is
// terminal: done is true and the step does not advance to a fifth stage.
func (w *Wizard) Next() (done bool, err error) {
	if !w.stepComplete() {
		return false, ErrSelectionRequired
	}
	if w.Step == StepTime {
		return true, nil
	}
	w.Step++
	return false, nil
}

// Prev returns to the previous step, never dropping below step 1.
func (w *Wizard) Prev() {
	if w.Step > StepService {
		w.Step--
	}
}

// SelectService records the service choice.
func (w *Wizard) SelectService(id string) error {
	if _, ok := findService(id); !ok {
		return ErrUnknownService
	}
	w.Selection.Service = id
	return nil
}

// SelectStylist records the stylist choice.
func (w *Wizard) SelectStylist(id int) error {
	if _, ok := findStylist(id); !ok {
		return ErrUnknownStylist
	}
	w.Selection.Stylist = id
	return nil
}

// SelectDate records the date choice; the value must be one of the offered
// dates relative to now.
func (w *Wizard) SelectDate(value string, now time.Time) error {
	if _, ok := findDate(value, now); !ok {
		return ErrUnknownDate
	}
	w.Selection.Date = value
	return nil
}

// SelectTimeSlot records the slot choice; unavailable slots are rejected.
func (w *Wizard) SelectTimeSlot(id string) error {
	slot, ok := findTimeSlot(id)
	if !ok {
		return ErrUnknownSlot
	}
	if !slot.Available {
		return ErrSlotUnavailable
	}
	w.Selection.TimeSlot = id
	return nil
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
