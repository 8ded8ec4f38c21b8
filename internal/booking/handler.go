package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/choppersalon/platform/internal/auth"
	"github.com/choppersalon/platform/pkg/logging"
)

// Handler handles HTTP requests for the booking wizard
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new booking handler
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger.Component("booking_http")}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.SessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusInternalServerError)
		return "", false
	}
	return id, true
}

func (h *Handler) writeSelectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSelectionRequired):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrSlotUnavailable):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrUnknownService),
		errors.Is(err, ErrUnknownStylist),
		errors.Is(err, ErrUnknownDate),
		errors.Is(err, ErrUnknownSlot):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		h.logger.Error("booking request failed", "error", err)
		http.Error(w, "booking unavailable", http.StatusInternalServerError)
	}
}

// GetOptions handles GET /api/booking/options requests
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"services":  ServiceOptions(),
		"stylists":  Stylists(),
		"dates":     h.svc.Dates(),
		"timeSlots": TimeSlots(),
	})
}

// GetState handles GET /api/booking requests
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.State(sessionID))
}

// SelectService handles POST /api/booking/service requests
func (h *Handler) SelectService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	wizard, err := h.svc.SelectService(sessionID, req.ID)
	if err != nil {
		h.writeSelectionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, wizard)
}

// SelectStylist handles POST /api/booking/stylist requests
func (h *Handler) SelectStylist(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	wizard, err := h.svc.SelectStylist(sessionID, req.ID)
	if err != nil {
		h.writeSelectionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, wizard)
}

// SelectDate handles POST /api/booking/date requests
func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	wizard, err := h.svc.SelectDate(sessionID, req.Value)
	if err != nil {
		h.writeSelectionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, wizard)
}

// SelectTimeSlot handles POST /api/booking/time requests
func (h *Handler) SelectTimeSlot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	wizard, err := h.svc.SelectTimeSlot(sessionID, req.ID)
	if err != nil {
		h.writeSelectionError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, wizard)
}

// Next handles POST /api/booking/next requests
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	wizard, confirmation, err := h.svc.Next(r.Context(), sessionID)
	if err != nil {
		h.writeSelectionError(w, err)
		return
	}
	if confirmation != nil {
		h.writeJSON(w, http.StatusCreated, map[string]any{
			"confirmation": confirmation,
			"wizard":       wizard,
		})
		return
	}
	h.writeJSON(w, http.StatusOK, wizard)
}

// Prev handles POST /api/booking/prev requests
func (h *Handler) Prev(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.Prev(sessionID))
}

// Cancel handles POST /api/booking/cancel requests
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	h.svc.Cancel(sessionID)
	h.writeJSON(w, http.StatusOK, h.svc.State(sessionID))
}
