package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/choppersalon/platform/internal/auth"
	"github.com/choppersalon/platform/pkg/logging"
)

// Handler handles HTTP requests for the checkout flow
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

// NewHandler creates a new checkout handler
func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger.Component("checkout_http")}
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

// GetState handles GET /api/checkout requests
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.State(sessionID))
}

// Open handles POST /api/checkout/open requests
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.Open(r.Context(), sessionID); err != nil {
		h.logger.Error("failed to open checkout", "error", err)
		http.Error(w, "checkout unavailable", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.State(sessionID))
}

// Cancel handles POST /api/checkout/cancel requests
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.Cancel(r.Context(), sessionID); err != nil {
		h.logger.Error("failed to cancel checkout", "error", err)
		http.Error(w, "checkout unavailable", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.State(sessionID))
}

// SetField handles PUT /api/checkout/fields requests
func (h *Handler) SetField(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Field string `json:"field"`
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
	wizard, err := h.svc.SetField(sessionID, req.Field, req.Value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, http.StatusOK, wizard)
}

// Next handles POST /api/checkout/next requests
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	wizard, problems := h.svc.Next(sessionID)
	if problems != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors": problems,
			"step":   wizard.Step,
		})
		return
	}
	h.writeJSON(w, http.StatusOK, wizard)
}

// Back handles POST /api/checkout/back requests
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.Back(sessionID))
}

// Submit handles POST /api/checkout/submit requests
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	order, problems, err := h.svc.Submit(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			http.Error(w, "cart is empty", http.StatusConflict)
			return
		}
		h.logger.Error("failed to place order", "error", err)
		http.Error(w, "checkout unavailable", http.StatusInternalServerError)
		return
	}
	if problems != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": problems})
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"order":   order,
		"message": "Order placed successfully",
	})
}
