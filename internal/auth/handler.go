package auth

import (
	"encoding/json"
	"net/http"

	"github.com/choppersalon/platform/pkg/logging"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	svc     *Service
	manager *Manager
	logger  *logging.Logger
}

// NewHandler creates a new auth handler
func NewHandler(svc *Service, manager *Manager, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, manager: manager, logger: logger.Component("auth_http")}
}

type sessionResponse struct {
	Result
	Session *Session `json:"session,omitempty"`
}

// fieldErrorsResponse surfaces validation problems inline, keyed by field.
type fieldErrorsResponse struct {
	Errors map[string]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// sessionID returns the visitor's session id, minting one when the request
// arrived without a valid cookie.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if id, ok := SessionIDFromContext(r.Context()); ok {
		return id, true
	}
	id, err := h.manager.IssueSessionID(w)
	if err != nil {
		h.logger.Error("failed to issue session", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return "", false
	}
	return id, true
}

// Register handles POST /api/auth/register requests
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrorsResponse{Errors: problems})
		return
	}

	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	result, sess, err := h.svc.Register(r.Context(), sessionID, req)
	if err != nil {
		h.logger.Error("register failed", "error", err)
		http.Error(w, "registration unavailable", http.StatusInternalServerError)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusConflict, sessionResponse{Result: result})
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Result: result, Session: sess})
}

// Login handles POST /api/auth/login requests
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if problems := req.Validate(); len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrorsResponse{Errors: problems})
		return
	}

	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	result, sess, err := h.svc.Login(r.Context(), sessionID, req)
	if err != nil {
		h.logger.Error("login failed", "error", err)
		http.Error(w, "login unavailable", http.StatusInternalServerError)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusUnauthorized, sessionResponse{Result: result})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Result: result, Session: sess})
}

// Logout handles POST /api/auth/logout requests
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, Result{Success: true})
		return
	}
	if err := h.svc.Logout(r.Context(), sessionID); err != nil {
		h.logger.Error("logout failed", "error", err)
		http.Error(w, "logout unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, Result{Success: true})
}

// GetSession handles GET /api/auth/session requests
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, &Session{})
		return
	}
	sess, err := h.svc.Session(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to load session", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
