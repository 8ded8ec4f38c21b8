package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/choppersalon/platform/internal/auth"
	"github.com/choppersalon/platform/internal/catalog"
	"github.com/choppersalon/platform/pkg/logging"
)

// Handler handles HTTP requests for the cart
type Handler struct {
	svc     *Service
	catalog *catalog.Catalog
	logger  *logging.Logger
}

// NewHandler creates a new cart handler
func NewHandler(svc *Service, cat *catalog.Catalog, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, catalog: cat, logger: logger.Component("cart_http")}
}

// CartResponse is the cart state plus its derived totals.
type CartResponse struct {
	*State
	Totals Totals `json:"totals"`
}

func (h *Handler) respond(w http.ResponseWriter, state *State) {
	response := CartResponse{State: state, Totals: h.svc.Pricing().TotalsFor(state)}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.SessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing session", http.StatusInternalServerError)
		return "", false
	}
	return id, true
}

// GetCart handles GET /api/cart requests
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.svc.Get(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to load cart", "error", err)
		http.Error(w, "cart unavailable", http.StatusInternalServerError)
		return
	}
	h.respond(w, state)
}

// AddItem handles POST /api/cart/items requests
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	product, found := h.catalog.Get(req.ProductID)
	if !found {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.svc.AddToCart(r.Context(), sessionID, product)
	if err != nil {
		h.logger.Error("failed to add to cart", "error", err, "product_id", req.ProductID)
		http.Error(w, "cart unavailable", http.StatusInternalServerError)
		return
	}
	h.respond(w, state)
}

// UpdateItem handles PUT /api/cart/items/{productID} requests
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.svc.UpdateQuantity(r.Context(), sessionID, productID, req.Quantity)
	if err != nil {
		h.logger.Error("failed to update quantity", "error", err, "product_id", productID)
		http.Error(w, "cart unavailable", http.StatusInternalServerError)
		return
	}
	h.respond(w, state)
}

// RemoveItem handles DELETE /api/cart/items/{productID} requests
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.svc.RemoveFromCart(r.Context(), sessionID, productID)
	if err != nil {
		h.logger.Error("failed to remove from cart", "error", err, "product_id", productID)
		http.Error(w, "cart unavailable", http.StatusInternalServerError)
		return
	}
	h.respond(w, state)
}

// ClearCart handles DELETE /api/cart requests
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.svc.ClearCart(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to clear cart", "error", err)
		http.Error(w, "cart unavailable", http.StatusInternalServerError)
		return
	}
	h.respond(w, state)
}

// ToggleCart handles POST /api/cart/toggle requests
func (h *Handler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.svc.ToggleCart(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to toggle cart", "error", err)
		http.Error(w, "cart unavailable", http.StatusInternalServerError)
		return
	}
	h.respond(w, state)
}
