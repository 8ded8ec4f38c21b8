package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/choppersalon/platform/pkg/logging"
)

// Handler handles HTTP requests for the product catalog
type Handler struct {
	catalog *Catalog
	logger  *logging.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(catalog *Catalog, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{catalog: catalog, logger: logger.Component("catalog_http")}
}

// ListProductsResponse is the response for listing products
type ListProductsResponse struct {
	Products    []Product    `json:"products"`
	Count       int          `json:"count"`
	Categories  []Category   `json:"categories"`
	SortOptions []SortOption `json:"sortOptions"`
}

// ListProducts handles GET /api/shop/products requests
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := Query{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
		Sort:     r.URL.Query().Get("sort"),
	}
	products := h.catalog.Search(q)

	response := ListProductsResponse{
		Products:    products,
		Count:       len(products),
		Categories:  Categories(),
		SortOptions: SortOptions(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetProduct handles GET /api/shop/products/{productID} requests
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	product, ok := h.catalog.Get(id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}
