package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/choppersalon/platform/internal/auth"
	"github.com/choppersalon/platform/internal/booking"
	"github.com/choppersalon/platform/internal/cart"
	"github.com/choppersalon/platform/internal/catalog"
	"github.com/choppersalon/platform/internal/checkout"
	httpmiddleware "github.com/choppersalon/platform/internal/http/middleware"
	"github.com/choppersalon/platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	Sessions        *auth.Manager
	AuthHandler     *auth.Handler
	CatalogHandler  *catalog.Handler
	CartHandler     *cart.Handler
	CheckoutHandler *checkout.Handler
	BookingHandler  *booking.Handler

	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (health checks, metrics)
	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Everything below runs with a session id on the context.
	r.Group(func(site chi.Router) {
		site.Use(httpmiddleware.EnsureSession(cfg.Sessions))

		// Marketing and storefront pages
		site.Get("/", pageHandler(homePage))
		site.Get("/about", pageHandler(aboutPage))
		site.Get("/services", pageHandler(servicesPage))
		site.Get("/contact", pageHandler(contactPage))
		site.Get("/shop", pageHandler(shopPage))
		site.Get("/login", pageHandler(loginPage))
		site.Get("/register", pageHandler(registerPage))

		// Booking is members-only; guests are sent to the login page.
		site.With(httpmiddleware.RequireSession(cfg.Sessions)).
			Get("/booking", pageHandler(bookingPage))

		site.Route("/api", func(api chi.Router) {
			api.Route("/auth", func(r chi.Router) {
				r.Post("/register", cfg.AuthHandler.Register)
				r.Post("/login", cfg.AuthHandler.Login)
				r.Post("/logout", cfg.AuthHandler.Logout)
				r.Get("/session", cfg.AuthHandler.GetSession)
			})

			api.Route("/shop", func(r chi.Router) {
				r.Get("/products", cfg.CatalogHandler.ListProducts)
				r.Get("/products/{productID}", cfg.CatalogHandler.GetProduct)
			})

			api.Route("/cart", func(r chi.Router) {
				r.Get("/", cfg.CartHandler.GetCart)
				r.Delete("/", cfg.CartHandler.ClearCart)
				r.Post("/items", cfg.CartHandler.AddItem)
				r.Put("/items/{productID}", cfg.CartHandler.UpdateItem)
				r.Delete("/items/{productID}", cfg.CartHandler.RemoveItem)
				r.Post("/toggle", cfg.CartHandler.ToggleCart)
			})

			api.Route("/checkout", func(r chi.Router) {
				r.Get("/", cfg.CheckoutHandler.GetState)
				r.Post("/open", cfg.CheckoutHandler.Open)
				r.Post("/cancel", cfg.CheckoutHandler.Cancel)
				r.Put("/fields", cfg.CheckoutHandler.SetField)
				r.Post("/next", cfg.CheckoutHandler.Next)
				r.Post("/back", cfg.CheckoutHandler.Back)
				r.Post("/submit", cfg.CheckoutHandler.Submit)
			})

			api.Route("/booking", func(r chi.Router) {
				r.Use(httpmiddleware.RequireSession(cfg.Sessions))
				r.Get("/", cfg.BookingHandler.GetState)
				r.Get("/options", cfg.BookingHandler.GetOptions)
				r.Post("/service", cfg.BookingHandler.SelectService)
				r.Post("/stylist", cfg.BookingHandler.SelectStylist)
				r.Post("/date", cfg.BookingHandler.SelectDate)
				r.Post("/time", cfg.BookingHandler.SelectTimeSlot)
				r.Post("/next", cfg.BookingHandler.Next)
				r.Post("/prev", cfg.BookingHandler.Prev)
				r.Post("/cancel", cfg.BookingHandler.Cancel)
			})
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
