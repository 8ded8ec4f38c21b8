package metrics

import "github.com/prometheus/client_golang/prometheus"

// SalonMetrics exposes counters/histograms for the storefront flows.
type SalonMetrics struct {
	authAttempts      *prometheus.CounterVec
	cartMutations     *prometheus.CounterVec
	ordersPlaced      prometheus.Counter
	orderTotal        prometheus.Histogram
	bookingsConfirmed prometheus.Counter
}

func NewSalonMetrics(reg prometheus.Registerer) *SalonMetrics {
	m := &SalonMetrics{
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Total register/login/logout attempts",
		}, []string{"op", "outcome"}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "shop",
			Name:      "cart_mutations_total",
			Help:      "Total cart mutations",
		}, []string{"op"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "shop",
			Name:      "orders_placed_total",
			Help:      "Total orders placed through checkout",
		}),
		orderTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "shop",
			Name:      "order_total_dollars",
			Help:      "Grand total of placed orders",
			Buckets:   []float64{10, 25, 50, 100, 250, 500},
		}),
		bookingsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "booking",
			Name:      "confirmed_total",
			Help:      "Total appointment bookings confirmed",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.authAttempts, m.cartMutations, m.ordersPlaced, m.orderTotal, m.bookingsConfirmed)
	return m
}

func (m *SalonMetrics) ObserveAuthAttempt(op, outcome string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(op, outcome).Inc()
}

func (m *SalonMetrics) ObserveCartMutation(op string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(op).Inc()
}

func (m *SalonMetrics) ObserveOrderPlaced(total float64) {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
	m.orderTotal.Observe(total)
}

func (m *SalonMetrics) ObserveBookingConfirmed() {
	if m == nil {
		return
	}
	m.bookingsConfirmed.Inc()
}
