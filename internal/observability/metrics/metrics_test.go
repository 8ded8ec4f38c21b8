package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestObserveAuthAttempt(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSalonMetrics(reg)

	m.ObserveAuthAttempt("login", "success")
	m.ObserveAuthAttempt("login", "success")
	m.ObserveAuthAttempt("register", "duplicate_email")

	mf := gather(t, reg, "salon_auth_attempts_total")
	if mf == nil {
		t.Fatal("auth attempts metric not registered")
	}
	if len(mf.Metric) != 2 {
		t.Fatalf("expected 2 label combinations, got %d", len(mf.Metric))
	}
}

func TestObserveOrderPlaced(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSalonMetrics(reg)

	m.ObserveOrderPlaced(80.48)

	mf := gather(t, reg, "salon_shop_orders_placed_total")
	if mf == nil {
		t.Fatal("orders placed metric not registered")
	}
	if got := mf.Metric[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("orders placed = %v, want 1", got)
	}

	hist := gather(t, reg, "salon_shop_order_total_dollars")
	if hist == nil {
		t.Fatal("order total metric not registered")
	}
	if got := hist.Metric[0].GetHistogram().GetSampleSum(); got != 80.48 {
		t.Fatalf("order total sum = %v, want 80.48", got)
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *SalonMetrics
	m.ObserveAuthAttempt("login", "success")
	m.ObserveCartMutation("add")
	m.ObserveOrderPlaced(1)
	m.ObserveBookingConfirmed()
}
