package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewFulfillmentMetrics(t *testing.T) {
	metrics := newFulfillmentMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newFulfillmentMetricsWithRegisterer should not return nil")
	}
	if metrics.fulfilled == nil {
		t.Error("fulfilled counter should not be nil")
	}
	if metrics.rejected == nil {
		t.Error("rejected counter vec should not be nil")
	}
	if metrics.insufficientStock == nil {
		t.Error("insufficientStock counter should not be nil")
	}
	if metrics.fulfillmentDuration == nil {
		t.Error("fulfillmentDuration histogram should not be nil")
	}
	if metrics.inFlight == nil {
		t.Error("inFlight gauge should not be nil")
	}
}

func TestFulfillmentMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := newFulfillmentMetricsWithRegisterer(registry)

	metrics.RecordFulfilled()
	metrics.RecordFulfilled()
	metrics.RecordInsufficientStock()
	metrics.RecordRejected("insufficient_stock")
	metrics.RecordDuration(25 * time.Millisecond)
	metrics.RecordInFlightStarted()

	if got := counterValue(t, registry, "pos_fulfillments_total"); got != 2 {
		t.Fatalf("expected 2 fulfillments, got %v", got)
	}
	if got := counterValue(t, registry, "pos_fulfillment_insufficient_stock_total"); got != 1 {
		t.Fatalf("expected 1 insufficient stock rejection, got %v", got)
	}
	if got := gaugeValue(t, registry, "pos_fulfillments_in_flight"); got != 1 {
		t.Fatalf("expected 1 in flight, got %v", got)
	}

	metrics.RecordInFlightFinished()
	if got := gaugeValue(t, registry, "pos_fulfillments_in_flight"); got != 0 {
		t.Fatalf("expected 0 in flight, got %v", got)
	}
}

func TestFulfillmentMetrics_IdempotentRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newFulfillmentMetricsWithRegisterer(registry)
	second := newFulfillmentMetricsWithRegisterer(registry)

	first.RecordFulfilled()
	second.RecordFulfilled()

	// Повторная регистрация переиспользует коллекторы, а не паникует.
	if got := counterValue(t, registry, "pos_fulfillments_total"); got != 2 {
		t.Fatalf("expected shared counter with value 2, got %v", got)
	}
}

func counterValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()
	m := findMetric(t, registry, name)
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()
	m := findMetric(t, registry, name)
	return m.GetGauge().GetValue()
}

func findMetric(t *testing.T, registry *prometheus.Registry, name string) *dto.Metric {
	t.Helper()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, family := range families {
		if family.GetName() == name && len(family.GetMetric()) > 0 {
			return family.GetMetric()[0]
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}
