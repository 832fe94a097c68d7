package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FulfillmentMetrics содержит метрики операций проведения заказов.
type FulfillmentMetrics struct {
	// Счётчики исходов
	fulfilled         prometheus.Counter
	rejected          *prometheus.CounterVec
	insufficientStock prometheus.Counter

	// Гистограмма времени проведения
	fulfillmentDuration prometheus.Histogram

	// Gauge для проведений в полёте
	inFlight prometheus.Gauge
}

// NewFulfillmentMetrics создаёт новый экземпляр метрик проведения.
func NewFulfillmentMetrics() *FulfillmentMetrics {
	return newFulfillmentMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newFulfillmentMetricsWithRegisterer(registerer prometheus.Registerer) *FulfillmentMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &FulfillmentMetrics{
		fulfilled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pos_fulfillments_total",
			Help: "Total number of orders fulfilled successfully",
		}),
		rejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "pos_fulfillment_rejections_total",
			Help: "Total number of fulfillment attempts rejected, by reason",
		}, []string{"reason"}),
		insufficientStock: registerCounter(registerer, prometheus.CounterOpts{
			Name: "pos_fulfillment_insufficient_stock_total",
			Help: "Total number of fulfillments rejected due to insufficient stock",
		}),
		fulfillmentDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "pos_fulfillment_duration_seconds",
			Help:    "Duration of fulfillment operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		inFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "pos_fulfillments_in_flight",
			Help: "Number of fulfillment operations currently in progress",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordFulfilled увеличивает счётчик успешных проведений.
func (m *FulfillmentMetrics) RecordFulfilled() {
	m.fulfilled.Inc()
}

// RecordRejected увеличивает счётчик отклонённых проведений по причине.
func (m *FulfillmentMetrics) RecordRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

// RecordInsufficientStock увеличивает счётчик отказов из-за нехватки остатка.
func (m *FulfillmentMetrics) RecordInsufficientStock() {
	m.insufficientStock.Inc()
}

// RecordDuration записывает время выполнения проведения.
func (m *FulfillmentMetrics) RecordDuration(duration time.Duration) {
	m.fulfillmentDuration.Observe(duration.Seconds())
}

// RecordInFlightStarted увеличивает количество активных проведений.
func (m *FulfillmentMetrics) RecordInFlightStarted() {
	m.inFlight.Inc()
}

// RecordInFlightFinished уменьшает количество активных проведений.
func (m *FulfillmentMetrics) RecordInFlightFinished() {
	m.inFlight.Dec()
}
