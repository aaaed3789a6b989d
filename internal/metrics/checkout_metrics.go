package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics instruments the checkout pipeline.
type CheckoutMetrics struct {
	checkoutStarted   prometheus.Counter
	checkoutCompleted prometheus.Counter
	checkoutRejected  prometheus.Counter
	checkoutFailed    prometheus.Counter
	ordersSplit       prometheus.Counter
	ordersCompensated prometheus.Counter

	checkoutDuration prometheus.Histogram
	stepDuration     *prometheus.HistogramVec
}

func NewCheckoutMetrics() *CheckoutMetrics {
	return newCheckoutMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newCheckoutMetricsWithRegisterer(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		checkoutStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gasline_checkout_started_total",
			Help: "Total number of checkout submissions received",
		}),
		checkoutCompleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gasline_checkout_completed_total",
			Help: "Total number of checkouts completed with a payment preference",
		}),
		checkoutRejected: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gasline_checkout_rejected_total",
			Help: "Total number of checkouts rejected by field validation",
		}),
		checkoutFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gasline_checkout_failed_total",
			Help: "Total number of checkouts failed on a back-office or gateway error",
		}),
		ordersSplit: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gasline_checkout_orders_split_total",
			Help: "Total number of carts split into two back-office orders",
		}),
		ordersCompensated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "gasline_checkout_orders_compensated_total",
			Help: "Total number of orders canceled by saga compensation",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "gasline_checkout_duration_seconds",
			Help:    "Duration of the full checkout sequence in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		stepDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "gasline_checkout_step_duration_seconds",
			Help:    "Duration of individual checkout steps in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"step"}),
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

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

func (m *CheckoutMetrics) RecordCheckoutStarted() {
	m.checkoutStarted.Inc()
}

func (m *CheckoutMetrics) RecordCheckoutCompleted() {
	m.checkoutCompleted.Inc()
}

func (m *CheckoutMetrics) RecordCheckoutRejected() {
	m.checkoutRejected.Inc()
}

func (m *CheckoutMetrics) RecordCheckoutFailed() {
	m.checkoutFailed.Inc()
}

func (m *CheckoutMetrics) RecordOrdersSplit() {
	m.ordersSplit.Inc()
}

func (m *CheckoutMetrics) RecordOrderCompensated() {
	m.ordersCompensated.Inc()
}

func (m *CheckoutMetrics) RecordCheckoutDuration(duration time.Duration) {
	m.checkoutDuration.Observe(duration.Seconds())
}

func (m *CheckoutMetrics) RecordStepDuration(step string, duration time.Duration) {
	m.stepDuration.WithLabelValues(step).Observe(duration.Seconds())
}
