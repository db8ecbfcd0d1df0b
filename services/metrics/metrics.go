package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	RouteBooking = "booking"
	RouteAI      = "ai"
	RouteError   = "error"

	OutcomeCreated   = "created"
	OutcomeCancelled = "cancelled"
)

// ChatMetrics exposes counters/histograms for chat routing and bookings.
type ChatMetrics struct {
	messagesTotal     *prometheus.CounterVec
	bookingsTotal     *prometheus.CounterVec
	generationLatency prometheus.Histogram
}

func NewChatMetrics(reg prometheus.Registerer) *ChatMetrics {
	m := &ChatMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetassist",
			Subsystem: "chat",
			Name:      "messages_total",
			Help:      "Chat messages handled, by route",
		}, []string{"route"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetassist",
			Subsystem: "chat",
			Name:      "bookings_total",
			Help:      "Booking dialogues finished, by outcome",
		}, []string{"outcome"}),
		generationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vetassist",
			Subsystem: "chat",
			Name:      "generation_latency_seconds",
			Help:      "Latency of generative model replies",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.bookingsTotal, m.generationLatency)
	return m
}

func (m *ChatMetrics) ObserveMessage(route string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(route).Inc()
}

func (m *ChatMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *ChatMetrics) ObserveGenerationLatency(seconds float64) {
	if m == nil {
		return
	}
	m.generationLatency.Observe(seconds)
}
