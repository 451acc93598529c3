package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

// Manager holds the service's Prometheus metrics on a private registry.
type Manager struct {
	Registry *prometheus.Registry

	ListingsCreatedTotal prometheus.Counter
	ListingsClaimedTotal prometheus.Counter
	ClaimConflictsTotal  prometheus.Counter
	MessagesSentTotal    prometheus.Counter
	HTTPErrorsTotal      *prometheus.CounterVec
	HTTPLatency          *prometheus.HistogramVec
}

func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	listingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_created_total",
		Help:      "Total number of food listings posted.",
	})
	listingsClaimed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_claimed_total",
		Help:      "Total number of successful claims.",
	})
	claimConflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "claim_conflicts_total",
		Help:      "Claim attempts that lost the available->claimed race.",
	})
	messagesSent := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "chat_messages_sent_total",
		Help:      "Total number of chat messages stored.",
	})
	httpErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by route and status.",
	}, []string{"route", "status"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		listingsCreated,
		listingsClaimed,
		claimConflicts,
		messagesSent,
		httpErrors,
		httpLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:             registry,
		ListingsCreatedTotal: listingsCreated,
		ListingsClaimedTotal: listingsClaimed,
		ClaimConflictsTotal:  claimConflicts,
		MessagesSentTotal:    messagesSent,
		HTTPErrorsTotal:      httpErrors,
		HTTPLatency:          httpLatency,
	}
}

// ObserveRequest records one served request.
func (m *Manager) ObserveRequest(route string, status int, elapsed time.Duration) {
	m.HTTPLatency.WithLabelValues(route).Observe(elapsed.Seconds())
	if status >= 400 {
		m.HTTPErrorsTotal.WithLabelValues(route, http.StatusText(status)).Inc()
	}
}

// StartServer exposes /metrics on its own port. Blocks until the listener
// fails, so callers run it in a goroutine.
func StartServer(port string, log logger.Logger, registry *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Infof("Prometheus metrics listening on :%s/metrics", port)
	return http.ListenAndServe(":"+port, mux)
}
