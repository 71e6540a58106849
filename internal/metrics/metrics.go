package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	ClubFollows      *prometheus.CounterVec
	EventJoins       *prometheus.CounterVec
	NotificationsOut *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
}

// New creates and registers every collector on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ClubFollows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "club_follows_total",
				Help: "Club follow and leave actions",
			},
			[]string{"action"},
		),
		EventJoins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "event_joins_total",
				Help: "Event join and leave actions",
			},
			[]string{"action"},
		),
		NotificationsOut: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_sent_total",
				Help: "Notifications created by kind",
			},
			[]string{"kind"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Response cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.ClubFollows,
		m.EventJoins,
		m.NotificationsOut,
		m.CacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// TrackConnections exposes count as the websocket_connections gauge.
func (m *Metrics) TrackConnections(count func() int) {
	if m == nil || count == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Open notification sockets",
		},
		func() float64 { return float64(count()) },
	))
}

// Registry exposes the registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// The helpers below are nil-safe so components can run without metrics.

func (m *Metrics) Follow(action string) {
	if m != nil {
		m.ClubFollows.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) Join(action string) {
	if m != nil {
		m.EventJoins.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) NotificationsSent(kind string, n int) {
	if m != nil && n > 0 {
		m.NotificationsOut.WithLabelValues(kind).Add(float64(n))
	}
}

func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(cache, result).Inc()
}

// ObserveHTTP records one finished request under its route pattern.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
