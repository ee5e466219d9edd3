package providers

import (
	"streakd/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncPollsTotal(result string)
	IncNotificationsTotal(kind string)
	IncBadgeRedraws(state string)
	SetStreakDays(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	pollsTotal          *prometheus.CounterVec
	notificationsTotal  *prometheus.CounterVec
	badgeRedraws        *prometheus.CounterVec
	streakDays          prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPollsTotal(result string) {
	m.pollsTotal.WithLabelValues(result).Inc()
}

func (m *MetricsProvider) IncNotificationsTotal(kind string) {
	m.notificationsTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncBadgeRedraws(state string) {
	m.badgeRedraws.WithLabelValues(state).Inc()
}

func (m *MetricsProvider) SetStreakDays(count int) {
	m.streakDays.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "streakd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "streakd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "streakd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "streakd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "streakd_persistence_duration_seconds",
			Help:    "Duration of state persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		pollsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "streakd_polls_total",
			Help: "Completion poll outcomes by result",
		}, []string{"result"}),

		notificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "streakd_notifications_total",
			Help: "Reminder notifications emitted by kind",
		}, []string{"kind"}),

		badgeRedraws: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "streakd_badge_redraws_total",
			Help: "Badge redraws by resulting display state",
		}, []string{"state"}),

		streakDays: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "streakd_streak_days",
			Help: "Current consecutive-day solve count",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncPollsTotal(_ string)                           {}
func (n *noopMetrics) IncNotificationsTotal(_ string)                   {}
func (n *noopMetrics) IncBadgeRedraws(_ string)                         {}
func (n *noopMetrics) SetStreakDays(_ int)                              {}
