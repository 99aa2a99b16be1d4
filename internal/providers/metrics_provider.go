package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"livevote/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncRemoteRequests(endpoint string, status int)
	ObserveRemoteDuration(endpoint string, duration time.Duration)
	IncResync(kind string, ok bool)
	IncCoalescedEvents(kind string)
	IncVoteOutcome(outcome string)
	IncCacheHits()
	IncCacheMisses()
}

// StateGauges is the read side the gauges are computed from.
type StateGauges interface {
	CandidateCount() int
	HasVoted() bool
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	remoteTotal     *prometheus.CounterVec
	remoteDuration  *prometheus.HistogramVec
	resyncTotal     *prometheus.CounterVec
	coalescedTotal  *prometheus.CounterVec
	votesTotal      *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncRemoteRequests(endpoint string, status int) {
	m.remoteTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRemoteDuration(endpoint string, duration time.Duration) {
	m.remoteDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncResync(kind string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.resyncTotal.WithLabelValues(kind, result).Inc()
}

func (m *MetricsProvider) IncCoalescedEvents(kind string) {
	m.coalescedTotal.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncVoteOutcome(outcome string) {
	m.votesTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

// httpStatusBucket folds a status code into its class. Zero means the
// request never produced a response.
func httpStatusBucket(code int) string {
	switch {
	case code == 0:
		return "none"
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

func NewMetricsProvider(conf *structures.Config, state StateGauges) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "livevote_requests_total",
			Help: "Total number of local UI HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "livevote_request_duration_seconds",
			Help:    "Local UI HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		remoteTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "livevote_remote_requests_total",
			Help: "Total number of backend requests",
		}, []string{"endpoint", "status"}),

		remoteDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "livevote_remote_request_duration_seconds",
			Help:    "Backend request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		resyncTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "livevote_resync_total",
			Help: "Total number of resynchronizations per event kind",
		}, []string{"kind", "result"}),

		coalescedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "livevote_coalesced_events_total",
			Help: "Push events folded into an already pending resync",
		}, []string{"kind"}),

		votesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "livevote_vote_submissions_total",
			Help: "Vote submissions by outcome",
		}, []string{"outcome"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "livevote_fragment_cache_hits_total",
			Help: "Total number of fragment cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "livevote_fragment_cache_misses_total",
			Help: "Total number of fragment cache misses",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "livevote_candidates",
		Help: "Number of candidates in the current snapshot",
	}, func() float64 {
		return float64(state.CandidateCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "livevote_has_voted",
		Help: "1 when this device has voted",
	}, func() float64 {
		if state.HasVoted() {
			return 1
		}
		return 0
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncRemoteRequests(_ string, _ int)                {}
func (n *noopMetrics) ObserveRemoteDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncResync(_ string, _ bool)                       {}
func (n *noopMetrics) IncCoalescedEvents(_ string)                      {}
func (n *noopMetrics) IncVoteOutcome(_ string)                          {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
