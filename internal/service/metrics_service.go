package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes recorded by RecordSubmission.
const (
	SubmissionAccepted   = "accepted"
	SubmissionIncomplete = "incomplete"
	SubmissionFailed     = "failed"
)

// MetricsSnapshot is a lightweight view of the counters for health endpoints.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	SubmissionsAccepted      uint64    `json:"submissions_accepted"`
	SubmissionsRejected      uint64    `json:"submissions_rejected"`
	TrackingCodeFallbacks    uint64    `json:"tracking_code_fallbacks"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	submissions       *prometheus.CounterVec
	codeFallbacks     prometheus.Counter
	navigationBlocked *prometheus.CounterVec
	feedRejections    prometheus.Counter
	draftStoreLatency *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	dbQueryDuration   *prometheus.HistogramVec
	archiveJobs       *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	acceptedCount        uint64
	rejectedCount        uint64
	fallbackCount        uint64
	cacheHitCount        uint64
	cacheMissCount       uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shift_report_submissions_total",
		Help: "Shift report submissions by outcome",
	}, []string{"outcome"})

	codeFallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tracking_code_fallbacks_total",
		Help: "Tracking codes issued from the random fallback",
	})

	navigationBlocked := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shift_form_navigation_blocked_total",
		Help: "Forward navigation attempts blocked by an incomplete section",
	}, []string{"section"})

	feedRejections := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_allocation_rejections_total",
		Help: "Feed updates rejected by the allocation rules",
	})

	draftStoreLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "draft_store_duration_seconds",
		Help:    "Latency of draft store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	dbQueryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	archiveJobs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shift_report_archive_jobs_total",
		Help: "Archive renders by outcome",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, submissions, codeFallbacks, navigationBlocked,
		feedRejections, draftStoreLatency, cacheHits, cacheMisses, dbQueryDuration, archiveJobs, goroutines)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		submissions:       submissions,
		codeFallbacks:     codeFallbacks,
		navigationBlocked: navigationBlocked,
		feedRejections:    feedRejections,
		draftStoreLatency: draftStoreLatency,
		cacheHits:         cacheHits,
		cacheMisses:       cacheMisses,
		dbQueryDuration:   dbQueryDuration,
		archiveJobs:       archiveJobs,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordSubmission counts a submission attempt by outcome.
func (m *MetricsService) RecordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
	if outcome == SubmissionAccepted {
		atomic.AddUint64(&m.acceptedCount, 1)
	} else {
		atomic.AddUint64(&m.rejectedCount, 1)
	}
}

// RecordCodeFallback counts a tracking code issued without the sequence service.
func (m *MetricsService) RecordCodeFallback() {
	if m == nil {
		return
	}
	m.codeFallbacks.Inc()
	atomic.AddUint64(&m.fallbackCount, 1)
}

// RecordNavigationBlocked counts a blocked forward move out of section.
func (m *MetricsService) RecordNavigationBlocked(section string) {
	if m == nil {
		return
	}
	m.navigationBlocked.WithLabelValues(section).Inc()
}

// RecordFeedRejection counts a rejected feed update.
func (m *MetricsService) RecordFeedRejection() {
	if m == nil {
		return
	}
	m.feedRejections.Inc()
}

// ObserveDraftStore records draft store latency for op.
func (m *MetricsService) ObserveDraftStore(op string, duration time.Duration) {
	if m == nil {
		return
	}
	m.draftStoreLatency.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordCacheOperation records a report cache hit or miss.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
		return
	}
	m.cacheMisses.Inc()
	atomic.AddUint64(&m.cacheMissCount, 1)
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// RecordArchiveJob counts a finished archive job ("archived" or "discarded").
func (m *MetricsService) RecordArchiveJob(outcome string) {
	if m == nil {
		return
	}
	m.archiveJobs.WithLabelValues(outcome).Inc()
}

// Snapshot returns aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	var ratio float64
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}
	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		SubmissionsAccepted:      atomic.LoadUint64(&m.acceptedCount),
		SubmissionsRejected:      atomic.LoadUint64(&m.rejectedCount),
		TrackingCodeFallbacks:    atomic.LoadUint64(&m.fallbackCount),
		CacheHitRatio:            ratio,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
