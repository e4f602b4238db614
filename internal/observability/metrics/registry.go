// Package metrics defines Prometheus collectors for the post-generation
// pipeline: article fetching, summarization, image generation, and
// compositing. All collectors are registered on the default registry and
// exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ArticleFetchTotal counts article fetch attempts by result.
	ArticleFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "article_fetch_total",
		Help: "Total number of article fetch attempts by result (success/failure).",
	}, []string{"result"})

	// ArticleFetchDuration observes how long fetching and extraction takes.
	ArticleFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "article_fetch_duration_seconds",
		Help:    "Duration of article fetch and extraction in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	// SummarizeTotal counts summary generation calls by provider and result.
	SummarizeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "summarize_total",
		Help: "Total number of summary generation calls by provider and result.",
	}, []string{"provider", "result"})

	// SummarizeDuration observes text model latency by provider.
	SummarizeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "summarize_duration_seconds",
		Help:    "Duration of summary generation calls in seconds.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider"})

	// ImageGenerationTotal counts background generation calls by provider and result.
	ImageGenerationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "image_generation_total",
		Help: "Total number of image generation calls by provider and result.",
	}, []string{"provider", "result"})

	// ImageGenerationDuration observes image model latency by provider.
	ImageGenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "image_generation_duration_seconds",
		Help:    "Duration of image generation calls in seconds.",
		Buckets: []float64{1, 5, 10, 20, 30, 60, 120},
	}, []string{"provider"})

	// CompositeTotal counts final post composites by result.
	CompositeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "post_composite_total",
		Help: "Total number of final post composites by result.",
	}, []string{"result"})

	// CompositeDuration observes compositor rendering time.
	CompositeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "post_composite_duration_seconds",
		Help:    "Duration of final post compositing in seconds.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
	})

	// SessionsActive tracks the number of live workflow sessions.
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "workflow_sessions_active",
		Help: "Number of live workflow sessions held in memory.",
	})

	// HTTPRequestDuration observes handler latency by method, path and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
