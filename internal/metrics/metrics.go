package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fitchallenge"

// Generation kinds and outcomes used as label values.
const (
	KindRoutine   = "routine"
	KindChallenge = "challenge"

	OutcomeSuccess       = "success"
	OutcomeModelError    = "model_error"
	OutcomeExtraction    = "extraction_error"
	OutcomeMalformed     = "malformed"
	OutcomeStoreError    = "store_error"
	OutcomeAlreadyExists = "already_exists"
	OutcomeLookupFailed  = "lookup_failed"
)

var (
	once sync.Once

	generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_total",
			Help:      "Count of routine and challenge generations by outcome.",
		},
		[]string{"kind", "outcome"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_model_duration_seconds",
			Help:      "Time spent waiting on the generative model.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"kind"},
	)

	coverFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "challenge_cover_fallback_total",
			Help:      "Count of challenges stored with the default cover image.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by route, method and status code.",
		},
		[]string{"route", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(generations, generationDuration, coverFallbacks, httpRequests, httpDuration)
	})
}

func IncGeneration(kind, outcome string) {
	generations.WithLabelValues(kind, outcome).Inc()
}

func ObserveGenerationDuration(kind string, seconds float64) {
	generationDuration.WithLabelValues(kind).Observe(seconds)
}

func IncCoverFallback() {
	coverFallbacks.Inc()
}

func ObserveHTTPRequest(route, method, code string, seconds float64) {
	httpRequests.WithLabelValues(route, method, code).Inc()
	httpDuration.WithLabelValues(route, method).Observe(seconds)
}
