package llm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tripweaver",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Completion requests by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tripweaver",
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Completion request latency by provider.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration)
}

// observeRequest records one completion attempt. Failed requests are labelled
// with their error kind so quota exhaustion is distinguishable from auth
// failures on the dashboard.
func observeRequest(provider string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = string(KindOf(err))
	}
	requestsTotal.WithLabelValues(provider, outcome).Inc()
	requestDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}
