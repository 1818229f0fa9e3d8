package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for auth operations.
type Metrics struct {
	LoginAttempts   prometheus.Counter
	LoginFailures   prometheus.Counter
	Logouts         prometheus.Counter
	TokensRevoked   prometheus.Counter
	LoginDurationMs prometheus.Histogram
}

// New registers and returns auth metrics collectors.
func New() *Metrics {
	return &Metrics{
		LoginAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eterna_login_attempts_total",
			Help: "Total number of login attempts",
		}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eterna_login_failures_total",
			Help: "Total number of failed login attempts",
		}),
		Logouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eterna_logouts_total",
			Help: "Total number of logouts",
		}),
		TokensRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eterna_tokens_revoked_total",
			Help: "Total number of access tokens revoked before expiry",
		}),
		LoginDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "eterna_login_duration_ms",
			Help:    "Duration of login operations in milliseconds",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500},
		}),
	}
}
