package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for house-scope operations.
type Metrics struct {
	ListRequests  prometheus.Counter
	AccessChecks  prometheus.Counter
	AccessDenials prometheus.Counter
}

// New registers and returns house metrics collectors.
func New() *Metrics {
	return &Metrics{
		ListRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eterna_house_list_requests_total",
			Help: "Total number of house membership listings served",
		}),
		AccessChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eterna_house_access_checks_total",
			Help: "Total number of house access checks",
		}),
		AccessDenials: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eterna_house_access_denials_total",
			Help: "Total number of denied house access checks",
		}),
	}
}
