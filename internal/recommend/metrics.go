package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "parkpilot_recommendations_total",
	Help: "Recommendation requests served, by oracle availability",
}, []string{"oracle"})
