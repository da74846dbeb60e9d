package prediction

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var fallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "parkpilot_prediction_fallbacks_total",
	Help: "Number of predictions answered with the neutral fallback instead of the prediction service",
})
