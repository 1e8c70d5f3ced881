package cogserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "cogexp",
		Subsystem: "cogserver",
		Name:      "requests_total",
		Help:      "Requests sent to the CogServer REST API, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)
