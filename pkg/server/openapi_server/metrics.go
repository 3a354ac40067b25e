package openapi_server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grid_astar_searches_total",
		Help: "Total route searches by node store and result",
	}, []string{"store", "result"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grid_astar_search_duration_seconds",
		Help:    "Route search duration",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"store"})

	settledNodes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grid_astar_settled_nodes",
		Help:    "Nodes settled per route search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"store"})

	navigatorChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grid_astar_navigator_changes_total",
		Help: "Number of node store switches",
	})
)
