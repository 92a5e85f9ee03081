package trainingctx

import "github.com/prometheus/client_golang/prometheus"

var (
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_cache_lookups_total",
			Help: "Training-context cache lookups by result (hit|miss).",
		},
		[]string{"result"},
	)
	cacheInvalidations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "training_cache_invalidations_total",
			Help: "Explicit training-context cache invalidations.",
		},
	)
)

func init() {
	prometheus.MustRegister(cacheLookups, cacheInvalidations)
}
