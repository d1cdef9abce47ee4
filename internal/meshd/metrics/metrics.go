// Package metrics holds the meshd prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MeshCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mesh_cache_hits_total",
		Help: "Total number of mesh cache hits",
	})

	MeshCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mesh_cache_misses_total",
		Help: "Total number of mesh cache misses",
	})

	MeshCacheStores = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mesh_cache_stores_total",
		Help: "Total number of mesh cache store operations",
	})

	MeshGenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mesh_generation_duration_seconds",
		Help:    "Duration of tile mesh generation in seconds",
		Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})

	// Redis metrics
	RedisOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"operation"})

	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	}, []string{"operation"})
)
