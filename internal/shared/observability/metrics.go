package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "interfacer_parsing_seconds",
		Help:    "Time spent parsing a contract source file.",
		Buckets: prometheus.DefBuckets,
	})

	ExtractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "interfacer_extraction_seconds",
		Help:    "Time spent deriving an interface descriptor from a file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	DescriptorCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interfacer_descriptor_cache_hits_total",
		Help: "Descriptor lookups served from the per-batch resolution cache.",
	})

	DescriptorCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interfacer_descriptor_cache_misses_total",
		Help: "Descriptor lookups that required reading and extracting a file.",
	})

	ImportsResolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interfacer_imports_resolved_total",
		Help: "Import statements bound to an interface descriptor.",
	})

	SelfImportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interfacer_self_imports_total",
		Help: "Import statements that resolved to the file being compiled.",
	})

	ResolutionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interfacer_resolution_failures_total",
		Help: "Import resolution failures by error code.",
	}, []string{"code"})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "interfacer_batch_seconds",
		Help:    "Wall time of a whole import resolution batch.",
		Buckets: prometheus.DefBuckets,
	})
)

var (
	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "interfacer_graph_nodes",
		Help: "Files in the import graph of the most recent batch.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "interfacer_graph_edges",
		Help: "Resolved import bindings in the import graph of the most recent batch.",
	})
)
