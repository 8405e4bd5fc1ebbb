// Package metrics exposes prometheus instrumentation for the extraction pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline groups the counters incremented by the ingest service.
type Pipeline struct {
	FilesParsed        *prometheus.CounterVec
	FilesFailed        *prometheus.CounterVec
	StrategyCandidates *prometheus.CounterVec
	TransactionsKept   prometheus.Counter
	DuplicatesDropped  prometheus.Counter
}

// NewPipeline registers pipeline counters on the given registerer.
// Pass prometheus.DefaultRegisterer in production, a fresh registry in tests.
func NewPipeline(reg prometheus.Registerer) *Pipeline {
	factory := promauto.With(reg)
	return &Pipeline{
		FilesParsed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finsight_files_parsed_total",
			Help: "Statement files parsed successfully, by file type.",
		}, []string{"type"}),
		FilesFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finsight_files_failed_total",
			Help: "Statement files rejected or failed, by error class.",
		}, []string{"reason"}),
		StrategyCandidates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finsight_strategy_candidates_total",
			Help: "Candidates produced per parsing strategy before dedup.",
		}, []string{"strategy"}),
		TransactionsKept: factory.NewCounter(prometheus.CounterOpts{
			Name: "finsight_transactions_kept_total",
			Help: "Transactions surviving classification, filtering and dedup.",
		}),
		DuplicatesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "finsight_duplicates_dropped_total",
			Help: "Transactions collapsed by ingestion-time deduplication.",
		}),
	}
}
