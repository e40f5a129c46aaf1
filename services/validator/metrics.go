/*
Package validator implements the per-transaction validity rules of an epoch.

This file implements Prometheus metrics collection for the validator,
providing visibility into rejection reasons and signature cache effectiveness.
*/
package validator

import (
	"sync"

	"github.com/bsv-blockchain/epochledger/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics collectors
var (
	// prometheusValidatorValidate measures a single transaction validation
	prometheusValidatorValidate prometheus.Histogram

	// prometheusValidatorInvalidTransactions counts rejected transactions by reason
	prometheusValidatorInvalidTransactions *prometheus.CounterVec

	// prometheusValidatorSigCacheHits counts signature verdicts served from the cache
	prometheusValidatorSigCacheHits prometheus.Counter

	// prometheusValidatorSigCacheMisses counts signature verifications that reached the verifier
	prometheusValidatorSigCacheMisses prometheus.Counter
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusValidatorValidate = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "epochledger",
			Subsystem: "validator",
			Name:      "validate",
			Help:      "Histogram of transaction validation",
			Buckets:   util.MetricsBucketsMicroSeconds,
		},
	)

	prometheusValidatorInvalidTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "epochledger",
			Subsystem: "validator",
			Name:      "invalid_transactions",
			Help:      "Number of transactions found invalid, by reason",
		},
		[]string{"reason"},
	)

	prometheusValidatorSigCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "epochledger",
			Subsystem: "validator",
			Name:      "sig_cache_hits",
			Help:      "Number of signature verdicts served from the cache",
		},
	)

	prometheusValidatorSigCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "epochledger",
			Subsystem: "validator",
			Name:      "sig_cache_misses",
			Help:      "Number of signature verifications not found in the cache",
		},
	)
}
