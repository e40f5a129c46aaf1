package epoch

import (
	"sync"

	"github.com/bsv-blockchain/epochledger/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusEpochProcess        *prometheus.HistogramVec
	prometheusEpochAcceptorPasses prometheus.Histogram
	prometheusEpochSelectorSearch prometheus.Histogram
	prometheusEpochAccepted       *prometheus.CounterVec
	prometheusEpochRejected       *prometheus.CounterVec
	prometheusEpochApproximations prometheus.Counter
	prometheusEpochForks          prometheus.Counter
)

var prometheusMetricsInitOnce sync.Once

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusEpochProcess = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "epochledger",
			Subsystem: "epoch",
			Name:      "process",
			Help:      "Histogram of epoch processing, by policy",
			Buckets:   util.MetricsBucketsMilliSeconds,
		},
		[]string{"policy"},
	)

	prometheusEpochAcceptorPasses = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "epochledger",
			Subsystem: "epoch",
			Name:      "acceptor_passes",
			Help:      "Number of passes the acceptor needed to reach its fixed point",
			Buckets:   util.MetricsBucketsSizeSmall,
		},
	)

	prometheusEpochSelectorSearch = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "epochledger",
			Subsystem: "epoch",
			Name:      "selector_search",
			Help:      "Histogram of the maximum fee subset search",
			Buckets:   util.MetricsBucketsMilliLongSeconds,
		},
	)

	prometheusEpochAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "epochledger",
			Subsystem: "epoch",
			Name:      "accepted",
			Help:      "Number of transactions accepted, by policy",
		},
		[]string{"policy"},
	)

	prometheusEpochRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "epochledger",
			Subsystem: "epoch",
			Name:      "rejected",
			Help:      "Number of candidate transactions left out, by policy",
		},
		[]string{"policy"},
	)

	prometheusEpochApproximations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "epochledger",
			Subsystem: "epoch",
			Name:      "approximations",
			Help:      "Number of selections that fell back to the greedy approximation",
		},
	)

	prometheusEpochForks = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "epochledger",
			Subsystem: "epoch",
			Name:      "forks",
			Help:      "Number of fork epochs processed",
		},
	)
}
