package monitoring

import (
	"net/http"
	"time"

	"minichain/logx"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MiningOutcome string

var (
	MiningFound     MiningOutcome = "found"
	MiningTimedOut  MiningOutcome = "timed_out"
	MiningCancelled MiningOutcome = "cancelled"
	MiningFailed    MiningOutcome = "failed"
)

type nodePromMetrics struct {
	nodeUpUnixSeconds prometheus.Gauge
	chainHeight       prometheus.Gauge
	miningAttempts    prometheus.Counter
	miningDuration    prometheus.Histogram
	miningSessions    *prometheus.CounterVec
	blocksMined       prometheus.Counter
	panicCount        prometheus.Counter
}

func newNodePromMetrics() *nodePromMetrics {
	return &nodePromMetrics{
		nodeUpUnixSeconds: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "minichain_node_up_timestamp_unix_seconds",
				Help: "Unix timestamp of the node",
			},
		),
		chainHeight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "minichain_chain_height",
				Help: "Index of the current chain tip",
			},
		),
		miningAttempts: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "minichain_mining_attempts_total",
				Help: "The total number of nonce attempts across all mining sessions",
			},
		),
		miningDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name: "minichain_mining_duration_seconds",
				Help: "Duration in second of completed mining sessions",
			},
		),
		miningSessions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minichain_mining_sessions_total",
				Help: "The total number of mining sessions by outcome",
			},
			[]string{"outcome"},
		),
		blocksMined: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "minichain_blocks_mined_total",
				Help: "The total number of blocks successfully mined",
			},
		),
		panicCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "minichain_panic_count",
				Help: "The total number of recovered panics",
			},
		),
	}
}

var nodeMetrics *nodePromMetrics

// InitMetrics initialize metrics for node but not expose to api yet
func InitMetrics() {
	nodeMetrics = newNodePromMetrics()
	nodeMetrics.nodeUpUnixSeconds.SetToCurrentTime()
}

func RegisterMetrics(mux *http.ServeMux) {
	logx.Info("METRICS", "Registering prometheus metrics")
	mux.Handle("/metrics", promhttp.Handler())
}

func SetChainHeight(height uint64) {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.chainHeight.Set(float64(height))
}

func AddMiningAttempts(attempts uint64) {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.miningAttempts.Add(float64(attempts))
}

func RecordMiningDuration(duration time.Duration) {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.miningDuration.Observe(duration.Seconds())
}

func RecordMiningSession(outcome MiningOutcome) {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.miningSessions.With(prometheus.Labels{
		"outcome": string(outcome),
	}).Inc()
}

func IncreaseBlocksMined() {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.blocksMined.Inc()
}

func IncreasePanicCount() {
	if nodeMetrics == nil {
		return
	}
	nodeMetrics.panicCount.Inc()
}
