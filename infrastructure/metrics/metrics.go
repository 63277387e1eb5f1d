package metrics

import (
	"time"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons that aren't rule violations
const (
	RejectedReasonIntegrityFault = "integrity_fault"
	RejectedReasonOther          = "other"
)

var (
	blocksInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "argus_blocks_inserted_total",
			Help: "The total number of blocks newly inserted into the DAG",
		},
	)
	blocksRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argus_blocks_rejected_total",
			Help: "The total number of rejected block submissions",
		},
		[]string{"reason"},
	)
	redBlocks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "argus_red_blocks_total",
			Help: "The total number of merge-set blocks classified red by newly inserted blocks",
		},
	)
	insertDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "argus_insert_duration_seconds",
			Help:    "Latency in seconds of a block insertion, classification included",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)
	tips = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "argus_tips",
			Help: "The current number of DAG tips",
		},
	)
	virtualBlueScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "argus_virtual_blue_score",
			Help: "The current blue score of the virtual block",
		},
	)
	rpcRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "argus_rpc_requests_total",
			Help: "The total number of JSON-RPC requests, by method",
		},
		[]string{"method"},
	)
)

// RecordBlockInserted records the outcome of a successful ValidateAndInsertBlock call
func RecordBlockInserted(result *externalapi.BlockInsertionResult, duration time.Duration) {
	insertDuration.Observe(duration.Seconds())
	if !result.IsNew {
		return
	}
	blocksInserted.Inc()
	redBlocks.Add(float64(len(result.Record.GHOSTDAGData.MergeSetReds())))
	if result.VirtualInfo != nil {
		SetVirtual(result.VirtualInfo)
	}
}

// RecordBlockRejected records a failed ValidateAndInsertBlock call
func RecordBlockRejected(err error) {
	blocksRejected.With(prometheus.Labels{
		"reason": RejectedReason(err),
	}).Inc()
}

// RejectedReason returns the reason label used for err
func RejectedReason(err error) string {
	if errors.Is(err, ruleerrors.ErrIntegrityFault) {
		return RejectedReasonIntegrityFault
	}
	var ruleError ruleerrors.RuleError
	if errors.As(err, &ruleError) {
		return ruleError.Kind()
	}
	return RejectedReasonOther
}

// SetVirtual updates the gauges derived from the virtual block
func SetVirtual(virtualInfo *externalapi.VirtualInfo) {
	tips.Set(float64(len(virtualInfo.ParentHashes)))
	virtualBlueScore.Set(float64(virtualInfo.BlueScore))
}

// RecordRPCRequest counts a JSON-RPC request for the given method
func RecordRPCRequest(method string) {
	rpcRequests.With(prometheus.Labels{
		"method": method,
	}).Inc()
}
