package rpccontext

import (
	"time"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/infrastructure/logger"
	"github.com/argusdag/argusd/infrastructure/metrics"
)

// SubmitBlock inserts header into the DAG, records the outcome in the
// metrics and notifies stream listeners of newly added blocks. Submissions
// are serialized so notifications follow insertion order.
func (ctx *Context) SubmitBlock(header externalapi.BlockHeader) (*externalapi.BlockInsertionResult, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "rpccontext.SubmitBlock")
	defer onEnd()

	ctx.submitLock.Lock()
	defer ctx.submitLock.Unlock()

	start := time.Now()
	result, err := ctx.Domain.Consensus().ValidateAndInsertBlock(header)
	if err != nil {
		metrics.RecordBlockRejected(err)
		log.Debugf("Rejected block with parents %s: %s", header.Parents(), err)
		return nil, err
	}
	metrics.RecordBlockInserted(result, time.Since(start))

	if result.IsNew {
		log.Debugf("Accepted block %s with blue score %d",
			result.Record.Hash, result.Record.GHOSTDAGData.BlueScore())
		ctx.NotificationManager.NotifyBlockAdded(appmessage.NewBlockAddedNotification(result))
	}
	return result, nil
}
