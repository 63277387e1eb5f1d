package rpchandlers

import (
	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/app/rpc/rpccontext"
	"github.com/pkg/errors"
)

// HandleGetSnapshot handles the respectively named RPC command
func HandleGetSnapshot(context *rpccontext.Context, request *appmessage.GetSnapshotRequest) (
	*appmessage.GetSnapshotResponse, error) {

	n := appmessage.DefaultSnapshotSize
	if request.N != nil {
		n = *request.N
	}
	if n < 0 {
		return nil, errors.Wrapf(appmessage.ErrInvalidParams, "n must not be negative, got %d", n)
	}
	if n > appmessage.MaxSnapshotSize {
		log.Debugf("Clamping a snapshot of %d blocks to %d", n, appmessage.MaxSnapshotSize)
		n = appmessage.MaxSnapshotSize
	}

	records, err := context.Domain.Consensus().Snapshot(n)
	if err != nil {
		return nil, err
	}
	blocks := make([]*appmessage.SnapshotBlock, len(records))
	for i, record := range records {
		blocks[i] = appmessage.DomainBlockRecordWithBluenessToSnapshotBlock(record)
	}
	return &appmessage.GetSnapshotResponse{Blocks: blocks}, nil
}
