package rpchandlers

import (
	"time"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/app/rpc/rpccontext"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
	"github.com/pkg/errors"
)

// HandleSubmitBlock handles the respectively named RPC command
func HandleSubmitBlock(context *rpccontext.Context, request *appmessage.SubmitBlockRequest) (
	*appmessage.SubmitBlockResponse, error) {

	parents, err := parseHashes("parents", request.Parents)
	if err != nil {
		return nil, err
	}

	header := blockheader.NewImmutableBlockHeader(parents, request.Timestamp)
	result, err := context.SubmitBlock(header)
	if err != nil {
		return nil, err
	}
	return appmessage.BlockInsertionResultToSubmitBlockResponse(result), nil
}

// HandleSmartSubmit handles the respectively named RPC command
func HandleSmartSubmit(context *rpccontext.Context, request *appmessage.SmartSubmitRequest) (
	*appmessage.SubmitBlockResponse, error) {

	parentCount := request.ParentCount
	if parentCount == 0 {
		parentCount = appmessage.DefaultSmartSubmitParentCount
	}
	if parentCount < 1 {
		return nil, errors.Wrapf(appmessage.ErrInvalidParams, "parent_count must be at least 1, got %d", parentCount)
	}
	timestamp := time.Now().UnixMilli()
	if request.Timestamp != nil {
		timestamp = *request.Timestamp
	}

	header, err := context.Domain.Consensus().BuildBlockHeader(parentCount, timestamp)
	if err != nil {
		return nil, err
	}
	result, err := context.SubmitBlock(header)
	if err != nil {
		return nil, err
	}
	return appmessage.BlockInsertionResultToSubmitBlockResponse(result), nil
}
