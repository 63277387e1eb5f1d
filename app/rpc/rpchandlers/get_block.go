package rpchandlers

import (
	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/app/rpc/rpccontext"
)

// HandleGetBlock handles the respectively named RPC command
func HandleGetBlock(context *rpccontext.Context, request *appmessage.GetBlockRequest) (*appmessage.GetBlockResponse, error) {
	hash, err := parseHash("hash", request.Hash)
	if err != nil {
		return nil, err
	}

	record, err := context.Domain.Consensus().GetBlock(hash)
	if err != nil {
		return nil, err
	}
	isChainBlock, err := context.Domain.Consensus().IsChainBlock(hash)
	if err != nil {
		return nil, err
	}
	return appmessage.DomainBlockRecordToGetBlockResponse(record, isChainBlock), nil
}
