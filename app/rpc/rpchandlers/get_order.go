package rpchandlers

import (
	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/app/rpc/rpccontext"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/hashes"
)

// HandleGetOrder handles the respectively named RPC command
func HandleGetOrder(context *rpccontext.Context, request *appmessage.GetOrderRequest) (*appmessage.OrderResponse, error) {
	var from *externalapi.DomainHash
	if request.From != "" {
		var err error
		from, err = parseHash("from", request.From)
		if err != nil {
			return nil, err
		}
	}
	to, err := parseHash("to", request.To)
	if err != nil {
		return nil, err
	}

	order, err := context.Domain.Consensus().LinearizeToSlice(from, to)
	if err != nil {
		return nil, err
	}
	return &appmessage.OrderResponse{Order: hashes.ToStrings(order)}, nil
}

// HandleGetTipOrder handles the respectively named RPC command
func HandleGetTipOrder(context *rpccontext.Context) (*appmessage.GetTipOrderResponse, error) {
	// The virtual order holds exactly virtual-blue-score blocks
	order, err := context.Domain.Consensus().VirtualOrder()
	if err != nil {
		return nil, err
	}
	return &appmessage.GetTipOrderResponse{
		Order:            hashes.ToStrings(order),
		VirtualBlueScore: uint64(len(order)),
	}, nil
}

// HandleLinearizeRange handles the respectively named RPC command
func HandleLinearizeRange(context *rpccontext.Context, request *appmessage.LinearizeRangeRequest) (
	*appmessage.OrderResponse, error) {

	order, err := context.Domain.Consensus().OrderByBlueScoreRange(request.FromScore, request.ToScore)
	if err != nil {
		return nil, err
	}
	return &appmessage.OrderResponse{Order: hashes.ToStrings(order)}, nil
}
