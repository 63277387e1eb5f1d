package rpc

import (
	"context"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/app/rpc/rpchandlers"
	"github.com/argusdag/argusd/infrastructure/metrics"
	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
)

// Assigner returns the jrpc2 assigner serving every JSON-RPC command
func (m *Manager) Assigner() jrpc2.Assigner {
	return meteredAssigner{m.handlers()}
}

func (m *Manager) handlers() handler.Map {
	return handler.Map{
		appmessage.CmdSubmitBlockRequest.String(): handler.New(
			func(_ context.Context, request appmessage.SubmitBlockRequest) (*appmessage.SubmitBlockResponse, error) {
				response, err := rpchandlers.HandleSubmitBlock(m.context, &request)
				return response, toRPCError(err)
			}),
		appmessage.CmdSmartSubmitRequest.String(): handler.New(
			func(_ context.Context, request appmessage.SmartSubmitRequest) (*appmessage.SubmitBlockResponse, error) {
				response, err := rpchandlers.HandleSmartSubmit(m.context, &request)
				return response, toRPCError(err)
			}),
		appmessage.CmdGetBlockRequest.String(): handler.New(
			func(_ context.Context, request appmessage.GetBlockRequest) (*appmessage.GetBlockResponse, error) {
				response, err := rpchandlers.HandleGetBlock(m.context, &request)
				return response, toRPCError(err)
			}),
		appmessage.CmdGetTipsRequest.String(): handler.New(
			func(_ context.Context) (*appmessage.GetTipsResponse, error) {
				response, err := rpchandlers.HandleGetTips(m.context)
				return response, toRPCError(err)
			}),
		appmessage.CmdGetOrderRequest.String(): handler.New(
			func(_ context.Context, request appmessage.GetOrderRequest) (*appmessage.OrderResponse, error) {
				response, err := rpchandlers.HandleGetOrder(m.context, &request)
				return response, toRPCError(err)
			}),
		appmessage.CmdGetTipOrderRequest.String(): handler.New(
			func(_ context.Context) (*appmessage.GetTipOrderResponse, error) {
				response, err := rpchandlers.HandleGetTipOrder(m.context)
				return response, toRPCError(err)
			}),
		appmessage.CmdLinearizeRangeRequest.String(): handler.New(
			func(_ context.Context, request appmessage.LinearizeRangeRequest) (*appmessage.OrderResponse, error) {
				response, err := rpchandlers.HandleLinearizeRange(m.context, &request)
				return response, toRPCError(err)
			}),
		appmessage.CmdGetSnapshotRequest.String(): handler.New(
			func(_ context.Context, request appmessage.GetSnapshotRequest) (*appmessage.GetSnapshotResponse, error) {
				response, err := rpchandlers.HandleGetSnapshot(m.context, &request)
				return response, toRPCError(err)
			}),
		appmessage.CmdGetHealthRequest.String(): handler.New(
			func(_ context.Context) (*appmessage.GetHealthResponse, error) {
				response, err := rpchandlers.HandleGetHealth(m.context)
				return response, toRPCError(err)
			}),
	}
}

// meteredAssigner counts every request to a known method
type meteredAssigner struct {
	handler.Map
}

func (a meteredAssigner) Assign(ctx context.Context, method string) jrpc2.Handler {
	methodHandler := a.Map.Assign(ctx, method)
	if methodHandler == nil {
		return nil
	}
	return func(ctx context.Context, request *jrpc2.Request) (any, error) {
		metrics.RecordRPCRequest(method)
		log.Tracef("Received JSON-RPC request %s", method)
		return methodHandler(ctx, request)
	}
}
