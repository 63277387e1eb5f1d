package rpc

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/domain"
	"github.com/argusdag/argusd/domain/consensus"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/dagconfig"
	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *dagconfig.Params) {
	params := dagconfig.SimnetParams.WithK(3)
	domainInstance, err := domain.New(&consensus.Config{Params: *params}, nil)
	require.NoError(t, err)
	return NewManager(domainInstance), params
}

func newDirectClient(t *testing.T, manager *Manager) *jrpc2.Client {
	clientChannel, serverChannel := channel.Direct()
	server := jrpc2.NewServer(manager.Assigner(), nil).Start(serverChannel)
	client := jrpc2.NewClient(clientChannel, nil)
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})
	return client
}

func call(t *testing.T, client *jrpc2.Client, method appmessage.MessageCommand, params any, result any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.CallResult(ctx, method.String(), params, result)
}

func requireRPCErrorCode(t *testing.T, err error, expectedCode jrpc2.Code) *jrpc2.Error {
	var rpcError *jrpc2.Error
	require.ErrorAs(t, err, &rpcError)
	require.Equal(t, expectedCode, rpcError.Code, "unexpected error: %s", rpcError.Message)
	return rpcError
}

func TestJSONRPCRoundTrip(t *testing.T) {
	manager, params := newTestManager(t)
	client := newDirectClient(t, manager)

	submitted := &appmessage.SubmitBlockResponse{}
	err := call(t, client, appmessage.CmdSubmitBlockRequest,
		appmessage.NewSubmitBlockRequest([]string{params.GenesisHash.String()}, 1), submitted)
	require.NoError(t, err)
	require.True(t, submitted.IsNew)
	require.Equal(t, uint64(1), submitted.BlueScore)

	block := &appmessage.GetBlockResponse{}
	err = call(t, client, appmessage.CmdGetBlockRequest, appmessage.NewGetBlockRequest(submitted.Hash), block)
	require.NoError(t, err)
	require.Equal(t, []string{params.GenesisHash.String()}, block.Parents)
	require.True(t, block.IsChainBlock)

	tips := &appmessage.GetTipsResponse{}
	require.NoError(t, call(t, client, appmessage.CmdGetTipsRequest, nil, tips))
	require.Len(t, tips.Tips, 1)
	require.Equal(t, submitted.Hash, tips.Tips[0].Hash)

	tipOrder := &appmessage.GetTipOrderResponse{}
	require.NoError(t, call(t, client, appmessage.CmdGetTipOrderRequest, nil, tipOrder))
	require.Equal(t, []string{params.GenesisHash.String(), submitted.Hash}, tipOrder.Order)
	require.Equal(t, uint64(2), tipOrder.VirtualBlueScore)

	order := &appmessage.OrderResponse{}
	require.NoError(t, call(t, client, appmessage.CmdGetOrderRequest,
		appmessage.NewGetOrderRequest("", submitted.Hash), order))
	require.Equal(t, tipOrder.Order, order.Order)

	linearized := &appmessage.OrderResponse{}
	require.NoError(t, call(t, client, appmessage.CmdLinearizeRangeRequest,
		appmessage.NewLinearizeRangeRequest(0, 1), linearized))
	require.Equal(t, tipOrder.Order, linearized.Order)

	snapshot := &appmessage.GetSnapshotResponse{}
	require.NoError(t, call(t, client, appmessage.CmdGetSnapshotRequest, nil, snapshot))
	require.Len(t, snapshot.Blocks, 2)

	smartSubmitted := &appmessage.SubmitBlockResponse{}
	require.NoError(t, call(t, client, appmessage.CmdSmartSubmitRequest, nil, smartSubmitted))
	require.Equal(t, uint64(2), smartSubmitted.BlueScore)
	require.Equal(t, submitted.Hash, smartSubmitted.SelectedParent)

	health := &appmessage.GetHealthResponse{}
	require.NoError(t, call(t, client, appmessage.CmdGetHealthRequest, nil, health))
	require.Equal(t, appmessage.HealthStatusOK, health.Status)
	require.Equal(t, uint64(3), health.BlockCount)
}

func TestJSONRPCErrorCodes(t *testing.T) {
	manager, params := newTestManager(t)
	client := newDirectClient(t, manager)

	unknown := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{3})
	err := call(t, client, appmessage.CmdSubmitBlockRequest,
		appmessage.NewSubmitBlockRequest([]string{unknown.String()}, 1), &appmessage.SubmitBlockResponse{})
	rpcError := requireRPCErrorCode(t, err, appmessage.RPCErrorCodeUnknownParent)
	data := &appmessage.UnknownParentErrorData{}
	require.NoError(t, json.Unmarshal(rpcError.Data, data))
	require.Equal(t, []string{unknown.String()}, data.MissingParents)

	err = call(t, client, appmessage.CmdGetBlockRequest,
		appmessage.NewGetBlockRequest(unknown.String()), &appmessage.GetBlockResponse{})
	requireRPCErrorCode(t, err, appmessage.RPCErrorCodeNotFound)

	err = call(t, client, appmessage.CmdGetOrderRequest,
		appmessage.NewGetOrderRequest("", unknown.String()), &appmessage.OrderResponse{})
	requireRPCErrorCode(t, err, appmessage.RPCErrorCodeNotFound)

	first := &appmessage.SubmitBlockResponse{}
	require.NoError(t, call(t, client, appmessage.CmdSubmitBlockRequest,
		appmessage.NewSubmitBlockRequest([]string{params.GenesisHash.String()}, 1), first))
	second := &appmessage.SubmitBlockResponse{}
	require.NoError(t, call(t, client, appmessage.CmdSubmitBlockRequest,
		appmessage.NewSubmitBlockRequest([]string{params.GenesisHash.String()}, 2), second))
	err = call(t, client, appmessage.CmdGetOrderRequest,
		appmessage.NewGetOrderRequest(first.Hash, second.Hash), &appmessage.OrderResponse{})
	requireRPCErrorCode(t, err, appmessage.RPCErrorCodeDisconnected)

	err = call(t, client, appmessage.CmdSubmitBlockRequest,
		appmessage.NewSubmitBlockRequest(nil, 1), &appmessage.SubmitBlockResponse{})
	requireRPCErrorCode(t, err, appmessage.RPCErrorCodeRuleError)

	err = call(t, client, appmessage.CmdLinearizeRangeRequest,
		appmessage.NewLinearizeRangeRequest(5, 1), &appmessage.OrderResponse{})
	requireRPCErrorCode(t, err, appmessage.RPCErrorCodeRuleError)

	err = call(t, client, appmessage.CmdGetBlockRequest,
		appmessage.NewGetBlockRequest("zz"), &appmessage.GetBlockResponse{})
	requireRPCErrorCode(t, err, jrpc2.InvalidParams)

	err = call(t, client, appmessage.CmdGetSnapshotRequest,
		appmessage.NewGetSnapshotRequest(-1), &appmessage.GetSnapshotResponse{})
	requireRPCErrorCode(t, err, jrpc2.InvalidParams)

	err = call(t, client, "update_k", map[string]int{"new_k": 5}, nil)
	requireRPCErrorCode(t, err, jrpc2.MethodNotFound)
}
