package main

import (
	"testing"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	health    *appmessage.GetHealthResponse
	healthErr error
	lastFrom  string
	lastTo    string
}

func (f *fakeClient) SubmitBlock(parents []string, timestamp int64) (*appmessage.SubmitBlockResponse, error) {
	return &appmessage.SubmitBlockResponse{Hash: "new", IsNew: true}, nil
}

func (f *fakeClient) GetBlock(hash string) (*appmessage.GetBlockResponse, error) {
	return &appmessage.GetBlockResponse{Hash: hash}, nil
}

func (f *fakeClient) GetTips() (*appmessage.GetTipsResponse, error) {
	return &appmessage.GetTipsResponse{}, nil
}

func (f *fakeClient) GetOrder(from string, to string) (*appmessage.OrderResponse, error) {
	f.lastFrom, f.lastTo = from, to
	return &appmessage.OrderResponse{Order: []string{to}}, nil
}

func (f *fakeClient) GetTipOrder() (*appmessage.GetTipOrderResponse, error) {
	return &appmessage.GetTipOrderResponse{}, nil
}

func (f *fakeClient) LinearizeRange(fromScore uint64, toScore uint64) (*appmessage.OrderResponse, error) {
	return &appmessage.OrderResponse{}, nil
}

func (f *fakeClient) GetSnapshot(n int) (*appmessage.GetSnapshotResponse, error) {
	return &appmessage.GetSnapshotResponse{}, nil
}

func (f *fakeClient) GetHealth() (*appmessage.GetHealthResponse, error) {
	return f.health, f.healthErr
}

func TestCheck(t *testing.T) {
	client := &fakeClient{health: &appmessage.GetHealthResponse{Status: appmessage.HealthStatusOK}}
	_, err := runCommand(client, checkSubCmd, &checkConfig{})
	require.NoError(t, err)

	client.health = &appmessage.GetHealthResponse{Status: appmessage.HealthStatusFaulted, IntegrityFault: "broken"}
	_, err = runCommand(client, checkSubCmd, &checkConfig{})
	require.ErrorIs(t, err, errUnhealthy)

	client.health, client.healthErr = nil, errors.New("connection refused")
	_, err = runCommand(client, checkSubCmd, &checkConfig{})
	require.Error(t, err)
	require.NotErrorIs(t, err, errUnhealthy)
}

func TestRunCommandPassesArguments(t *testing.T) {
	client := &fakeClient{}
	conf := &orderConfig{From: "a"}
	conf.Args.To = "b"
	response, err := runCommand(client, orderSubCmd, conf)
	require.NoError(t, err)
	require.Equal(t, "a", client.lastFrom)
	require.Equal(t, "b", client.lastTo)
	require.Equal(t, []string{"b"}, response.(*appmessage.OrderResponse).Order)

	blockConf := &blockConfig{}
	blockConf.Args.Hash = "h"
	response, err = runCommand(client, blockSubCmd, blockConf)
	require.NoError(t, err)
	require.Equal(t, "h", response.(*appmessage.GetBlockResponse).Hash)

	_, err = runCommand(client, "update-k", nil)
	require.Error(t, err)
}
