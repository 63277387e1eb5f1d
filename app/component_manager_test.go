package app

import (
	"context"
	"testing"
	"time"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/domain/dagconfig"
	"github.com/argusdag/argusd/infrastructure/config"
	"github.com/argusdag/argusd/infrastructure/network/rpcclient"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Flags: &config.Flags{
			K:            int(dagconfig.MainnetParams.K),
			RPCListen:    "127.0.0.1:0",
			StreamListen: "127.0.0.1:0",
			DbType:       config.DbTypeMemory,
			NetworkFlags: config.NetworkFlags{
				ActiveNetParams: &dagconfig.MainnetParams,
			},
		},
	}
}

func TestComponentManagerServesRPCAndStreams(t *testing.T) {
	componentManager, err := NewComponentManager(testConfig(), nil)
	require.NoError(t, err)
	componentManager.Start()
	defer componentManager.Stop()

	rpcClient, err := rpcclient.NewRPCClient(componentManager.RPCAddress())
	require.NoError(t, err)
	defer rpcClient.Close()

	health, err := rpcClient.GetHealth()
	require.NoError(t, err)
	require.Equal(t, appmessage.HealthStatusOK, health.Status)
	require.EqualValues(t, 1, health.BlockCount)

	streamClient, err := rpcclient.NewStreamClient(componentManager.StreamAddress())
	require.NoError(t, err)
	defer streamClient.Close()

	notifications := make(chan *appmessage.BlockAddedNotification, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = streamClient.NotifyBlockAdded(ctx, func(notification *appmessage.BlockAddedNotification) error {
			notifications <- notification
			return nil
		})
	}()
	require.Eventually(t, func() bool {
		return componentManager.rpcManager.Context().NotificationManager.ListenerCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	genesisHash := dagconfig.MainnetParams.GenesisHash.String()
	submitted, err := rpcClient.SubmitBlock([]string{genesisHash}, 1)
	require.NoError(t, err)
	require.True(t, submitted.IsNew)

	select {
	case notification := <-notifications:
		require.Equal(t, submitted.Hash, notification.Hash)
		require.EqualValues(t, 1, notification.BlueScore)
	case <-time.After(5 * time.Second):
		t.Fatal("no notification received")
	}
}

func TestComponentManagerStopEndsStreams(t *testing.T) {
	componentManager, err := NewComponentManager(testConfig(), nil)
	require.NoError(t, err)
	componentManager.Start()

	streamClient, err := rpcclient.NewStreamClient(componentManager.StreamAddress())
	require.NoError(t, err)
	defer streamClient.Close()

	streamDone := make(chan error, 1)
	go func() {
		streamDone <- streamClient.NotifyBlockAdded(context.Background(),
			func(*appmessage.BlockAddedNotification) error { return nil })
	}()
	require.Eventually(t, func() bool {
		return componentManager.rpcManager.Context().NotificationManager.ListenerCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		componentManager.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
	select {
	case err := <-streamDone:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not end")
	}
}
