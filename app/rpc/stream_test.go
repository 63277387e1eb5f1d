package rpc

import (
	"context"
	"testing"
	"time"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
	"github.com/argusdag/argusd/infrastructure/network/grpcserver"
	"github.com/argusdag/argusd/infrastructure/network/rpcclient"
	"github.com/stretchr/testify/require"
)

func TestNotifyBlockAddedStream(t *testing.T) {
	manager, params := newTestManager(t)

	server, err := grpcserver.NewGRPCServer("127.0.0.1:0", manager)
	require.NoError(t, err)
	server.Start()
	defer server.Stop()

	client, err := rpcclient.NewStreamClient(server.Address())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	received := make(chan *appmessage.BlockAddedNotification)
	streamDone := make(chan error, 1)
	go func() {
		streamDone <- client.NotifyBlockAdded(ctx, func(notification *appmessage.BlockAddedNotification) error {
			received <- notification
			return nil
		})
	}()

	require.Eventually(t, func() bool {
		return manager.Context().NotificationManager.ListenerCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	header := blockheader.NewImmutableBlockHeader([]*externalapi.DomainHash{params.GenesisHash}, 1)
	result, err := manager.Context().SubmitBlock(header)
	require.NoError(t, err)

	select {
	case notification := <-received:
		require.Equal(t, result.Record.Hash.String(), notification.Hash)
		require.Equal(t, uint64(1), notification.BlueScore)
		require.Equal(t, params.GenesisHash.String(), notification.SelectedParent)
		require.Equal(t, []string{result.Record.Hash.String()}, notification.Tips)
		require.Equal(t, uint64(2), notification.VirtualBlueScore)
	case <-ctx.Done():
		t.Fatalf("timed out waiting for a block-added notification")
	}

	manager.Close()
	select {
	case err := <-streamDone:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatalf("timed out waiting for the stream to end")
	}
	require.Equal(t, 0, manager.Context().NotificationManager.ListenerCount())
}

func TestNotifyBlockAddedStreamEndsWhenClientCancels(t *testing.T) {
	manager, _ := newTestManager(t)

	server, err := grpcserver.NewGRPCServer("127.0.0.1:0", manager)
	require.NoError(t, err)
	server.Start()
	defer server.Stop()

	client, err := rpcclient.NewStreamClient(server.Address())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	streamDone := make(chan error, 1)
	go func() {
		streamDone <- client.NotifyBlockAdded(ctx, func(*appmessage.BlockAddedNotification) error {
			return nil
		})
	}()

	require.Eventually(t, func() bool {
		return manager.Context().NotificationManager.ListenerCount() == 1
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-streamDone:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for the stream to end")
	}
	require.Eventually(t, func() bool {
		return manager.Context().NotificationManager.ListenerCount() == 0
	}, 5*time.Second, 10*time.Millisecond)
}
