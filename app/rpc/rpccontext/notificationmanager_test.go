package rpccontext

import (
	"testing"
	"time"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func collectingListener(nm *NotificationManager) (*NotificationListener, *[]*appmessage.BlockAddedNotification) {
	received := make([]*appmessage.BlockAddedNotification, 0)
	listener := nm.AddListener(func(notification *appmessage.BlockAddedNotification) error {
		received = append(received, notification)
		return nil
	})
	return listener, &received
}

func TestNotifyBlockAddedReachesEveryListener(t *testing.T) {
	defer goleak.VerifyNone(t)

	nm := NewNotificationManager()
	first, firstReceived := collectingListener(nm)
	second, secondReceived := collectingListener(nm)
	require.Equal(t, 2, nm.ListenerCount())

	notification := &appmessage.BlockAddedNotification{Hash: "aa", BlueScore: 1}
	nm.NotifyBlockAdded(notification)

	require.NoError(t, first.ProcessNextNotification())
	require.NoError(t, second.ProcessNextNotification())
	require.Equal(t, []*appmessage.BlockAddedNotification{notification}, *firstReceived)
	require.Equal(t, []*appmessage.BlockAddedNotification{notification}, *secondReceived)
}

func TestNotifyBlockAddedSkipsListenersWithoutHandler(t *testing.T) {
	nm := NewNotificationManager()
	listener := nm.AddListener(nil)

	for i := 0; i < ListenerBufferSize+1; i++ {
		nm.NotifyBlockAdded(&appmessage.BlockAddedNotification{})
	}
	require.Equal(t, 1, nm.ListenerCount())
	nm.RemoveListener(listener)
}

func TestNotifyBlockAddedDropsSlowListener(t *testing.T) {
	nm := NewNotificationManager()
	slow, _ := collectingListener(nm)
	fast, fastReceived := collectingListener(nm)

	for i := 0; i < ListenerBufferSize+1; i++ {
		nm.NotifyBlockAdded(&appmessage.BlockAddedNotification{BlueScore: uint64(i)})
		if i < ListenerBufferSize {
			require.NoError(t, fast.ProcessNextNotification())
		}
	}

	require.Equal(t, 1, nm.ListenerCount())
	require.Len(t, *fastReceived, ListenerBufferSize)

	err := slow.ProcessNextNotification()
	require.True(t, errors.Is(err, ErrListenerClosed), "unexpected error: %+v", err)

	require.NoError(t, fast.ProcessNextNotification())
	require.Len(t, *fastReceived, ListenerBufferSize+1)
}

func TestRemoveListenerReleasesWaitingProcessor(t *testing.T) {
	defer goleak.VerifyNone(t)

	nm := NewNotificationManager()
	listener, _ := collectingListener(nm)

	done := make(chan error)
	go func() {
		done <- listener.ProcessNextNotification()
	}()

	nm.RemoveListener(listener)
	nm.RemoveListener(listener)
	require.Equal(t, 0, nm.ListenerCount())

	select {
	case err := <-done:
		require.True(t, errors.Is(err, ErrListenerClosed), "unexpected error: %+v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("ProcessNextNotification did not return after RemoveListener")
	}
}

func TestListenerHandlerErrorIsReturned(t *testing.T) {
	nm := NewNotificationManager()
	handlerErr := errors.New("stream broken")
	listener := nm.AddListener(func(*appmessage.BlockAddedNotification) error {
		return handlerErr
	})

	nm.NotifyBlockAdded(&appmessage.BlockAddedNotification{})
	require.Equal(t, handlerErr, listener.ProcessNextNotification())
}

func TestCloseRemovesEveryListener(t *testing.T) {
	nm := NewNotificationManager()
	first, _ := collectingListener(nm)
	second, _ := collectingListener(nm)

	nm.Close()
	require.Equal(t, 0, nm.ListenerCount())
	for _, listener := range []*NotificationListener{first, second} {
		err := listener.ProcessNextNotification()
		require.True(t, errors.Is(err, ErrListenerClosed), "unexpected error: %+v", err)
	}
}
