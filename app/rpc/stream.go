package rpc

import (
	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/app/rpc/rpccontext"
	"github.com/argusdag/argusd/infrastructure/network/grpcserver"
	"github.com/argusdag/argusd/util/panics"
	"github.com/pkg/errors"
)

// NotifyBlockAdded streams a notification for every block added to the DAG
// until the client goes away or the manager is closed
func (m *Manager) NotifyBlockAdded(_ *appmessage.NotifyBlockAddedRequest, stream grpcserver.BlockAddedStream) error {
	defer panics.HandlePanic(log, "rpc.Manager.NotifyBlockAdded", nil)

	notificationManager := m.context.NotificationManager
	listener := notificationManager.AddListener(stream.Send)
	defer notificationManager.RemoveListener(listener)

	spawn("rpc.Manager.NotifyBlockAdded-waitForClient", func() {
		<-stream.Context().Done()
		notificationManager.RemoveListener(listener)
	})

	log.Debugf("Opened a block-added stream")
	for {
		err := listener.ProcessNextNotification()
		if errors.Is(err, rpccontext.ErrListenerClosed) {
			log.Debugf("Closed a block-added stream")
			return nil
		}
		if err != nil {
			return err
		}
	}
}
