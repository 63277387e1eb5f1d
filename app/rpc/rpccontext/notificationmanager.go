package rpccontext

import (
	"sync"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/pkg/errors"
)

// ListenerBufferSize is the number of notifications a listener may fall
// behind by before it is dropped
const ListenerBufferSize = 256

// ErrListenerClosed is returned from ProcessNextNotification once the
// listener was removed from its NotificationManager
var ErrListenerClosed = errors.New("notification listener closed")

// NotificationManager manages notifications for the RPC
type NotificationManager struct {
	sync.RWMutex
	listeners map[*NotificationListener]struct{}
}

// OnBlockAddedListener is a listener function for when a block is added to the DAG
type OnBlockAddedListener func(notification *appmessage.BlockAddedNotification) error

// NotificationListener represents a registered RPC notification listener
type NotificationListener struct {
	onBlockAddedListener         OnBlockAddedListener
	onBlockAddedNotificationChan chan *appmessage.BlockAddedNotification

	closeOnce sync.Once
	closeChan chan struct{}
}

// NewNotificationManager creates a new NotificationManager
func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		listeners: make(map[*NotificationListener]struct{}),
	}
}

// AddListener registers a new listener that passes block-added notifications
// to onBlockAdded. A nil onBlockAdded registers a listener that receives nothing.
func (nm *NotificationManager) AddListener(onBlockAdded OnBlockAddedListener) *NotificationListener {
	nm.Lock()
	defer nm.Unlock()

	listener := newNotificationListener(onBlockAdded)
	nm.listeners[listener] = struct{}{}
	return listener
}

// RemoveListener unregisters and closes the given listener.
// Removing a listener twice is a no-op.
func (nm *NotificationManager) RemoveListener(listener *NotificationListener) {
	nm.Lock()
	defer nm.Unlock()

	nm.removeListener(listener)
}

func (nm *NotificationManager) removeListener(listener *NotificationListener) {
	_, ok := nm.listeners[listener]
	if !ok {
		return
	}
	listener.close()
	delete(nm.listeners, listener)
}

// Close removes every registered listener
func (nm *NotificationManager) Close() {
	nm.Lock()
	defer nm.Unlock()

	for listener := range nm.listeners {
		nm.removeListener(listener)
	}
}

// ListenerCount returns the number of registered listeners
func (nm *NotificationManager) ListenerCount() int {
	nm.RLock()
	defer nm.RUnlock()

	return len(nm.listeners)
}

// NotifyBlockAdded notifies the notification manager that a block has been added to the DAG.
// It never blocks: listeners whose buffer is full are dropped.
func (nm *NotificationManager) NotifyBlockAdded(notification *appmessage.BlockAddedNotification) {
	nm.Lock()
	defer nm.Unlock()

	for listener := range nm.listeners {
		if listener.onBlockAddedListener == nil {
			continue
		}
		select {
		case listener.onBlockAddedNotificationChan <- notification:
		default:
			log.Warnf("Dropping a notification listener that fell %d notifications behind",
				ListenerBufferSize)
			nm.removeListener(listener)
		}
	}
}

func newNotificationListener(onBlockAdded OnBlockAddedListener) *NotificationListener {
	return &NotificationListener{
		onBlockAddedListener:         onBlockAdded,
		onBlockAddedNotificationChan: make(chan *appmessage.BlockAddedNotification, ListenerBufferSize),
		closeChan:                    make(chan struct{}),
	}
}

// ProcessNextNotification waits until a notification arrives and processes it.
// It returns ErrListenerClosed once the listener is closed.
func (nl *NotificationListener) ProcessNextNotification() error {
	select {
	case <-nl.closeChan:
		return errors.WithStack(ErrListenerClosed)
	default:
	}

	select {
	case notification := <-nl.onBlockAddedNotificationChan:
		return nl.onBlockAddedListener(notification)
	case <-nl.closeChan:
		return errors.WithStack(ErrListenerClosed)
	}
}

func (nl *NotificationListener) close() {
	nl.closeOnce.Do(func() {
		close(nl.closeChan)
	})
}
