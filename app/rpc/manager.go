package rpc

import (
	"github.com/argusdag/argusd/app/rpc/rpccontext"
	"github.com/argusdag/argusd/domain"
)

// Manager is an RPC manager
type Manager struct {
	context *rpccontext.Context
}

// NewManager creates a new RPC Manager
func NewManager(domain domain.Domain) *Manager {
	return &Manager{
		context: rpccontext.NewContext(domain),
	}
}

// Context returns the context shared by the manager's handlers
func (m *Manager) Context() *rpccontext.Context {
	return m.context
}

// Close ends every open notification stream
func (m *Manager) Close() {
	m.context.NotificationManager.Close()
}
