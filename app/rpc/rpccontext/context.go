package rpccontext

import (
	"sync"
	"time"

	"github.com/argusdag/argusd/domain"
)

// Context represents the RPC context
type Context struct {
	Domain    domain.Domain
	StartTime time.Time

	NotificationManager *NotificationManager

	// held from insertion until the block's notification is queued, so
	// listeners see blocks in insertion order
	submitLock sync.Mutex
}

// NewContext creates a new RPC context
func NewContext(domain domain.Domain) *Context {
	return &Context{
		Domain:              domain,
		StartTime:           time.Now(),
		NotificationManager: NewNotificationManager(),
	}
}

// Uptime returns how long ago the context was created
func (ctx *Context) Uptime() time.Duration {
	return time.Since(ctx.StartTime)
}
