package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristianccgg/letranido-backend/internal/service"
	"github.com/cristianccgg/letranido-backend/pkg/redis"
	"github.com/cristianccgg/letranido-backend/pkg/response"
)

// maintenanceCacheTTL bounds how stale the gate's view of the flag can
// get when the invalidation channel is unavailable.
const maintenanceCacheTTL = 15 * time.Second

// MaintenanceGate answers 503 on every non-exempt route while the
// maintenance flag is active. It is a read-only observer of the
// singleton: state is cached briefly and refetched on expiry or when
// the redis invalidation channel fires — never computed locally.
type MaintenanceGate struct {
	svc    service.MaintenanceService
	logger *zap.Logger

	mu        sync.RWMutex
	active    bool
	message   string
	fetchedAt time.Time
}

// NewMaintenanceGate creates the gate and, when rdb is non-nil, starts
// listening for invalidations until ctx is cancelled.
func NewMaintenanceGate(ctx context.Context, svc service.MaintenanceService, rdb *redis.Client, logger *zap.Logger) *MaintenanceGate {
	g := &MaintenanceGate{svc: svc, logger: logger}

	if rdb != nil {
		go func() {
			for range rdb.SubscribeMaintenanceChanged(ctx) {
				g.invalidate()
			}
		}()
	}

	return g
}

func (g *MaintenanceGate) invalidate() {
	g.mu.Lock()
	g.fetchedAt = time.Time{}
	g.mu.Unlock()
}

// state returns the cached flag, refetching when stale. A failed read
// keeps the previous state rather than flapping the gate.
func (g *MaintenanceGate) state(ctx context.Context) (bool, string) {
	g.mu.RLock()
	fresh := time.Since(g.fetchedAt) < maintenanceCacheTTL
	active, message := g.active, g.message
	g.mu.RUnlock()
	if fresh {
		return active, message
	}

	status, err := g.svc.Status(ctx)
	if err != nil {
		g.logger.Warn("refreshing maintenance state failed, keeping previous", zap.Error(err))
		return active, message
	}

	g.mu.Lock()
	g.active = status.IsActive
	g.message = status.Message
	g.fetchedAt = time.Now()
	active, message = g.active, g.message
	g.mu.Unlock()

	return active, message
}

// Handler is the gin middleware. Exempt route groups must be registered
// before it or simply not use it.
func (g *MaintenanceGate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		active, message := g.state(c.Request.Context())
		if active {
			response.ServiceUnavailable(c, 10006, message)
			c.Abort()
			return
		}
		c.Next()
	}
}
