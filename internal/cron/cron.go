package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/application"
)

const cleanupInterval = 24 * time.Hour

// Cleanup drops audit entries past retention and revoked sessions that
// have expired anyway.
type Cleanup struct {
	Audit         *application.AuditService
	Users         *application.UserService
	RetentionDays int
	Interval      time.Duration
}

func NewCleanup(svc *application.Services, retentionDays int) *Cleanup {
	return &Cleanup{
		Audit:         svc.Audit,
		Users:         svc.User,
		RetentionDays: retentionDays,
		Interval:      cleanupInterval,
	}
}

// RunOnce performs one cleanup pass. Failures are logged, not returned.
func (c *Cleanup) RunOnce() {
	if n, err := c.Audit.CleanupOldLogs(c.RetentionDays); err != nil {
		slog.Error("audit log cleanup failed", "error", err)
	} else {
		slog.Info("audit log cleanup completed", "removed", n, "retention_days", c.RetentionDays)
	}

	if n, err := c.Users.PurgeRevokedSessions(); err != nil {
		slog.Error("revoked session purge failed", "error", err)
	} else if n > 0 {
		slog.Info("revoked sessions purged", "removed", n)
	}
}

// Start runs a pass immediately and then every Interval until ctx is done.
func (c *Cleanup) Start(ctx context.Context) {
	go func() {
		slog.Info("starting background cleanup task", "retention_days", c.RetentionDays, "interval", c.Interval)
		c.RunOnce()

		ticker := time.NewTicker(c.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.RunOnce()
			}
		}
	}()
}
