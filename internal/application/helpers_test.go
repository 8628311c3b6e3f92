package application

import (
	"testing"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/types"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
)

var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// disableAudit swaps the background audit writer for a no-op.
func disableAudit(t *testing.T) {
	t.Helper()
	orig := utils.LogAuditWithConsole
	utils.LogAuditWithConsole = func(types.Actor, string, string, string, any, any, string, repository.AuditRepo) {}
	t.Cleanup(func() { utils.LogAuditWithConsole = orig })
}

func uintPtr(v uint) *uint { return &v }

func intPtr(v int) *int { return &v }
