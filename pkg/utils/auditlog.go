package utils

import (
	"encoding/json"
	"log/slog"

	"github.com/TraderJoe97/StackFlow/internal/domain/audit"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/types"
)

// LogAuditWithConsole writes the audit entry in the background; failures are
// only logged.
var LogAuditWithConsole = func(actor types.Actor, action, resourceType, resourceID string, oldData, newData any, msg string, repo repository.AuditRepo) {
	if repo == nil {
		return
	}
	go func() {
		if err := LogAudit(actor, action, resourceType, resourceID, oldData, newData, msg, repo); err != nil {
			slog.Error("audit log write failed", "action", action, "resource", resourceType, "id", resourceID, "error", err)
		}
	}()
}

var LogAudit = func(
	actor types.Actor,
	action string,
	resourceType string,
	resourceID string,
	before any,
	after any,
	description string,
	repo repository.AuditRepo,
) error {
	var oldData, newData []byte
	var err error

	if before != nil {
		oldData, err = json.Marshal(before)
		if err != nil {
			slog.Warn("audit marshal old data failed", "error", err)
		}
	}
	if after != nil {
		newData, err = json.Marshal(after)
		if err != nil {
			slog.Warn("audit marshal new data failed", "error", err)
		}
	}

	return repo.CreateAuditLog(&audit.AuditLog{
		UserID:       actor.UserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldData:      oldData,
		NewData:      newData,
		IPAddress:    actor.IP,
		UserAgent:    actor.UserAgent,
		Description:  description,
	})
}
