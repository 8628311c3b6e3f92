package application

import (
	"time"

	"github.com/TraderJoe97/StackFlow/internal/domain/audit"
	"github.com/TraderJoe97/StackFlow/internal/repository"
)

type AuditService struct {
	Repos *repository.Repos
	now   func() time.Time
}

func NewAuditService(repos *repository.Repos) *AuditService {
	return &AuditService{Repos: repos, now: time.Now}
}

func (s *AuditService) QueryAuditLogs(params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	return s.Repos.Audit.GetAuditLogs(params)
}

// CleanupOldLogs removes entries older than retentionDays.
func (s *AuditService) CleanupOldLogs(retentionDays int) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -retentionDays)
	return s.Repos.Audit.DeleteOlderThan(cutoff)
}
