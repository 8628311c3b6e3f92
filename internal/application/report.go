package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/domain/report"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/types"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
)

// Archiver stores report snapshots outside the database.
type Archiver interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

type ReportService struct {
	Repos    *repository.Repos
	Archiver Archiver
	now      func() time.Time
}

func NewReportService(repos *repository.Repos, archiver Archiver) *ReportService {
	return &ReportService{
		Repos:    repos,
		Archiver: archiver,
		now:      time.Now,
	}
}

type UserReports struct {
	Users []report.UserReport `json:"users"`
	Roles []user.Role         `json:"roles"`
}

func (s *ReportService) ProjectReports() ([]report.ProjectReport, error) {
	projects, err := s.Repos.Project.ListProjects()
	if err != nil {
		return nil, err
	}
	tickets, err := s.Repos.Ticket.ListSummaries()
	if err != nil {
		return nil, err
	}
	return report.BuildProjectReports(projects, tickets), nil
}

func (s *ReportService) UserReports() (UserReports, error) {
	users, err := s.Repos.User.ListUsers()
	if err != nil {
		return UserReports{}, err
	}
	tickets, err := s.Repos.Ticket.ListSummaries()
	if err != nil {
		return UserReports{}, err
	}
	roles, err := s.Repos.Role.ListRoles()
	if err != nil {
		return UserReports{}, err
	}
	return UserReports{Users: report.BuildUserReports(users, tickets), Roles: roles}, nil
}

// ArchiveProjectReports uploads a JSON snapshot of the project reports and
// returns the object key.
func (s *ReportService) ArchiveProjectReports(ctx context.Context, actor types.Actor) (string, error) {
	if s.Archiver == nil {
		return "", ErrArchiveDisabled
	}
	reports, err := s.ProjectReports()
	if err != nil {
		return "", err
	}

	generatedAt := s.now().UTC()
	data, err := json.Marshal(struct {
		GeneratedAt time.Time              `json:"generated_at"`
		GeneratedBy string                 `json:"generated_by"`
		Projects    []report.ProjectReport `json:"projects"`
	}{generatedAt, actor.Username, reports})
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	key := fmt.Sprintf("project-reports/%s.json", generatedAt.Format("20060102T150405Z"))
	if err := s.Archiver.Put(ctx, key, data, "application/json"); err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}

	utils.LogAuditWithConsole(actor, "archive", "report", key, nil, nil, fmt.Sprintf("%d projects", len(reports)), s.Repos.Audit)
	return key, nil
}
