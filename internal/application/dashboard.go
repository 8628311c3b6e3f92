package application

import (
	"errors"

	"github.com/TraderJoe97/StackFlow/internal/domain/project"
	"github.com/TraderJoe97/StackFlow/internal/domain/report"
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/types"
	"gorm.io/gorm"
)

const unknownRole = "Unknown Role"

type DashboardService struct {
	Repos *repository.Repos
}

func NewDashboardService(repos *repository.Repos) *DashboardService {
	return &DashboardService{Repos: repos}
}

type Dashboard struct {
	CurrentUserID uint               `json:"current_user_id"`
	Username      string             `json:"username"`
	Role          string             `json:"role"`
	Board         report.Board       `json:"board"`
	AssignedToMe  []ticket.Summary   `json:"assigned_to_me"`
	Projects      []project.Overview `json:"projects"`
}

func (s *DashboardService) Index(actor types.Actor) (Dashboard, error) {
	u, err := s.Repos.User.GetUserByID(actor.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Dashboard{}, ErrUserNotFound
	}
	if err != nil {
		return Dashboard{}, err
	}

	tickets, err := s.Repos.Ticket.ListSummaries()
	if err != nil {
		return Dashboard{}, err
	}
	projects, err := s.Repos.Project.ListProjectOverviews()
	if err != nil {
		return Dashboard{}, err
	}

	role := u.RoleTitle()
	if role == "" {
		role = unknownRole
	}
	mine := []ticket.Summary{}
	for _, t := range tickets {
		if t.AssignedToUserID != nil && *t.AssignedToUserID == u.ID {
			mine = append(mine, t)
		}
	}

	return Dashboard{
		CurrentUserID: u.ID,
		Username:      u.Username,
		Role:          role,
		Board:         report.BuildBoard(tickets),
		AssignedToMe:  mine,
		Projects:      projects,
	}, nil
}

func (s *DashboardService) Insights() (report.Counts, error) {
	tickets, err := s.Repos.Ticket.ListSummaries()
	if err != nil {
		return report.Counts{}, err
	}
	return report.CountTickets(tickets), nil
}

func (s *DashboardService) AssignedTickets(userID uint) ([]ticket.Summary, error) {
	return s.Repos.Ticket.ListSummariesByAssignee(userID)
}

func (s *DashboardService) ProjectsOverview() ([]project.Overview, error) {
	return s.Repos.Project.ListProjectOverviews()
}
