package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/domain/project"
	"github.com/TraderJoe97/StackFlow/internal/domain/report"
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/internal/notify"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/types"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"gorm.io/gorm"
)

type ProjectService struct {
	Repos     *repository.Repos
	Publisher notify.Publisher
	now       func() time.Time
}

func NewProjectService(repos *repository.Repos, publisher notify.Publisher) *ProjectService {
	if publisher == nil {
		publisher = notify.Discard
	}
	return &ProjectService{
		Repos:     repos,
		Publisher: publisher,
		now:       time.Now,
	}
}

// ProjectDetails is a project with its tickets and their status counts.
type ProjectDetails struct {
	project.Project
	CreatedBy string           `json:"created_by"`
	Counts    report.Counts    `json:"counts"`
	Tickets   []ticket.Summary `json:"tickets"`
}

func projectResource(id uint) string {
	return fmt.Sprintf("p_id=%d", id)
}

func (s *ProjectService) List() ([]project.Overview, error) {
	return s.Repos.Project.ListProjectOverviews()
}

func (s *ProjectService) load(id uint) (project.Project, error) {
	p, err := s.Repos.Project.GetProjectByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrProjectNotFound
	}
	return p, err
}

func (s *ProjectService) Get(id uint) (ProjectDetails, error) {
	p, err := s.load(id)
	if err != nil {
		return ProjectDetails{}, err
	}
	tickets, err := s.Repos.Ticket.ListSummariesByProject(id)
	if err != nil {
		return ProjectDetails{}, err
	}

	d := ProjectDetails{Project: p, Tickets: tickets, Counts: report.CountTickets(tickets)}
	if creator, err := s.Repos.User.GetUserByID(p.CreatedByUserID); err == nil {
		d.CreatedBy = creator.Username
	}
	return d, nil
}

func validateDates(v *ValidationError, start, end string) (*time.Time, *time.Time) {
	startDate, err := utils.ParseDate(start)
	if err != nil {
		v.Add("start_date", "Start date must be a date (YYYY-MM-DD).")
	}
	endDate, err := utils.ParseDate(end)
	if err != nil {
		v.Add("end_date", "End date must be a date (YYYY-MM-DD).")
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		v.Add("end_date", "End date cannot be before the start date.")
	}
	return startDate, endDate
}

func (s *ProjectService) Create(actor types.Actor, input project.CreateProjectDTO) (project.Project, error) {
	v := &ValidationError{}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		v.Add("project_name", "Project name is required.")
	}
	status, ok := project.ParseStatus(input.Status)
	if !ok {
		v.Add("status", "Invalid project status.")
	}
	start, end := validateDates(v, input.StartDate, input.EndDate)
	if err := v.OrNil(); err != nil {
		return project.Project{}, err
	}

	p := project.Project{
		Name:            name,
		Description:     strings.TrimSpace(input.Description),
		StartDate:       start,
		EndDate:         end,
		Status:          status,
		CreatedByUserID: actor.UserID,
		CreatedAt:       s.now(),
		Version:         1,
	}
	if err := s.Repos.Project.CreateProject(&p); err != nil {
		return project.Project{}, err
	}

	utils.LogAuditWithConsole(actor, "create", "project", projectResource(p.ID), nil, p, "", s.Repos.Audit)
	s.Publisher.Publish(notify.ProjectEvent(notify.ActionCreated, p.ID))
	return p, nil
}

// Update applies the non-nil fields of input. input.Version must match the
// stored version.
func (s *ProjectService) Update(actor types.Actor, id uint, input project.UpdateProjectDTO) (project.Project, error) {
	p, err := s.load(id)
	if err != nil {
		return project.Project{}, err
	}
	before := p

	v := &ValidationError{}
	if input.Name != nil {
		p.Name = strings.TrimSpace(*input.Name)
		if p.Name == "" {
			v.Add("project_name", "Project name is required.")
		}
	}
	if input.Description != nil {
		p.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		status, ok := project.ParseStatus(*input.Status)
		if !ok {
			v.Add("status", "Invalid project status.")
		}
		p.Status = status
	}
	start, end := "", ""
	if p.StartDate != nil {
		start = p.StartDate.Format(utils.DateLayout)
	}
	if p.EndDate != nil {
		end = p.EndDate.Format(utils.DateLayout)
	}
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}
	p.StartDate, p.EndDate = validateDates(v, start, end)
	if err := v.OrNil(); err != nil {
		return project.Project{}, err
	}

	p.Version = input.Version
	if err := s.Repos.Project.UpdateProject(&p); err != nil {
		if !errors.Is(err, repository.ErrStaleWrite) {
			return project.Project{}, err
		}
		if _, lookupErr := s.load(id); errors.Is(lookupErr, ErrProjectNotFound) {
			return project.Project{}, ErrProjectNotFound
		}
		return project.Project{}, ErrConflict
	}

	utils.LogAuditWithConsole(actor, "update", "project", projectResource(id), before, p, "", s.Repos.Audit)
	s.Publisher.Publish(notify.ProjectEvent(notify.ActionUpdated, id))
	return p, nil
}

// Delete removes the project together with its tickets and their comments,
// and reports how many tickets went with it.
func (s *ProjectService) Delete(actor types.Actor, id uint) (int64, error) {
	var (
		removed project.Project
		count   int64
	)
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		p, err := tx.Project.GetProjectByID(id)
		if err != nil {
			return err
		}
		removed = p
		if _, err := tx.Comment.DeleteByProject(id); err != nil {
			return err
		}
		if count, err = tx.Ticket.DeleteByProject(id); err != nil {
			return err
		}
		return tx.Project.DeleteProject(id)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrProjectNotFound
	}
	if err != nil {
		return 0, err
	}

	desc := fmt.Sprintf("deleted with %d tickets", count)
	utils.LogAuditWithConsole(actor, "delete", "project", projectResource(id), removed, nil, desc, s.Repos.Audit)
	s.Publisher.Publish(notify.ProjectEvent(notify.ActionDeleted, id))
	return count, nil
}
