package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/internal/notify"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/types"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"gorm.io/gorm"
)

type TicketService struct {
	Repos     *repository.Repos
	Publisher notify.Publisher
	now       func() time.Time
}

func NewTicketService(repos *repository.Repos, publisher notify.Publisher) *TicketService {
	if publisher == nil {
		publisher = notify.Discard
	}
	return &TicketService{
		Repos:     repos,
		Publisher: publisher,
		now:       time.Now,
	}
}

func ticketResource(id uint) string {
	return fmt.Sprintf("t_id=%d", id)
}

// fill validates input and copies it onto t. It does not touch ownership,
// timestamps or the status lifecycle.
func (s *TicketService) fill(t *ticket.Ticket, input ticket.CreateTicketDTO) (ticket.Status, error) {
	v := &ValidationError{}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		v.Add("title", "Title is required.")
	}
	status, err := ticket.ParseStatus(input.Status)
	if err != nil {
		v.Add("status", "Invalid status value.")
	}
	priority, err := ticket.ParsePriority(input.Priority)
	if err != nil {
		v.Add("priority", "Invalid priority value.")
	}
	due, err := utils.ParseDate(input.DueDate)
	if err != nil {
		v.Add("due_date", "Due date must be a date (YYYY-MM-DD).")
	}

	if input.ProjectID == 0 {
		v.Add("project_id", "Project is required.")
	} else if _, err := s.Repos.Project.GetProjectByID(input.ProjectID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		v.Add("project_id", "Selected project does not exist.")
	}

	assignee := input.AssignedToUserID
	if assignee != nil && *assignee == 0 {
		assignee = nil
	}
	if assignee != nil {
		if _, err := s.Repos.User.GetUserByID(*assignee); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return "", err
			}
			v.Add("assigned_to_user_id", "Selected assignee does not exist.")
		}
	}

	if err := v.OrNil(); err != nil {
		return "", err
	}

	t.Title = title
	t.Description = strings.TrimSpace(input.Description)
	t.ProjectID = input.ProjectID
	t.AssignedToUserID = assignee
	t.Priority = priority
	t.DueDate = due
	return status, nil
}

// Create stores a new ticket owned by actor. A ticket created as Done is
// stamped as completed now.
func (s *TicketService) Create(actor types.Actor, input ticket.CreateTicketDTO) (ticket.Ticket, error) {
	var t ticket.Ticket
	status, err := s.fill(&t, input)
	if err != nil {
		return ticket.Ticket{}, err
	}

	now := s.now()
	t.CreatedByUserID = actor.UserID
	t.CreatedAt = now
	t.Version = 1
	t.ApplyStatus(status, now)

	if err := s.Repos.Ticket.CreateTicket(&t); err != nil {
		return ticket.Ticket{}, err
	}

	utils.LogAuditWithConsole(actor, "create", "ticket", ticketResource(t.ID), nil, t, "", s.Repos.Audit)
	s.Publisher.Publish(notify.TicketEvent(notify.ActionCreated, t.ID, ""))
	return t, nil
}

func (s *TicketService) Get(id uint) (ticket.Details, error) {
	d, err := s.Repos.Ticket.GetTicketDetails(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d, ErrTicketNotFound
	}
	return d, err
}

func (s *TicketService) load(id uint) (ticket.Ticket, error) {
	t, err := s.Repos.Ticket.GetTicketByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return t, ErrTicketNotFound
	}
	return t, err
}

// save maps a failed version check to ErrTicketNotFound when the row is gone
// and to ErrConflict otherwise.
func (s *TicketService) save(t *ticket.Ticket) error {
	err := s.Repos.Ticket.UpdateTicket(t)
	if !errors.Is(err, repository.ErrStaleWrite) {
		return err
	}
	if _, lookupErr := s.load(t.ID); errors.Is(lookupErr, ErrTicketNotFound) {
		return ErrTicketNotFound
	}
	return ErrConflict
}

// Edit replaces the editable fields of a ticket. Creator and creation time
// are preserved. input.Version must match the stored version.
func (s *TicketService) Edit(actor types.Actor, id uint, input ticket.UpdateTicketDTO) (ticket.Ticket, error) {
	existing, err := s.load(id)
	if err != nil {
		return ticket.Ticket{}, err
	}
	before := existing

	updated := existing
	status, err := s.fill(&updated, input.CreateTicketDTO)
	if err != nil {
		return ticket.Ticket{}, err
	}
	updated.Version = input.Version
	prior := updated.ApplyStatus(status, s.now())

	if err := s.save(&updated); err != nil {
		return ticket.Ticket{}, err
	}

	utils.LogAuditWithConsole(actor, "update", "ticket", ticketResource(id), before, updated, "", s.Repos.Audit)
	s.Publisher.Publish(notify.TicketEvent(notify.ActionUpdated, id, string(prior)))
	return updated, nil
}

// UpdateStatus moves a ticket to a new status. The value is trimmed and must
// match an allowed status exactly; anything else leaves the ticket as it is.
func (s *TicketService) UpdateStatus(actor types.Actor, id uint, input ticket.UpdateStatusDTO) (ticket.Ticket, error) {
	status, err := ticket.ParseStatus(input.Status)
	if err != nil {
		return ticket.Ticket{}, NewValidationError("status", "Invalid status value.")
	}

	t, err := s.load(id)
	if err != nil {
		return ticket.Ticket{}, err
	}
	if input.Version != nil && *input.Version != t.Version {
		return ticket.Ticket{}, ErrConflict
	}

	before := t
	prior := t.ApplyStatus(status, s.now())
	if err := s.save(&t); err != nil {
		return ticket.Ticket{}, err
	}

	utils.LogAuditWithConsole(actor, "update_status", "ticket", ticketResource(id), before, t, "", s.Repos.Audit)
	s.Publisher.Publish(notify.TicketEvent(notify.ActionUpdated, id, string(prior)))
	return t, nil
}

// Delete removes a ticket and its comments in one transaction.
func (s *TicketService) Delete(actor types.Actor, id uint) error {
	var removed ticket.Ticket
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		t, err := tx.Ticket.GetTicketByID(id)
		if err != nil {
			return err
		}
		removed = t
		if _, err := tx.Comment.DeleteByTicket(id); err != nil {
			return err
		}
		return tx.Ticket.DeleteTicket(id)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTicketNotFound
	}
	if err != nil {
		return err
	}

	utils.LogAuditWithConsole(actor, "delete", "ticket", ticketResource(id), removed, nil, "", s.Repos.Audit)
	s.Publisher.Publish(notify.TicketEvent(notify.ActionDeleted, id, string(removed.Status)))
	return nil
}

func (s *TicketService) AddComment(actor types.Actor, id uint, input ticket.CommentDTO) (ticket.Comment, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return ticket.Comment{}, NewValidationError("comment_text", "Comment cannot be empty.")
	}
	if _, err := s.load(id); err != nil {
		return ticket.Comment{}, err
	}

	c := ticket.Comment{
		TicketID:  id,
		UserID:    actor.UserID,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.Repos.Comment.CreateComment(&c); err != nil {
		return ticket.Comment{}, err
	}

	utils.LogAuditWithConsole(actor, "comment", "ticket", ticketResource(id), nil, c, "", s.Repos.Audit)
	s.Publisher.Publish(notify.TicketEvent(notify.ActionCommented, id, ""))
	return c, nil
}

// FormOptions returns the choices offered by the ticket forms.
func (s *TicketService) FormOptions() (ticket.FormOptions, error) {
	opts := ticket.FormOptions{
		Projects:   []ticket.Option{},
		Users:      []ticket.Option{},
		Statuses:   ticket.Statuses,
		Priorities: ticket.Priorities,
	}

	projects, err := s.Repos.Project.ListProjects()
	if err != nil {
		return opts, err
	}
	for _, p := range projects {
		opts.Projects = append(opts.Projects, ticket.Option{ID: p.ID, Name: p.Name})
	}

	users, err := s.Repos.User.ListUsers()
	if err != nil {
		return opts, err
	}
	for _, u := range users {
		opts.Users = append(opts.Users, ticket.Option{ID: u.ID, Name: u.Username})
	}
	return opts, nil
}
