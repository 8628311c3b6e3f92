// Package report projects ticket rows into per-project, per-user and
// dashboard aggregates. Nothing here touches storage.
package report

import (
	"sort"
	"strings"

	"github.com/TraderJoe97/StackFlow/internal/domain/project"
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
)

type Counts struct {
	Total      int `json:"total"`
	ToDo       int `json:"to_do"`
	InProgress int `json:"in_progress"`
	InReview   int `json:"in_review"`
	Done       int `json:"done"`
}

func (c *Counts) add(s ticket.Status) {
	c.Total++
	switch s {
	case ticket.StatusToDo:
		c.ToDo++
	case ticket.StatusInProgress:
		c.InProgress++
	case ticket.StatusInReview:
		c.InReview++
	case ticket.StatusDone:
		c.Done++
	}
}

func CountTickets(tickets []ticket.Summary) Counts {
	var c Counts
	for _, t := range tickets {
		c.add(t.Status)
	}
	return c
}

type ProjectReport struct {
	ProjectID   uint             `json:"project_id"`
	ProjectName string           `json:"project_name"`
	Status      project.Status   `json:"status"`
	Counts      Counts           `json:"counts"`
	Tickets     []ticket.Summary `json:"tickets"`
}

type UserReport struct {
	UserID          uint             `json:"user_id"`
	Username        string           `json:"username"`
	Email           string           `json:"email"`
	Role            string           `json:"role"`
	Counts          Counts           `json:"counts"`
	AssignedTickets []ticket.Summary `json:"assigned_tickets"`
}

// BuildProjectReports returns one row per project ordered by name. Tickets
// whose project is not in projects are ignored.
func BuildProjectReports(projects []project.Project, tickets []ticket.Summary) []ProjectReport {
	byProject := make(map[uint][]ticket.Summary, len(projects))
	for _, t := range tickets {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}

	reports := make([]ProjectReport, 0, len(projects))
	for _, p := range projects {
		rows := byProject[p.ID]
		if rows == nil {
			rows = []ticket.Summary{}
		}
		reports = append(reports, ProjectReport{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Status:      p.Status,
			Counts:      CountTickets(rows),
			Tickets:     rows,
		})
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return strings.ToLower(reports[i].ProjectName) < strings.ToLower(reports[j].ProjectName)
	})
	return reports
}

// BuildUserReports returns one row per user ordered by username, counting
// only the tickets assigned to that user.
func BuildUserReports(users []user.User, tickets []ticket.Summary) []UserReport {
	byAssignee := make(map[uint][]ticket.Summary, len(users))
	for _, t := range tickets {
		if t.AssignedToUserID == nil {
			continue
		}
		byAssignee[*t.AssignedToUserID] = append(byAssignee[*t.AssignedToUserID], t)
	}

	reports := make([]UserReport, 0, len(users))
	for _, u := range users {
		rows := byAssignee[u.ID]
		if rows == nil {
			rows = []ticket.Summary{}
		}
		reports = append(reports, UserReport{
			UserID:          u.ID,
			Username:        u.Username,
			Email:           u.Email,
			Role:            u.RoleTitle(),
			Counts:          CountTickets(rows),
			AssignedTickets: rows,
		})
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return strings.ToLower(reports[i].Username) < strings.ToLower(reports[j].Username)
	})
	return reports
}

// Board buckets tickets into the four status columns of the dashboard.
type Board struct {
	ToDo       []ticket.Summary `json:"to_do"`
	InProgress []ticket.Summary `json:"in_progress"`
	InReview   []ticket.Summary `json:"in_review"`
	Done       []ticket.Summary `json:"done"`
}

func BuildBoard(tickets []ticket.Summary) Board {
	b := Board{
		ToDo:       []ticket.Summary{},
		InProgress: []ticket.Summary{},
		InReview:   []ticket.Summary{},
		Done:       []ticket.Summary{},
	}
	for _, t := range tickets {
		switch t.Status {
		case ticket.StatusToDo:
			b.ToDo = append(b.ToDo, t)
		case ticket.StatusInProgress:
			b.InProgress = append(b.InProgress, t)
		case ticket.StatusInReview:
			b.InReview = append(b.InReview, t)
		case ticket.StatusDone:
			b.Done = append(b.Done, t)
		}
	}
	return b
}
