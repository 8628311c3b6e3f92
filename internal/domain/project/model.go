package project

import (
	"strings"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/domain/user"
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusOnHold    Status = "On Hold"
)

var Statuses = []Status{StatusActive, StatusCompleted, StatusOnHold}

// ParseStatus trims the input and accepts only an exact match.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.TrimSpace(raw))
	for _, allowed := range Statuses {
		if s == allowed {
			return s, true
		}
	}
	return "", false
}

type Project struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:255;not null" json:"project_name"`
	Description     string     `gorm:"type:text" json:"description"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Status          Status     `gorm:"column:project_status;size:20;not null;check:chk_projects_status,project_status IN ('Active','Completed','On Hold')" json:"status"`
	CreatedByUserID uint       `gorm:"not null;index" json:"created_by_user_id"`
	CreatedBy       *user.User `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:RESTRICT;" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	Version         int        `gorm:"not null;default:1" json:"version"`
}

func (Project) TableName() string {
	return "projects"
}

// Overview is a project row joined with its creator and ticket count.
type Overview struct {
	ID                uint       `json:"id"`
	Name              string     `json:"project_name"`
	Description       string     `json:"description"`
	Status            Status     `json:"status"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	CreatedByUserID   uint       `json:"created_by_user_id"`
	CreatedByUsername string     `json:"created_by"`
	TicketCount       int64      `json:"ticket_count"`
}
