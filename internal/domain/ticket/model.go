package ticket

import (
	"time"

	"github.com/TraderJoe97/StackFlow/internal/domain/project"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
)

type Ticket struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Title            string           `gorm:"size:255;not null" json:"title"`
	Description      string           `gorm:"type:text" json:"description"`
	ProjectID        uint             `gorm:"not null;index" json:"project_id"`
	Project          *project.Project `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	AssignedToUserID *uint            `gorm:"index" json:"assigned_to_user_id"`
	AssignedTo       *user.User       `gorm:"foreignKey:AssignedToUserID;constraint:OnDelete:SET NULL;" json:"-"`
	Status           Status           `gorm:"size:20;not null;check:chk_tickets_status,status IN ('To Do','In Progress','In Review','Done')" json:"status"`
	Priority         Priority         `gorm:"size:10;not null;check:chk_tickets_priority,priority IN ('Low','Medium','High')" json:"priority"`
	CreatedByUserID  uint             `gorm:"not null;index" json:"created_by_user_id"`
	CreatedBy        *user.User       `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:RESTRICT;" json:"-"`
	CreatedAt        time.Time        `json:"created_at"`
	DueDate          *time.Time       `json:"due_date"`
	CompletedAt      *time.Time       `json:"completed_at"`
	Version          int              `gorm:"not null;default:1" json:"version"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// ApplyStatus sets s and keeps CompletedAt consistent with it: stamped the
// first time the ticket reaches Done, cleared when it leaves Done. It returns
// the prior status.
func (t *Ticket) ApplyStatus(s Status, now time.Time) Status {
	prior := t.Status
	t.Status = s
	if s != StatusDone {
		t.CompletedAt = nil
		return prior
	}
	if t.CompletedAt == nil {
		stamp := now
		t.CompletedAt = &stamp
	}
	return prior
}

type Comment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	TicketID  uint       `gorm:"not null;index" json:"ticket_id"`
	Ticket    *Ticket    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      *user.User `gorm:"constraint:OnDelete:RESTRICT;" json:"-"`
	Text      string     `gorm:"column:comment_text;type:text;not null" json:"comment_text"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Comment) TableName() string {
	return "ticket_comments"
}
