package ticket

import "time"

// Summary is the flattened row used by lists, dashboards and reports.
type Summary struct {
	ID               uint       `json:"id"`
	Title            string     `json:"title"`
	Status           Status     `json:"status"`
	Priority         Priority   `json:"priority"`
	DueDate          *time.Time `json:"due_date"`
	ProjectID        uint       `json:"project_id"`
	ProjectName      string     `json:"project_name"`
	AssignedToUserID *uint      `json:"assigned_to_user_id"`
	AssigneeUsername string     `json:"assigned_to"`
}

type CommentView struct {
	ID        uint      `json:"id"`
	TicketID  uint      `json:"ticket_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"comment_text"`
	CreatedAt time.Time `json:"created_at"`
}

// Details is a ticket with the names of everything it references and its
// comments in the order they were written.
type Details struct {
	Ticket
	ProjectName       string        `json:"project_name"`
	AssigneeUsername  string        `json:"assigned_to"`
	CreatedByUsername string        `json:"created_by"`
	Comments          []CommentView `json:"comments"`
}

// FormOptions lists what the ticket create and edit forms can choose from.
type FormOptions struct {
	Projects   []Option   `json:"projects"`
	Users      []Option   `json:"users"`
	Statuses   []Status   `json:"statuses"`
	Priorities []Priority `json:"priorities"`
}

type Option struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
