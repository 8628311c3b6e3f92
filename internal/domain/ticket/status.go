package ticket

import (
	"errors"
	"strings"
)

type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusInReview   Status = "In Review"
	StatusDone       Status = "Done"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var (
	Statuses   = []Status{StatusToDo, StatusInProgress, StatusInReview, StatusDone}
	Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidPriority = errors.New("invalid priority value")
)

// ParseStatus trims surrounding whitespace and then requires an exact,
// case-sensitive match: "done" is not "Done".
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	for _, allowed := range Statuses {
		if s == allowed {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.TrimSpace(raw))
	for _, allowed := range Priorities {
		if p == allowed {
			return p, nil
		}
	}
	return "", ErrInvalidPriority
}
