package application

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDefaultRoleMissing = errors.New("default role is not configured")
	ErrSelfRoleChange     = errors.New("you cannot change your own role")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
	ErrConflict           = errors.New("the record was changed by someone else; reload and try again")
	ErrArchiveDisabled    = errors.New("report archive storage is not configured")
)

type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects per-field input problems. It may wrap a sentinel
// (for example ErrEmailTaken) so callers can pick a more specific status.
type ValidationError struct {
	Fields []FieldError
	cause  error
}

func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

func (v *ValidationError) Add(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
}

func (v *ValidationError) Error() string {
	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v *ValidationError) Unwrap() error {
	return v.cause
}

// OrNil returns nil when nothing was added.
func (v *ValidationError) OrNil() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) withCause(err error) *ValidationError {
	v.cause = err
	return v
}
