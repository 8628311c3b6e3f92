package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// FieldError is one inline validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse is returned when input is rejected. Options carries the
// dropdown data the client needs to redisplay the form.
type ValidationResponse struct {
	Error   string       `json:"error"`
	Fields  []FieldError `json:"fields,omitempty"`
	Options any          `json:"options,omitempty"`
}

type SessionResponse struct {
	Token    string `json:"token"`
	UID      uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type DeleteProjectResponse struct {
	Message        string `json:"message"`
	DeletedTickets int64  `json:"deleted_tickets"`
}

type ArchiveResponse struct {
	Message string `json:"message"`
	Object  string `json:"object"`
}
