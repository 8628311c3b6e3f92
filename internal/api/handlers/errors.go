package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/TraderJoe97/StackFlow/internal/api/middleware"
	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// labels maps struct fields to the names clients send.
var labels = map[string]string{
	"Username":    "username",
	"Email":       "email",
	"Password":    "password",
	"RoleID":      "role_id",
	"Title":       "title",
	"Description": "description",
	"ProjectID":   "project_id",
	"Status":      "status",
	"Priority":    "priority",
	"DueDate":     "due_date",
	"Name":        "project_name",
	"StartDate":   "start_date",
	"EndDate":     "end_date",
	"Text":        "comment_text",
	"Version":     "version",
}

func fieldLabel(fe validator.FieldError) string {
	if lbl, ok := labels[fe.StructField()]; ok {
		return lbl
	}
	return strings.ToLower(fe.StructField())
}

// bindingFields turns a binding failure into per-field messages.
func bindingFields(err error) []response.FieldError {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return []response.FieldError{{Field: "", Message: "Invalid input"}}
	}

	fields := make([]response.FieldError, 0, len(verr))
	for _, fe := range verr {
		lbl := fieldLabel(fe)
		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", lbl)
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", lbl, fe.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", lbl, fe.Param())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", lbl)
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", lbl, fe.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", lbl)
		}
		fields = append(fields, response.FieldError{Field: lbl, Message: msg})
	}
	return fields
}

func joinMessages(fields []response.FieldError) string {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// respondBindError answers 400 for input that failed binding. options is
// echoed back so forms can be redisplayed.
func respondBindError(c *gin.Context, err error, options any) {
	fields := bindingFields(err)
	c.JSON(http.StatusBadRequest, response.ValidationResponse{
		Error:   joinMessages(fields),
		Fields:  fields,
		Options: options,
	})
}

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as a generic 500.
func respondError(c *gin.Context, err error, options any) {
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			status = http.StatusConflict
		case errors.Is(err, application.ErrInvalidCredentials):
			status = http.StatusUnauthorized
		}
		fields := make([]response.FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, response.FieldError{Field: f.Field, Message: f.Message})
		}
		c.JSON(status, response.ValidationResponse{
			Error:   verr.Error(),
			Fields:  fields,
			Options: options,
		})
		return
	}

	switch {
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrRoleNotFound),
		errors.Is(err, application.ErrProjectNotFound),
		errors.Is(err, application.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrSelfRoleChange),
		errors.Is(err, application.ErrSelfDelete):
		c.JSON(http.StatusForbidden, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrConflict):
		c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, application.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(middleware.RequestIDKey),
			"error", err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal server error"})
	}
}

func respondBadID(c *gin.Context, what string) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid " + what + " id"})
}
