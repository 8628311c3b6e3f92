//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/internal/domain/project"
	"github.com/TraderJoe97/StackFlow/internal/domain/report"
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/pkg/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	public := NewHTTPClient(testCtx.Router, "")

	t.Run("register with form data", func(t *testing.T) {
		resp, err := public.POSTForm("/register", map[string]string{
			"username": "newbie",
			"email":    "Newbie@OMNITAK.com",
			"password": testPassword,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))

		var session response.SessionResponse
		require.NoError(t, resp.Decode(&session))
		assert.Equal(t, "newbie@omnitak.com", session.Email)
		assert.Equal(t, "Developer", session.Role)
	})

	t.Run("email lookup ignores case", func(t *testing.T) {
		resp, err := public.POST("/login", map[string]string{
			"email":    "NEWBIE@omnitak.com",
			"password": testPassword,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("foreign domain rejected", func(t *testing.T) {
		resp, err := public.POST("/login", map[string]string{
			"email":    "admin@example.com",
			"password": testPassword,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTicketWorkflow(t *testing.T) {
	admin := NewHTTPClient(testCtx.Router, testCtx.AdminToken)
	manager := NewHTTPClient(testCtx.Router, testCtx.ManagerToken)
	dev := NewHTTPClient(testCtx.Router, testCtx.DevToken)

	resp, err := admin.POST("/projects", map[string]string{
		"project_name": "Workflow",
		"status":       "Active",
		"start_date":   "2025-01-01",
		"end_date":     "2025-12-31",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))
	var p project.Project
	require.NoError(t, resp.Decode(&p))

	resp, err = manager.POST("/projects", map[string]string{"project_name": "Nope", "status": "Active"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = manager.POST("/tickets", map[string]interface{}{
		"title":               "Build login",
		"project_id":          p.ID,
		"assigned_to_user_id": testCtx.Developer.ID,
		"status":              "To Do",
		"priority":            "High",
		"due_date":            "2025-03-01",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))
	var tk ticket.Ticket
	require.NoError(t, resp.Decode(&tk))
	assert.Nil(t, tk.CompletedAt)

	resp, err = dev.PUT(fmt.Sprintf("/tickets/%d/status", tk.ID), map[string]string{"status": "Done"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))
	require.NoError(t, resp.Decode(&tk))
	require.NotNil(t, tk.CompletedAt)

	resp, err = dev.POST(fmt.Sprintf("/tickets/%d/comments", tk.ID), map[string]string{"comment_text": "shipped"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = admin.GET("/reports/projects")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reports []report.ProjectReport
	require.NoError(t, resp.Decode(&reports))
	var found bool
	for _, r := range reports {
		if r.ProjectID == p.ID {
			found = true
			assert.Equal(t, 1, r.Counts.Total)
			assert.Equal(t, 1, r.Counts.Done)
		}
	}
	assert.True(t, found)

	resp, err = admin.GET("/audit/logs", map[string]string{"resource_type": "ticket"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = admin.DELETE(fmt.Sprintf("/projects/%d", p.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted response.DeleteProjectResponse
	require.NoError(t, resp.Decode(&deleted))
	assert.Equal(t, int64(1), deleted.DeletedTickets)

	resp, err = dev.GET(fmt.Sprintf("/tickets/%d", tk.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteUserReassignsToAdmin(t *testing.T) {
	admin := NewHTTPClient(testCtx.Router, testCtx.AdminToken)

	leaving, err := createUser(testCtx.Repos, "leaving", "Developer")
	require.NoError(t, err)

	resp, err := admin.POST("/projects", map[string]string{"project_name": "Handover", "status": "Active"})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p project.Project
	require.NoError(t, resp.Decode(&p))

	for i := 0; i < 3; i++ {
		resp, err = admin.POST("/tickets", map[string]interface{}{
			"title":               fmt.Sprintf("task %d", i),
			"project_id":          p.ID,
			"assigned_to_user_id": leaving.ID,
			"status":              "In Progress",
			"priority":            "Medium",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err = admin.DELETE(fmt.Sprintf("/users/%d", testCtx.Admin.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = admin.DELETE(fmt.Sprintf("/users/%d", leaving.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))
	var result application.DeleteUserResult
	require.NoError(t, resp.Decode(&result))
	assert.Equal(t, int64(3), result.AssignedTickets)

	tickets, err := testCtx.Repos.Ticket.ListSummariesByAssignee(testCtx.Admin.ID)
	require.NoError(t, err)
	count := 0
	for _, s := range tickets {
		if s.ProjectID == p.ID {
			count++
		}
	}
	assert.Equal(t, 3, count)
}
