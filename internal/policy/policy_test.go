package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	p := Default()

	cases := []struct {
		action string
		role   string
		want   bool
	}{
		{TicketCreate, user.RoleAdmin, true},
		{TicketCreate, user.RoleProjectManager, true},
		{TicketCreate, user.RoleDeveloper, false},
		{TicketDelete, user.RoleDeveloper, false},
		{TicketStatus, user.RoleDeveloper, true},
		{TicketComment, "", true},
		{ProjectCreate, user.RoleProjectManager, false},
		{ProjectDelete, user.RoleAdmin, true},
		{ReportView, user.RoleProjectManager, false},
		{UserDelete, user.RoleAdmin, true},
		{"unknown/action", user.RoleAdmin, false},
	}
	for _, tc := range cases {
		t.Run(tc.action+"_"+tc.role, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Allows(tc.action, tc.role))
		})
	}
}

func TestActions(t *testing.T) {
	dev := Default().Actions(user.RoleDeveloper)
	assert.Equal(t, []string{DashboardView, ProjectView, TicketComment, TicketStatus, TicketView}, dev)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := "actions:\n  ticket/create: [Admin]\n  report/view: [Admin, Project Manager]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := LoadFile(path)
	require.NoError(t, err)

	assert.False(t, p.Allows(TicketCreate, user.RoleProjectManager))
	assert.True(t, p.Allows(ReportView, user.RoleProjectManager))
	assert.True(t, p.Allows(TicketEdit, user.RoleProjectManager))
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("actions: [::"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}
