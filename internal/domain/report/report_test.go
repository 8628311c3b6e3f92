package report

import (
	"testing"

	"github.com/TraderJoe97/StackFlow/internal/domain/project"
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uptr(v uint) *uint { return &v }

func sampleTickets() []ticket.Summary {
	return []ticket.Summary{
		{ID: 1, ProjectID: 10, Status: ticket.StatusToDo, AssignedToUserID: uptr(1)},
		{ID: 2, ProjectID: 10, Status: ticket.StatusDone, AssignedToUserID: uptr(1)},
		{ID: 3, ProjectID: 10, Status: ticket.StatusInReview},
		{ID: 4, ProjectID: 20, Status: ticket.StatusInProgress, AssignedToUserID: uptr(2)},
		{ID: 5, ProjectID: 99, Status: ticket.StatusDone, AssignedToUserID: uptr(2)},
	}
}

func TestCountTickets(t *testing.T) {
	c := CountTickets(sampleTickets())
	assert.Equal(t, Counts{Total: 5, ToDo: 1, InProgress: 1, InReview: 1, Done: 2}, c)
	assert.Equal(t, Counts{}, CountTickets(nil))
}

func TestBuildProjectReports(t *testing.T) {
	projects := []project.Project{
		{ID: 20, Name: "zeta", Status: project.StatusOnHold},
		{ID: 10, Name: "Alpha", Status: project.StatusActive},
		{ID: 30, Name: "beta", Status: project.StatusCompleted},
	}

	reports := BuildProjectReports(projects, sampleTickets())
	require.Len(t, reports, 3)

	assert.Equal(t, []string{"Alpha", "beta", "zeta"},
		[]string{reports[0].ProjectName, reports[1].ProjectName, reports[2].ProjectName})
	assert.Equal(t, Counts{Total: 3, ToDo: 1, InReview: 1, Done: 1}, reports[0].Counts)
	assert.Equal(t, Counts{}, reports[1].Counts)
	assert.NotNil(t, reports[1].Tickets)
	assert.Equal(t, Counts{Total: 1, InProgress: 1}, reports[2].Counts)
}

func TestBuildUserReports(t *testing.T) {
	dev := user.Role{Title: user.RoleDeveloper}
	users := []user.User{
		{ID: 2, Username: "mia", Role: &dev},
		{ID: 1, Username: "Ann"},
		{ID: 3, Username: "zed"},
	}

	reports := BuildUserReports(users, sampleTickets())
	require.Len(t, reports, 3)

	assert.Equal(t, "Ann", reports[0].Username)
	assert.Equal(t, "", reports[0].Role)
	assert.Equal(t, Counts{Total: 2, ToDo: 1, Done: 1}, reports[0].Counts)

	assert.Equal(t, "mia", reports[1].Username)
	assert.Equal(t, user.RoleDeveloper, reports[1].Role)
	assert.Equal(t, Counts{Total: 2, InProgress: 1, Done: 1}, reports[1].Counts)

	assert.Equal(t, 0, reports[2].Counts.Total)
}

func TestBuildBoard(t *testing.T) {
	b := BuildBoard(sampleTickets())
	assert.Len(t, b.ToDo, 1)
	assert.Len(t, b.InProgress, 1)
	assert.Len(t, b.InReview, 1)
	assert.Len(t, b.Done, 2)

	empty := BuildBoard(nil)
	assert.NotNil(t, empty.Done)
}
