package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/domain/audit"
	"github.com/TraderJoe97/StackFlow/internal/domain/project"
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/internal/notify"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/internal/testutils"
	"github.com/TraderJoe97/StackFlow/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServices(t *testing.T) (*gorm.DB, *Services, *notify.Recorder) {
	t.Helper()
	disableAudit(t)
	db := testutils.NewTestDB(t)
	rec := notify.NewRecorder()
	svcs := New(repository.NewRepositories(db), rec, nil)
	svcs.Ticket.now = fixedClock
	svcs.Project.now = fixedClock
	return db, svcs, rec
}

func actorOf(u user.User) types.Actor {
	return types.Actor{UserID: u.ID, Username: u.Username, Role: u.RoleTitle()}
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestProjectService_DeleteCascades(t *testing.T) {
	db, svcs, rec := setupServices(t)
	adm := testutils.SeedUser(t, db, "root", user.RoleAdmin)
	dev := testutils.SeedUser(t, db, "dev", user.RoleDeveloper)

	doomed := testutils.SeedProject(t, db, "Doomed", adm.ID)
	kept := testutils.SeedProject(t, db, "Kept", adm.ID)
	for _, title := range []string{"a", "b", "c"} {
		tk := testutils.SeedTicket(t, db, title, doomed.ID, adm.ID, &dev.ID)
		testutils.SeedComment(t, db, tk.ID, dev.ID, "note on "+title)
	}
	survivor := testutils.SeedTicket(t, db, "d", kept.ID, adm.ID, nil)
	testutils.SeedComment(t, db, survivor.ID, dev.ID, "still here")

	removed, err := svcs.Project.Delete(actorOf(adm), doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	assert.Zero(t, countRows(t, db, &ticket.Ticket{}, "project_id = ?", doomed.ID))
	assert.Zero(t, countRows(t, db, &project.Project{}, "id = ?", doomed.ID))
	assert.Equal(t, int64(1), countRows(t, db, &ticket.Ticket{}, "project_id = ?", kept.ID))
	assert.Equal(t, int64(1), countRows(t, db, &ticket.Comment{}, "1 = 1"))
	assert.Equal(t, []notify.Event{notify.ProjectEvent(notify.ActionDeleted, doomed.ID)}, rec.Events())

	_, err = svcs.Project.Delete(actorOf(adm), doomed.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_CreateUpdate(t *testing.T) {
	db, svcs, _ := setupServices(t)
	pm := testutils.SeedUser(t, db, "pm", user.RoleProjectManager)

	_, err := svcs.Project.Create(actorOf(pm), project.CreateProjectDTO{
		Name: "Apollo", Status: "Active", StartDate: "2025-05-02", EndDate: "2025-05-01",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_date", verr.Fields[0].Field)

	p, err := svcs.Project.Create(actorOf(pm), project.CreateProjectDTO{
		Name: " Apollo ", Status: "On Hold", StartDate: "2025-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Apollo", p.Name)
	assert.Equal(t, fixedNow, p.CreatedAt)

	name := "Apollo II"
	updated, err := svcs.Project.Update(actorOf(pm), p.ID, project.UpdateProjectDTO{Name: &name, Version: p.Version})
	require.NoError(t, err)
	assert.Equal(t, "Apollo II", updated.Name)
	assert.Equal(t, project.StatusOnHold, updated.Status)

	_, err = svcs.Project.Update(actorOf(pm), p.ID, project.UpdateProjectDTO{Name: &name, Version: p.Version})
	assert.ErrorIs(t, err, ErrConflict)

	details, err := svcs.Project.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "pm", details.CreatedBy)
	assert.Empty(t, details.Tickets)
}

func TestAdminService_DeleteUserReassigns(t *testing.T) {
	db, svcs, rec := setupServices(t)
	adm := testutils.SeedUser(t, db, "root", user.RoleAdmin)
	dev := testutils.SeedUser(t, db, "dev", user.RoleDeveloper)
	other := testutils.SeedUser(t, db, "other", user.RoleDeveloper)

	p := testutils.SeedProject(t, db, "Owned by dev", dev.ID)
	for _, title := range []string{"a", "b"} {
		testutils.SeedTicket(t, db, title, p.ID, adm.ID, &dev.ID)
	}
	created := testutils.SeedTicket(t, db, "made by dev", p.ID, dev.ID, &other.ID)
	testutils.SeedComment(t, db, created.ID, dev.ID, "mine")

	result, err := svcs.Admin.DeleteUser(actorOf(adm), dev.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteUserResult{AssignedTickets: 2, CreatedTickets: 1, Projects: 1, Comments: 1}, result)

	assert.Zero(t, countRows(t, db, &user.User{}, "id = ?", dev.ID))
	assert.Equal(t, int64(2), countRows(t, db, &ticket.Ticket{}, "assigned_to_user_id = ?", adm.ID))
	assert.Zero(t, countRows(t, db, &ticket.Ticket{}, "assigned_to_user_id IS NULL"))
	assert.Equal(t, int64(1), countRows(t, db, &ticket.Ticket{}, "assigned_to_user_id = ?", other.ID))
	assert.Equal(t, int64(1), countRows(t, db, &project.Project{}, "created_by_user_id = ?", adm.ID))
	assert.Equal(t, int64(1), countRows(t, db, &ticket.Comment{}, "user_id = ?", adm.ID))
	assert.Equal(t, []notify.Event{notify.UserEvent(notify.ActionDeleted, dev.ID)}, rec.Events())
}

func TestAdminService_DeleteUserGuards(t *testing.T) {
	db, svcs, rec := setupServices(t)
	adm := testutils.SeedUser(t, db, "root", user.RoleAdmin)
	p := testutils.SeedProject(t, db, "P", adm.ID)
	testutils.SeedTicket(t, db, "t", p.ID, adm.ID, &adm.ID)

	_, err := svcs.Admin.DeleteUser(actorOf(adm), adm.ID)
	assert.ErrorIs(t, err, ErrSelfDelete)
	assert.Equal(t, int64(1), countRows(t, db, &user.User{}, "id = ?", adm.ID))
	assert.Equal(t, int64(1), countRows(t, db, &ticket.Ticket{}, "assigned_to_user_id = ?", adm.ID))

	_, err = svcs.Admin.DeleteUser(actorOf(adm), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, rec.Events())
}

func TestTicketService_DeleteRemovesComments(t *testing.T) {
	db, svcs, rec := setupServices(t)
	pm := testutils.SeedUser(t, db, "pm", user.RoleProjectManager)
	p := testutils.SeedProject(t, db, "P", pm.ID)
	tk := testutils.SeedTicket(t, db, "t", p.ID, pm.ID, nil)
	testutils.SeedComment(t, db, tk.ID, pm.ID, "one")
	testutils.SeedComment(t, db, tk.ID, pm.ID, "two")

	require.NoError(t, svcs.Ticket.Delete(actorOf(pm), tk.ID))
	assert.Zero(t, countRows(t, db, &ticket.Comment{}, "ticket_id = ?", tk.ID))
	assert.Equal(t, []notify.Event{notify.TicketEvent(notify.ActionDeleted, tk.ID, "To Do")}, rec.Events())

	assert.ErrorIs(t, svcs.Ticket.Delete(actorOf(pm), tk.ID), ErrTicketNotFound)
}

func TestTicketService_RoundTrip(t *testing.T) {
	db, svcs, _ := setupServices(t)
	pm := testutils.SeedUser(t, db, "pm", user.RoleProjectManager)
	dev := testutils.SeedUser(t, db, "dev", user.RoleDeveloper)
	p := testutils.SeedProject(t, db, "Apollo", pm.ID)

	created, err := svcs.Ticket.Create(actorOf(pm), ticket.CreateTicketDTO{
		Title: "Wire login", ProjectID: p.ID, AssignedToUserID: &dev.ID, Status: "In Progress", Priority: "High",
	})
	require.NoError(t, err)

	_, err = svcs.Ticket.AddComment(actorOf(dev), created.ID, ticket.CommentDTO{Text: "on it"})
	require.NoError(t, err)

	moved, err := svcs.Ticket.UpdateStatus(actorOf(dev), created.ID, ticket.UpdateStatusDTO{Status: "Done"})
	require.NoError(t, err)
	assert.Equal(t, created.Version+1, moved.Version)

	d, err := svcs.Ticket.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo", d.ProjectName)
	assert.Equal(t, "dev", d.AssigneeUsername)
	assert.Equal(t, "pm", d.CreatedByUsername)
	require.Len(t, d.Comments, 1)
	assert.Equal(t, "on it", d.Comments[0].Text)
	require.NotNil(t, d.CompletedAt)
	assert.True(t, fixedNow.Equal(*d.CompletedAt))

	_, err = svcs.Ticket.Get(created.ID + 100)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestDashboardService_Index(t *testing.T) {
	db, svcs, _ := setupServices(t)
	pm := testutils.SeedUser(t, db, "pm", user.RoleProjectManager)
	nobody := testutils.SeedUser(t, db, "nobody", "")
	p := testutils.SeedProject(t, db, "P", pm.ID)
	testutils.SeedTicket(t, db, "mine", p.ID, pm.ID, &nobody.ID)
	testutils.SeedTicket(t, db, "other", p.ID, pm.ID, nil)

	d, err := svcs.Dashboard.Index(actorOf(nobody))
	require.NoError(t, err)
	assert.Equal(t, "Unknown Role", d.Role)
	assert.Len(t, d.Board.ToDo, 2)
	require.Len(t, d.AssignedToMe, 1)
	assert.Equal(t, "mine", d.AssignedToMe[0].Title)
	require.Len(t, d.Projects, 1)
	assert.Equal(t, int64(2), d.Projects[0].TicketCount)

	counts, err := svcs.Dashboard.Insights()
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Total)
	assert.Equal(t, 2, counts.ToDo)

	_, err = svcs.Dashboard.Index(types.Actor{UserID: 404})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

type memoryArchiver struct {
	objects map[string][]byte
	err     error
}

func (m *memoryArchiver) Put(_ context.Context, key string, data []byte, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.objects[key] = data
	return nil
}

func TestReportService_Archive(t *testing.T) {
	db, svcs, _ := setupServices(t)
	adm := testutils.SeedUser(t, db, "root", user.RoleAdmin)
	p := testutils.SeedProject(t, db, "P", adm.ID)
	testutils.SeedTicket(t, db, "t", p.ID, adm.ID, nil)

	_, err := svcs.Report.ArchiveProjectReports(context.Background(), actorOf(adm))
	assert.ErrorIs(t, err, ErrArchiveDisabled)

	store := &memoryArchiver{objects: map[string][]byte{}}
	svcs.Report.Archiver = store
	svcs.Report.now = fixedClock

	key, err := svcs.Report.ArchiveProjectReports(context.Background(), actorOf(adm))
	require.NoError(t, err)
	assert.Equal(t, "project-reports/20250701T120000Z.json", key)

	var snapshot struct {
		GeneratedBy string `json:"generated_by"`
		Projects    []struct {
			ProjectName string `json:"project_name"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(store.objects[key], &snapshot))
	assert.Equal(t, "root", snapshot.GeneratedBy)
	require.Len(t, snapshot.Projects, 1)
	assert.Equal(t, "P", snapshot.Projects[0].ProjectName)

	store.err = errors.New("bucket gone")
	_, err = svcs.Report.ArchiveProjectReports(context.Background(), actorOf(adm))
	assert.ErrorIs(t, err, store.err)
}

func TestAuditService_CleanupOldLogs(t *testing.T) {
	db, svcs, _ := setupServices(t)
	svcs.Audit.now = fixedClock
	require.NoError(t, db.Create(&[]audit.AuditLog{
		{UserID: 1, Action: "create", ResourceType: "ticket", CreatedAt: fixedNow.AddDate(0, 0, -100)},
		{UserID: 1, Action: "update", ResourceType: "ticket", CreatedAt: fixedNow.AddDate(0, 0, -10)},
	}).Error)

	removed, err := svcs.Audit.CleanupOldLogs(90)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	resourceType := "ticket"
	logs, err := svcs.Audit.QueryAuditLogs(repository.AuditQueryParams{ResourceType: &resourceType})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "update", logs[0].Action)
}

func TestUserService_PurgeRevokedSessions(t *testing.T) {
	db, svcs, _ := setupServices(t)
	svcs.User.now = fixedClock
	repos := repository.NewRepositories(db)
	require.NoError(t, repos.Session.Revoke(&user.RevokedSession{JTI: "old", UserID: 1, ExpiresAt: fixedNow.Add(-time.Minute)}))
	require.NoError(t, repos.Session.Revoke(&user.RevokedSession{JTI: "live", UserID: 1, ExpiresAt: fixedNow.Add(time.Minute)}))

	n, err := svcs.User.PurgeRevokedSessions()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	revoked, err := repos.Session.IsRevoked("live")
	require.NoError(t, err)
	assert.True(t, revoked)
}
