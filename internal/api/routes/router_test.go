package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/api/middleware"
	"github.com/TraderJoe97/StackFlow/internal/api/routes"
	"github.com/TraderJoe97/StackFlow/internal/config"
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/internal/notify"
	"github.com/TraderJoe97/StackFlow/internal/policy"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/internal/testutils"
	"github.com/TraderJoe97/StackFlow/pkg/types"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db     *gorm.DB
	hub    *notify.Hub
	router *gin.Engine
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JwtSecret = "router-test-secret"
	middleware.Init()

	orig := utils.LogAuditWithConsole
	utils.LogAuditWithConsole = func(types.Actor, string, string, string, any, any, string, repository.AuditRepo) {}
	t.Cleanup(func() { utils.LogAuditWithConsole = orig })

	db := testutils.NewTestDB(t)
	hub := notify.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{DB: db, Hub: hub, Policy: policy.Default()})
	return &env{db: db, hub: hub, router: r}
}

func tokenFor(t *testing.T, u user.User) string {
	t.Helper()
	token, _, err := middleware.GenerateToken(u, config.SessionTTL)
	require.NoError(t, err)
	return token
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRegisterLoginLogout(t *testing.T) {
	e := setup(t)

	w := e.do(t, http.MethodPost, "/register", "", gin.H{"username": "eve", "email": "eve@gmail.com", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"email"`)

	w = e.do(t, http.MethodPost, "/register", "", gin.H{"username": "ann", "email": "Ann@omnitak.com", "password": "password123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, user.RoleDeveloper, body["role"])
	assert.Equal(t, "ann@omnitak.com", body["email"])
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookie+"=")

	w = e.do(t, http.MethodPost, "/register", "", gin.H{"username": "ann2", "email": "ann@omnitak.com", "password": "password123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(t, http.MethodPost, "/login", "", gin.H{"email": "ann@omnitak.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodPost, "/login", "", gin.H{"email": "ann@omnitak.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = e.do(t, http.MethodGet, "/auth/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ann", decode(t, w)["username"])

	w = e.do(t, http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/auth/status", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCookieSession(t *testing.T) {
	e := setup(t)
	dev := testutils.SeedUser(t, e.db, "dev", user.RoleDeveloper)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tokenFor(t, dev)})
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/auth/status", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSlidingRenewal(t *testing.T) {
	e := setup(t)
	dev := testutils.SeedUser(t, e.db, "dev", user.RoleDeveloper)

	old, _, err := middleware.GenerateToken(dev, config.SessionTTL/4)
	require.NoError(t, err)

	w := e.do(t, http.MethodGet, "/auth/status", old, nil)
	require.Equal(t, http.StatusOK, w.Code)
	renewed := w.Header().Get(middleware.RefreshedTokenHeader)
	require.NotEmpty(t, renewed)
	assert.NotEqual(t, old, renewed)

	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/auth/status", old, nil).Code)
	w = e.do(t, http.MethodGet, "/auth/status", renewed, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(middleware.RefreshedTokenHeader))

	// logout still ends the old session
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/logout", old, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/auth/status", old, nil).Code)
}

func TestParallelRequestsDuringRenewal(t *testing.T) {
	e := setup(t)
	dev := testutils.SeedUser(t, e.db, "dev", user.RoleDeveloper)

	old, _, err := middleware.GenerateToken(dev, config.SessionTTL/4)
	require.NoError(t, err)

	paths := []string{"/dashboard", "/dashboard/insights", "/dashboard/projects", "/auth/status"}
	codes := make([]int, len(paths))
	renewed := make([]string, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			w := e.do(t, http.MethodGet, path, old, nil)
			codes[i] = w.Code
			renewed[i] = w.Header().Get(middleware.RefreshedTokenHeader)
		}(i, path)
	}
	wg.Wait()

	for i, path := range paths {
		assert.Equal(t, http.StatusOK, codes[i], path)
		assert.NotEmpty(t, renewed[i], path)
	}
}

func TestRoleGates(t *testing.T) {
	e := setup(t)
	adm := testutils.SeedUser(t, e.db, "root", user.RoleAdmin)
	dev := testutils.SeedUser(t, e.db, "dev", user.RoleDeveloper)
	p := testutils.SeedProject(t, e.db, "Apollo", adm.ID)
	tk := testutils.SeedTicket(t, e.db, "t", p.ID, adm.ID, &dev.ID)
	devToken := tokenFor(t, dev)

	create := gin.H{"title": "x", "project_id": p.ID, "status": "To Do", "priority": "Low"}
	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodPost, "/tickets", devToken, create).Code)
	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodGet, "/reports/projects", devToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodDelete, fmt.Sprintf("/projects/%d", p.ID), devToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodGet, "/audit/logs", devToken, nil).Code)

	w := e.do(t, http.MethodPut, fmt.Sprintf("/tickets/%d/status", tk.ID), devToken, gin.H{"status": "done"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status value.", decode(t, w)["error"])

	w = e.do(t, http.MethodPut, fmt.Sprintf("/tickets/%d/status", tk.ID), devToken, gin.H{"status": "Done"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, decode(t, w)["completed_at"])

	adminToken := tokenFor(t, adm)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/reports/projects", adminToken, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/reports/users", adminToken, nil).Code)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/audit/logs?resource_type=ticket", adminToken, nil).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/audit/logs?start_time=yesterday", adminToken, nil).Code)
}

func TestRoleChangeAppliesToOpenSession(t *testing.T) {
	e := setup(t)
	adm := testutils.SeedUser(t, e.db, "root", user.RoleAdmin)
	dev := testutils.SeedUser(t, e.db, "dev", user.RoleDeveloper)
	p := testutils.SeedProject(t, e.db, "Apollo", adm.ID)
	devToken := tokenFor(t, dev)
	create := gin.H{"title": "x", "project_id": p.ID, "status": "To Do", "priority": "Low"}

	require.Equal(t, http.StatusForbidden, e.do(t, http.MethodPost, "/tickets", devToken, create).Code)

	var pm user.Role
	require.NoError(t, e.db.Where("title = ?", user.RoleProjectManager).First(&pm).Error)
	w := e.do(t, http.MethodPut, fmt.Sprintf("/users/%d/role", dev.ID), tokenFor(t, adm), gin.H{"role_id": pm.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, user.RoleProjectManager, decode(t, w)["role"])

	assert.Equal(t, http.StatusCreated, e.do(t, http.MethodPost, "/tickets", devToken, create).Code)

	w = e.do(t, http.MethodPut, fmt.Sprintf("/users/%d/role", adm.ID), tokenFor(t, adm), gin.H{"role_id": pm.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = e.do(t, http.MethodPut, "/users/999/role", tokenFor(t, adm), gin.H{"role_id": pm.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTicketValidationCarriesFormOptions(t *testing.T) {
	e := setup(t)
	pm := testutils.SeedUser(t, e.db, "pm", user.RoleProjectManager)
	testutils.SeedProject(t, e.db, "Apollo", pm.ID)

	w := e.do(t, http.MethodPost, "/tickets", tokenFor(t, pm), gin.H{"project_id": 1, "status": "To Do", "priority": "Low"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
		Options ticket.FormOptions `json:"options"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Fields)
	assert.Equal(t, "title", body.Fields[0].Field)
	require.Len(t, body.Options.Projects, 1)
	assert.Equal(t, "Apollo", body.Options.Projects[0].Name)
	assert.Len(t, body.Options.Statuses, 4)
}

func TestTicketEditConflict(t *testing.T) {
	e := setup(t)
	pm := testutils.SeedUser(t, e.db, "pm", user.RoleProjectManager)
	p := testutils.SeedProject(t, e.db, "Apollo", pm.ID)
	tk := testutils.SeedTicket(t, e.db, "t", p.ID, pm.ID, nil)
	token := tokenFor(t, pm)

	edit := gin.H{"title": "renamed", "project_id": p.ID, "status": "In Progress", "priority": "High", "version": tk.Version}
	w := e.do(t, http.MethodPut, fmt.Sprintf("/tickets/%d", tk.ID), token, edit)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodPut, fmt.Sprintf("/tickets/%d", tk.ID), token, edit)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = e.do(t, http.MethodGet, fmt.Sprintf("/tickets/%d", tk.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "renamed", decode(t, w)["title"])

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, "/tickets/999", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodGet, "/tickets/abc", token, nil).Code)
}

func TestProjectDeleteAndUserDelete(t *testing.T) {
	e := setup(t)
	adm := testutils.SeedUser(t, e.db, "root", user.RoleAdmin)
	dev := testutils.SeedUser(t, e.db, "dev", user.RoleDeveloper)
	token := tokenFor(t, adm)

	doomed := testutils.SeedProject(t, e.db, "Doomed", adm.ID)
	kept := testutils.SeedProject(t, e.db, "Kept", adm.ID)
	testutils.SeedTicket(t, e.db, "a", doomed.ID, adm.ID, &dev.ID)
	testutils.SeedTicket(t, e.db, "b", doomed.ID, adm.ID, nil)
	testutils.SeedTicket(t, e.db, "c", kept.ID, adm.ID, &dev.ID)

	w := e.do(t, http.MethodDelete, fmt.Sprintf("/projects/%d", doomed.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["deleted_tickets"])

	assert.Equal(t, http.StatusForbidden, e.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", adm.ID), token, nil).Code)

	w = e.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", dev.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["reassigned_assigned_tickets"])

	w = e.do(t, http.MethodGet, fmt.Sprintf("/dashboard/assigned-tickets/%d", adm.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var assigned []ticket.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &assigned))
	require.Len(t, assigned, 1)
	assert.Equal(t, "c", assigned[0].Title)

	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", dev.ID), token, nil).Code)
}

func TestArchiveWithoutStorage(t *testing.T) {
	e := setup(t)
	adm := testutils.SeedUser(t, e.db, "root", user.RoleAdmin)

	w := e.do(t, http.MethodPost, "/reports/projects/archive", tokenFor(t, adm), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthz(t *testing.T) {
	e := setup(t)
	w := e.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardSocketReceivesEvents(t *testing.T) {
	e := setup(t)
	dev := testutils.SeedUser(t, e.db, "dev", user.RoleDeveloper)
	p := testutils.SeedProject(t, e.db, "Apollo", dev.ID)
	tk := testutils.SeedTicket(t, e.db, "t", p.ID, dev.ID, nil)
	token := tokenFor(t, dev)

	srv := httptest.NewServer(e.router)
	t.Cleanup(srv.Close)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dashboard"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool { return e.hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	w := e.do(t, http.MethodPost, fmt.Sprintf("/tickets/%d/comments", tk.ID), token, gin.H{"comment_text": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(`{"event":"ReceiveTicketUpdate","args":["commented",%d]}`, tk.ID), string(msg))

	_, _, err = websocket.DefaultDialer.Dial(wsURL, nil)
	assert.Error(t, err)
}
