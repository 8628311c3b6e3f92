//go:build integration

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"github.com/TraderJoe97/StackFlow/internal/api/middleware"
	"github.com/TraderJoe97/StackFlow/internal/api/routes"
	"github.com/TraderJoe97/StackFlow/internal/config"
	"github.com/TraderJoe97/StackFlow/internal/config/db"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/internal/migrations"
	"github.com/TraderJoe97/StackFlow/internal/notify"
	"github.com/TraderJoe97/StackFlow/internal/policy"
	"github.com/TraderJoe97/StackFlow/internal/repository"
)

const testPassword = "password123"

// TestContext holds all test dependencies
type TestContext struct {
	Router       *gin.Engine
	Repos        *repository.Repos
	AdminToken   string
	ManagerToken string
	DevToken     string
	Admin        user.User
	Manager      user.User
	Developer    user.User
}

var testCtx *TestContext

func TestMain(m *testing.M) {
	cleanup, err := startPostgres()
	if err != nil {
		log.Fatalf("Failed to start postgres: %v", err)
	}

	if err := setupTestEnvironment(); err != nil {
		cleanup()
		log.Fatalf("Failed to setup test environment: %v", err)
	}

	code := m.Run()

	cleanup()
	os.Exit(code)
}

// startPostgres points DB_* at TEST_DB_HOST when set, otherwise at a
// throwaway container.
func startPostgres() (func(), error) {
	if host := os.Getenv("TEST_DB_HOST"); host != "" {
		_ = os.Setenv("DB_HOST", host)
		_ = os.Setenv("DB_PORT", getEnvOrDefault("TEST_DB_PORT", "5432"))
		_ = os.Setenv("DB_USER", getEnvOrDefault("TEST_DB_USER", "postgres"))
		_ = os.Setenv("DB_PASSWORD", getEnvOrDefault("TEST_DB_PASSWORD", "postgres"))
		_ = os.Setenv("DB_NAME", getEnvOrDefault("TEST_DB_NAME", "stackflow_test"))
		return func() {}, nil
	}

	ctx := context.Background()
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:15",
			Env: map[string]string{
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_USER":     "test",
				"POSTGRES_DB":       "stackflow",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}
	cleanup := func() { _ = pg.Terminate(ctx) }

	host, err := pg.Host(ctx)
	if err != nil {
		cleanup()
		return nil, err
	}
	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		cleanup()
		return nil, err
	}

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/stackflow?sslmode=disable", host, port.Port())
	if err := waitForDB(dsn); err != nil {
		cleanup()
		return nil, err
	}

	_ = os.Setenv("DB_HOST", host)
	_ = os.Setenv("DB_PORT", port.Port())
	_ = os.Setenv("DB_USER", "test")
	_ = os.Setenv("DB_PASSWORD", "test")
	_ = os.Setenv("DB_NAME", "stackflow")
	return cleanup, nil
}

func waitForDB(dsn string) error {
	var err error
	for i := 0; i < 10; i++ {
		var conn *sql.DB
		conn, err = sql.Open("postgres", dsn)
		if err == nil {
			err = conn.Ping()
			_ = conn.Close()
			if err == nil {
				return nil
			}
		}
		time.Sleep(time.Second)
	}
	return err
}

func setupTestEnvironment() error {
	_ = os.Setenv("DB_DRIVER", "postgres")
	_ = os.Setenv("JWT_SECRET", "test-secret-key-for-integration-testing")
	_ = os.Setenv("ISSUER", "stackflow-test")

	config.LoadConfig()
	middleware.Init()
	db.Init()

	if err := db.DB.Migrator().DropTable(migrations.Models()...); err != nil {
		return fmt.Errorf("failed to drop tables: %v", err)
	}
	if err := migrations.Run(db.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}

	repos := repository.NewRepositories(db.DB)
	testCtx = &TestContext{Repos: repos}

	var err error
	if testCtx.Admin, err = createUser(repos, "admin", user.RoleAdmin); err != nil {
		return err
	}
	if testCtx.Manager, err = createUser(repos, "manager", user.RoleProjectManager); err != nil {
		return err
	}
	if testCtx.Developer, err = createUser(repos, "developer", user.RoleDeveloper); err != nil {
		return err
	}

	if testCtx.AdminToken, err = generateToken(testCtx.Admin); err != nil {
		return err
	}
	if testCtx.ManagerToken, err = generateToken(testCtx.Manager); err != nil {
		return err
	}
	if testCtx.DevToken, err = generateToken(testCtx.Developer); err != nil {
		return err
	}

	hub := notify.NewHub(nil)
	go hub.Run(context.Background())

	gin.SetMode(gin.TestMode)
	testCtx.Router = gin.New()
	routes.RegisterRoutes(testCtx.Router, routes.Deps{DB: db.DB, Hub: hub, Policy: policy.Default()})
	return nil
}

func createUser(repos *repository.Repos, username, roleTitle string) (user.User, error) {
	role, err := repos.Role.GetRoleByTitle(roleTitle)
	if err != nil {
		return user.User{}, fmt.Errorf("load role %s: %w", roleTitle, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		return user.User{}, err
	}
	u := user.User{
		Username:     username,
		Email:        username + "@omnitak.com",
		PasswordHash: string(hash),
		RoleID:       &role.ID,
		CreatedAt:    time.Now(),
	}
	if err := repos.User.CreateUser(&u); err != nil {
		return user.User{}, fmt.Errorf("create user %s: %w", username, err)
	}
	u.Role = &role
	return u, nil
}

func generateToken(u user.User) (string, error) {
	token, _, err := middleware.GenerateToken(u, config.SessionTTL)
	return token, err
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
