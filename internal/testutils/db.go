package testutils

import (
	"fmt"
	"testing"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/domain/project"
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/internal/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every seeded user.
const Password = "password123"

// NewTestDB opens a private in-memory sqlite database with foreign keys on,
// migrated and seeded with the default roles.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.Run(db))
	return db
}

func roleID(t *testing.T, db *gorm.DB, title string) *uint {
	t.Helper()
	var r user.Role
	require.NoError(t, db.Where("title = ?", title).First(&r).Error)
	return &r.ID
}

// SeedUser inserts a user with the given role title; an empty title leaves
// the role unset.
func SeedUser(t *testing.T, db *gorm.DB, username, role string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	u := user.User{
		Username:     username,
		Email:        username + "@omnitak.com",
		PasswordHash: string(hash),
	}
	if role != "" {
		u.RoleID = roleID(t, db, role)
	}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Preload("Role").First(&u, u.ID).Error)
	return u
}

func SeedProject(t *testing.T, db *gorm.DB, name string, creatorID uint) project.Project {
	t.Helper()
	p := project.Project{
		Name:            name,
		Status:          project.StatusActive,
		CreatedByUserID: creatorID,
		CreatedAt:       time.Now(),
		Version:         1,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

// SeedTicket inserts a To Do ticket; assignee may be nil.
func SeedTicket(t *testing.T, db *gorm.DB, title string, projectID, creatorID uint, assignee *uint) ticket.Ticket {
	t.Helper()
	tk := ticket.Ticket{
		Title:            title,
		ProjectID:        projectID,
		AssignedToUserID: assignee,
		Status:           ticket.StatusToDo,
		Priority:         ticket.PriorityMedium,
		CreatedByUserID:  creatorID,
		CreatedAt:        time.Now(),
		Version:          1,
	}
	require.NoError(t, db.Create(&tk).Error)
	return tk
}

func SeedComment(t *testing.T, db *gorm.DB, ticketID, userID uint, text string) ticket.Comment {
	t.Helper()
	c := ticket.Comment{TicketID: ticketID, UserID: userID, Text: text, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&c).Error)
	return c
}
