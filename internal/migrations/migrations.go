package migrations

import (
	"fmt"

	"github.com/TraderJoe97/StackFlow/internal/domain/audit"
	"github.com/TraderJoe97/StackFlow/internal/domain/project"
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&user.Role{},
		&user.User{},
		&project.Project{},
		&ticket.Ticket{},
		&ticket.Comment{},
		&audit.AuditLog{},
		&user.RevokedSession{},
	}
}

// Run migrates the schema and seeds the built-in roles.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := repository.NewRoleRepo(db).SeedDefaults(); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}
