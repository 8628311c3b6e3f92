package repository

import (
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepo interface {
	GetRoleByID(id uint) (user.Role, error)
	GetRoleByTitle(title string) (user.Role, error)
	ListRoles() ([]user.Role, error)
	SeedDefaults() error
	WithTx(tx *gorm.DB) RoleRepo
}

type DBRoleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) *DBRoleRepo {
	return &DBRoleRepo{
		db: db,
	}
}

func (r *DBRoleRepo) GetRoleByID(id uint) (user.Role, error) {
	var role user.Role
	err := r.db.First(&role, id).Error
	return role, err
}

func (r *DBRoleRepo) GetRoleByTitle(title string) (user.Role, error) {
	var role user.Role
	err := r.db.Where("title = ?", title).First(&role).Error
	return role, err
}

func (r *DBRoleRepo) ListRoles() ([]user.Role, error) {
	var roles []user.Role
	err := r.db.Order("id").Find(&roles).Error
	return roles, err
}

// SeedDefaults inserts the built-in roles, leaving existing rows untouched.
func (r *DBRoleRepo) SeedDefaults() error {
	roles := user.DefaultRoles()
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}

func (r *DBRoleRepo) WithTx(tx *gorm.DB) RoleRepo {
	if tx == nil {
		return r
	}
	return &DBRoleRepo{
		db: tx,
	}
}
