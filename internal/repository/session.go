package repository

import (
	"time"

	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepo interface {
	Revoke(s *user.RevokedSession) error
	IsRevoked(jti string) (bool, error)
	PurgeExpired(now time.Time) (int64, error)
	WithTx(tx *gorm.DB) SessionRepo
}

type DBSessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *DBSessionRepo {
	return &DBSessionRepo{
		db: db,
	}
}

func (r *DBSessionRepo) Revoke(s *user.RevokedSession) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(s).Error
}

func (r *DBSessionRepo) IsRevoked(jti string) (bool, error) {
	var count int64
	err := r.db.Model(&user.RevokedSession{}).Where("jti = ?", jti).Count(&count).Error
	return count > 0, err
}

func (r *DBSessionRepo) PurgeExpired(now time.Time) (int64, error) {
	res := r.db.Where("expires_at < ?", now).Delete(&user.RevokedSession{})
	return res.RowsAffected, res.Error
}

func (r *DBSessionRepo) WithTx(tx *gorm.DB) SessionRepo {
	if tx == nil {
		return r
	}
	return &DBSessionRepo{
		db: tx,
	}
}
