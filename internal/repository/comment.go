package repository

import (
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(c *ticket.Comment) error
	ListByTicket(ticketID uint) ([]ticket.Comment, error)
	DeleteByTicket(ticketID uint) (int64, error)
	DeleteByProject(projectID uint) (int64, error)
	ReassignAuthor(fromUserID, toUserID uint) (int64, error)
	WithTx(tx *gorm.DB) CommentRepo
}

type DBCommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *DBCommentRepo {
	return &DBCommentRepo{
		db: db,
	}
}

func (r *DBCommentRepo) CreateComment(c *ticket.Comment) error {
	return r.db.Create(c).Error
}

func (r *DBCommentRepo) ListByTicket(ticketID uint) ([]ticket.Comment, error) {
	var comments []ticket.Comment
	err := r.db.Where("ticket_id = ?", ticketID).Order("created_at, id").Find(&comments).Error
	return comments, err
}

func (r *DBCommentRepo) DeleteByTicket(ticketID uint) (int64, error) {
	res := r.db.Where("ticket_id = ?", ticketID).Delete(&ticket.Comment{})
	return res.RowsAffected, res.Error
}

func (r *DBCommentRepo) DeleteByProject(projectID uint) (int64, error) {
	res := r.db.
		Where("ticket_id IN (?)", r.db.Model(&ticket.Ticket{}).Select("id").Where("project_id = ?", projectID)).
		Delete(&ticket.Comment{})
	return res.RowsAffected, res.Error
}

func (r *DBCommentRepo) ReassignAuthor(fromUserID, toUserID uint) (int64, error) {
	res := r.db.Model(&ticket.Comment{}).
		Where("user_id = ?", fromUserID).
		Update("user_id", toUserID)
	return res.RowsAffected, res.Error
}

func (r *DBCommentRepo) WithTx(tx *gorm.DB) CommentRepo {
	if tx == nil {
		return r
	}
	return &DBCommentRepo{
		db: tx,
	}
}
