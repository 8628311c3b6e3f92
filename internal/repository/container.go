package repository

import (
	"gorm.io/gorm"
)

type Repos struct {
	User    UserRepo
	Role    RoleRepo
	Project ProjectRepo
	Ticket  TicketRepo
	Comment CommentRepo
	Session SessionRepo
	Audit   AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		User:    NewUserRepo(db),
		Role:    NewRoleRepo(db),
		Project: NewProjectRepo(db),
		Ticket:  NewTicketRepo(db),
		Comment: NewCommentRepo(db),
		Session: NewSessionRepo(db),
		Audit:   NewAuditRepo(db),
		db:      db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		User:    r.User.WithTx(tx),
		Role:    r.Role.WithTx(tx),
		Project: r.Project.WithTx(tx),
		Ticket:  r.Ticket.WithTx(tx),
		Comment: r.Comment.WithTx(tx),
		Session: r.Session.WithTx(tx),
		Audit:   r.Audit.WithTx(tx),
		db:      tx,
	}
}

// ExecTx runs fn against repositories bound to a single transaction. It
// commits when fn returns nil and rolls back otherwise.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
