package repository

import (
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"gorm.io/gorm"
)

type TicketRepo interface {
	GetTicketByID(id uint) (ticket.Ticket, error)
	GetTicketDetails(id uint) (ticket.Details, error)
	ListSummaries() ([]ticket.Summary, error)
	ListSummariesByProject(projectID uint) ([]ticket.Summary, error)
	ListSummariesByAssignee(userID uint) ([]ticket.Summary, error)
	CreateTicket(t *ticket.Ticket) error
	UpdateTicket(t *ticket.Ticket) error
	DeleteTicket(id uint) error
	DeleteByProject(projectID uint) (int64, error)
	ReassignAssignee(fromUserID, toUserID uint) (int64, error)
	ReassignCreator(fromUserID, toUserID uint) (int64, error)
	WithTx(tx *gorm.DB) TicketRepo
}

type DBTicketRepo struct {
	db *gorm.DB
}

func NewTicketRepo(db *gorm.DB) *DBTicketRepo {
	return &DBTicketRepo{
		db: db,
	}
}

func (r *DBTicketRepo) GetTicketByID(id uint) (ticket.Ticket, error) {
	var t ticket.Ticket
	err := r.db.First(&t, id).Error
	return t, err
}

func (r *DBTicketRepo) GetTicketDetails(id uint) (ticket.Details, error) {
	var t ticket.Ticket
	err := r.db.Preload("Project").Preload("AssignedTo").Preload("CreatedBy").First(&t, id).Error
	if err != nil {
		return ticket.Details{}, err
	}

	d := ticket.Details{Comments: []ticket.CommentView{}}
	if t.Project != nil {
		d.ProjectName = t.Project.Name
	}
	if t.AssignedTo != nil {
		d.AssigneeUsername = t.AssignedTo.Username
	}
	if t.CreatedBy != nil {
		d.CreatedByUsername = t.CreatedBy.Username
	}
	t.Project, t.AssignedTo, t.CreatedBy = nil, nil, nil
	d.Ticket = t

	err = r.db.Table("ticket_comments c").
		Select("c.id, c.ticket_id, c.user_id, COALESCE(u.username, '') AS username, c.comment_text AS text, c.created_at").
		Joins("LEFT JOIN users u ON u.id = c.user_id").
		Where("c.ticket_id = ?", id).
		Order("c.created_at, c.id").
		Scan(&d.Comments).Error
	return d, err
}

func (r *DBTicketRepo) summaries() *gorm.DB {
	return r.db.Table("tickets t").
		Select(`
			t.id, t.title, t.status, t.priority, t.due_date, t.project_id,
			COALESCE(p.project_name, '') AS project_name,
			t.assigned_to_user_id,
			COALESCE(u.username, '') AS assignee_username
		`).
		Joins("LEFT JOIN projects p ON p.id = t.project_id").
		Joins("LEFT JOIN users u ON u.id = t.assigned_to_user_id").
		Order("t.id")
}

func (r *DBTicketRepo) ListSummaries() ([]ticket.Summary, error) {
	rows := []ticket.Summary{}
	err := r.summaries().Scan(&rows).Error
	return rows, err
}

func (r *DBTicketRepo) ListSummariesByProject(projectID uint) ([]ticket.Summary, error) {
	rows := []ticket.Summary{}
	err := r.summaries().Where("t.project_id = ?", projectID).Scan(&rows).Error
	return rows, err
}

func (r *DBTicketRepo) ListSummariesByAssignee(userID uint) ([]ticket.Summary, error) {
	rows := []ticket.Summary{}
	err := r.summaries().Where("t.assigned_to_user_id = ?", userID).Scan(&rows).Error
	return rows, err
}

func (r *DBTicketRepo) CreateTicket(t *ticket.Ticket) error {
	if t.Version == 0 {
		t.Version = 1
	}
	return r.db.Create(t).Error
}

// UpdateTicket writes t only if its Version still matches the stored row and
// bumps the version on success. CreatedByUserID and CreatedAt are never
// written.
func (r *DBTicketRepo) UpdateTicket(t *ticket.Ticket) error {
	res := r.db.Model(&ticket.Ticket{}).
		Where("id = ? AND version = ?", t.ID, t.Version).
		Updates(map[string]any{
			"title":               t.Title,
			"description":         t.Description,
			"project_id":          t.ProjectID,
			"assigned_to_user_id": t.AssignedToUserID,
			"status":              t.Status,
			"priority":            t.Priority,
			"due_date":            t.DueDate,
			"completed_at":        t.CompletedAt,
			"version":             t.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleWrite
	}
	t.Version++
	return nil
}

func (r *DBTicketRepo) DeleteTicket(id uint) error {
	res := r.db.Delete(&ticket.Ticket{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBTicketRepo) DeleteByProject(projectID uint) (int64, error) {
	res := r.db.Where("project_id = ?", projectID).Delete(&ticket.Ticket{})
	return res.RowsAffected, res.Error
}

func (r *DBTicketRepo) ReassignAssignee(fromUserID, toUserID uint) (int64, error) {
	res := r.db.Model(&ticket.Ticket{}).
		Where("assigned_to_user_id = ?", fromUserID).
		Update("assigned_to_user_id", toUserID)
	return res.RowsAffected, res.Error
}

func (r *DBTicketRepo) ReassignCreator(fromUserID, toUserID uint) (int64, error) {
	res := r.db.Model(&ticket.Ticket{}).
		Where("created_by_user_id = ?", fromUserID).
		Update("created_by_user_id", toUserID)
	return res.RowsAffected, res.Error
}

func (r *DBTicketRepo) WithTx(tx *gorm.DB) TicketRepo {
	if tx == nil {
		return r
	}
	return &DBTicketRepo{
		db: tx,
	}
}
