package repository

import (
	"github.com/TraderJoe97/StackFlow/internal/domain/project"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	GetProjectByID(id uint) (project.Project, error)
	ListProjects() ([]project.Project, error)
	ListProjectOverviews() ([]project.Overview, error)
	CreateProject(p *project.Project) error
	UpdateProject(p *project.Project) error
	DeleteProject(id uint) error
	ReassignCreator(fromUserID, toUserID uint) (int64, error)
	WithTx(tx *gorm.DB) ProjectRepo
}

type DBProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *DBProjectRepo {
	return &DBProjectRepo{
		db: db,
	}
}

func (r *DBProjectRepo) GetProjectByID(id uint) (project.Project, error) {
	var p project.Project
	err := r.db.First(&p, id).Error
	return p, err
}

func (r *DBProjectRepo) ListProjects() ([]project.Project, error) {
	var projects []project.Project
	err := r.db.Order("project_name").Find(&projects).Error
	return projects, err
}

func (r *DBProjectRepo) ListProjectOverviews() ([]project.Overview, error) {
	var rows []project.Overview
	err := r.db.Table("projects p").
		Select(`
			p.id, p.project_name AS name, p.description, p.project_status AS status,
			p.start_date, p.end_date, p.created_by_user_id,
			COALESCE(u.username, '') AS created_by_username,
			(SELECT COUNT(*) FROM tickets t WHERE t.project_id = p.id) AS ticket_count
		`).
		Joins("LEFT JOIN users u ON u.id = p.created_by_user_id").
		Order("p.project_name").
		Scan(&rows).Error
	return rows, err
}

func (r *DBProjectRepo) CreateProject(p *project.Project) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return r.db.Create(p).Error
}

// UpdateProject writes p only if its Version still matches the stored row and
// bumps the version on success.
func (r *DBProjectRepo) UpdateProject(p *project.Project) error {
	res := r.db.Model(&project.Project{}).
		Where("id = ? AND version = ?", p.ID, p.Version).
		Updates(map[string]any{
			"project_name":   p.Name,
			"description":    p.Description,
			"start_date":     p.StartDate,
			"end_date":       p.EndDate,
			"project_status": p.Status,
			"version":        p.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleWrite
	}
	p.Version++
	return nil
}

func (r *DBProjectRepo) DeleteProject(id uint) error {
	res := r.db.Delete(&project.Project{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBProjectRepo) ReassignCreator(fromUserID, toUserID uint) (int64, error) {
	res := r.db.Model(&project.Project{}).
		Where("created_by_user_id = ?", fromUserID).
		Update("created_by_user_id", toUserID)
	return res.RowsAffected, res.Error
}

func (r *DBProjectRepo) WithTx(tx *gorm.DB) ProjectRepo {
	if tx == nil {
		return r
	}
	return &DBProjectRepo{
		db: tx,
	}
}
