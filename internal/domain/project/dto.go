package project

type CreateProjectDTO struct {
	Name        string `json:"project_name" form:"project_name" binding:"required,max=255"`
	Description string `json:"description" form:"description"`
	StartDate   string `json:"start_date" form:"start_date" example:"2025-01-31"`
	EndDate     string `json:"end_date" form:"end_date" example:"2025-06-30"`
	Status      string `json:"status" form:"status" binding:"required" example:"Active"`
}

type UpdateProjectDTO struct {
	Name        *string `json:"project_name,omitempty" form:"project_name,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty" form:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty" form:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty" form:"end_date,omitempty"`
	Status      *string `json:"status,omitempty" form:"status,omitempty"`
	Version     int     `json:"version" form:"version" binding:"required"`
}
