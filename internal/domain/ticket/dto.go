package ticket

type CreateTicketDTO struct {
	Title            string `json:"title" form:"title" binding:"required,max=255"`
	Description      string `json:"description" form:"description"`
	ProjectID        uint   `json:"project_id" form:"project_id" binding:"required"`
	AssignedToUserID *uint  `json:"assigned_to_user_id" form:"assigned_to_user_id"`
	Status           string `json:"status" form:"status" binding:"required" example:"To Do"`
	Priority         string `json:"priority" form:"priority" binding:"required" example:"Medium"`
	DueDate          string `json:"due_date" form:"due_date" example:"2025-08-01"`
}

type UpdateTicketDTO struct {
	CreateTicketDTO
	Version int `json:"version" form:"version" binding:"required"`
}

type UpdateStatusDTO struct {
	Status  string `json:"status" form:"status" binding:"required" example:"In Review"`
	Version *int   `json:"version,omitempty" form:"version"`
}

type CommentDTO struct {
	Text string `json:"comment_text" form:"comment_text" binding:"required"`
}
