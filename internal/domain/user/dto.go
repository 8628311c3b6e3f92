package user

type RegisterInput struct {
	Username string `json:"username" form:"username" binding:"required,min=3,max=50" example:"jdoe"`
	Email    string `json:"email" form:"email" binding:"required,email,max=100" example:"jdoe@omnitak.com"`
	Password string `json:"password" form:"password" binding:"required,min=6" example:"password123"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email" binding:"required,email" example:"jdoe@omnitak.com"`
	Password string `json:"password" form:"password" binding:"required" example:"password123"`
}

type UpdateRoleInput struct {
	RoleID uint `json:"role_id" form:"role_id" binding:"required" example:"2"`
}

type UserDTO struct {
	ID        uint   `json:"id" example:"7"`
	Username  string `json:"username" example:"jdoe"`
	Email     string `json:"email" example:"jdoe@omnitak.com"`
	Role      string `json:"role" example:"Developer"`
	CreatedAt string `json:"created_at" example:"2025-07-17 15:20:41"`
}

func ToDTO(u User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.RoleTitle(),
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
