package user

import "time"

const (
	RoleAdmin          = "Admin"
	RoleProjectManager = "Project Manager"
	RoleDeveloper      = "Developer"

	// DefaultRole is given to every newly registered account.
	DefaultRole = RoleDeveloper
)

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:50;not null;uniqueIndex" json:"title"`
	Description string `gorm:"size:255" json:"description"`
}

func (Role) TableName() string {
	return "roles"
}

// DefaultRoles is the seed set created by migrations.
func DefaultRoles() []Role {
	return []Role{
		{ID: 1, Title: RoleAdmin, Description: "Administrator with full access"},
		{ID: 2, Title: RoleProjectManager, Description: "Manages projects and tickets"},
		{ID: 3, Title: RoleDeveloper, Description: "Works on assigned tickets"},
	}
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;not null" json:"username"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RoleID       *uint     `json:"role_id"`
	Role         *Role     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"role,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// RoleTitle returns an empty string when the user has no role.
func (u User) RoleTitle() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Title
}

// RevokedSession marks a session token id as logged out until it would have
// expired anyway.
type RevokedSession struct {
	JTI       string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (RevokedSession) TableName() string {
	return "revoked_sessions"
}
