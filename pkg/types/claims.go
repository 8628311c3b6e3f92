package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the session principal carried in the token cookie.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
