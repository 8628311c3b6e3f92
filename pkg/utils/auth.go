package utils

import (
	"errors"

	"github.com/TraderJoe97/StackFlow/pkg/types"
	"github.com/gin-gonic/gin"
)

var ErrNoClaims = errors.New("user claims not found in context")

func GetClaimsFromContext(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, ErrNoClaims
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}
	return claims, nil
}

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// ActorFromContext builds the acting user from the request claims. The role
// set by the auth middleware (read from the store) wins over the one in the
// token.
func ActorFromContext(c *gin.Context) (types.Actor, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return types.Actor{}, err
	}
	role := claims.Role
	if r, ok := c.Get("role"); ok {
		role, _ = r.(string)
	}
	return types.Actor{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      role,
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}, nil
}
