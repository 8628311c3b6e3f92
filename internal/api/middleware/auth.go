package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/config"
	"github.com/TraderJoe97/StackFlow/internal/policy"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/response"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Auth gates routes on the action policy.
type Auth struct {
	repos  *repository.Repos
	policy *policy.Policy
}

func NewAuth(repos *repository.Repos, p *policy.Policy) *Auth {
	if p == nil {
		p = policy.Default()
	}
	return &Auth{repos: repos, policy: p}
}

// Require allows the request through only if the caller's current role may
// run action. The role is read from the store, so a role change applies to
// sessions that are already open.
func (a *Auth) Require(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.GetClaimsFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
			return
		}

		u, err := a.repos.User.GetUserByID(claims.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "account no longer exists"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
			return
		}

		role := u.RoleTitle()
		c.Set("role", role)
		if !a.policy.Allows(action, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "Permission denied"})
			return
		}
		c.Next()
	}
}

// OriginAllowed reports whether a browser origin may call the API.
func OriginAllowed(origin string) bool {
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
		return true
	}
	for _, allowed := range config.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// CORSMiddleware allows local development origins plus ALLOWED_ORIGINS.
// Websocket upgrades are left to the upgrader's origin check.
func CORSMiddleware() gin.HandlerFunc {
	corsHandler := cors.New(cors.Config{
		AllowOriginFunc:  OriginAllowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RefreshedTokenHeader, RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})

	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}
		corsHandler(c)
	}
}
