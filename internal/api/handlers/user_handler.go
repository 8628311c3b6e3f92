package handlers

import (
	"log/slog"
	"net/http"

	"github.com/TraderJoe97/StackFlow/internal/api/middleware"
	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/internal/config"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/pkg/response"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func sessionResponse(u user.User, token string) response.SessionResponse {
	return response.SessionResponse{
		Token:    token,
		UID:      u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.RoleTitle(),
	}
}

// Register godoc
// @Summary Register a Developer account and sign in
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param input body user.RegisterInput true "Registration info"
// @Success 201 {object} response.SessionResponse
// @Failure 400 {object} response.ValidationResponse "Invalid input or email outside the corporate domain"
// @Failure 409 {object} response.ValidationResponse "Email already registered"
// @Failure 500 {object} response.ErrorResponse
// @Router /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err, nil)
		return
	}

	u, token, err := h.svc.Register(input)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	middleware.SetSessionCookie(c, token, config.SessionTTL)
	c.JSON(http.StatusCreated, sessionResponse(u, token))
}

// Login godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param input body user.LoginInput true "Credentials"
// @Success 200 {object} response.SessionResponse
// @Failure 400 {object} response.ValidationResponse "Invalid input or email outside the corporate domain"
// @Failure 401 {object} response.ValidationResponse "Invalid email or password"
// @Failure 500 {object} response.ErrorResponse
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input user.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err, nil)
		return
	}

	u, token, err := h.svc.Login(input)
	if err != nil {
		respondError(c, err, nil)
		return
	}

	middleware.SetSessionCookie(c, token, config.SessionTTL)
	c.JSON(http.StatusOK, sessionResponse(u, token))
}

// Logout godoc
// @Summary End the current session
// @Description Revokes the presented token, if any, and clears the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if tokenStr, ok := middleware.TokenFromRequest(c); ok && tokenStr != "" {
		if claims, err := middleware.ParseToken(tokenStr); err == nil {
			if err := h.svc.Logout(claims); err != nil {
				slog.Warn("failed to revoke session", "user_id", claims.UserID, "error", err)
			}
		}
	}

	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logout successful"})
}

// AuthStatus godoc
// @Summary Current session user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} user.UserDTO
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/status [get]
func (h *UserHandler) AuthStatus(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "token expired"})
		return
	}
	u, err := h.svc.GetUser(uid)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, user.ToDTO(u))
}
