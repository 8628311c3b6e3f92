package handlers

import (
	"net/http"

	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/pkg/response"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *application.AdminService
}

func NewAdminHandler(svc *application.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// DeleteUserResponse reports what was handed over to the deleting admin.
type DeleteUserResponse struct {
	Message string `json:"message"`
	application.DeleteUserResult
}

// ListRoles godoc
// @Summary List roles
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} user.Role
// @Router /roles [get]
func (h *AdminHandler) ListRoles(c *gin.Context) {
	roles, err := h.svc.ListRoles()
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// UpdateUserRole godoc
// @Summary Change another user's role
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param input body user.UpdateRoleInput true "New role"
// @Success 200 {object} user.UserDTO
// @Failure 403 {object} response.ErrorResponse "Own role or not an admin"
// @Failure 404 {object} response.ErrorResponse "User or role not found"
// @Router /users/{id}/role [put]
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		respondBadID(c, "user")
		return
	}
	var input user.UpdateRoleInput
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err, nil)
		return
	}
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	u, err := h.svc.UpdateUserRole(actor, id, input.RoleID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, user.ToDTO(u))
}

// DeleteUser godoc
// @Summary Delete another user's account
// @Description Tickets, projects and comments of the user are reassigned to the acting admin.
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} DeleteUserResponse
// @Failure 403 {object} response.ErrorResponse "Own account or not an admin"
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		respondBadID(c, "user")
		return
	}
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	result, err := h.svc.DeleteUser(actor, id)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, DeleteUserResponse{Message: "User deleted successfully", DeleteUserResult: result})
}
