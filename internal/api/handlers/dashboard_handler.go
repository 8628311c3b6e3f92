package handlers

import (
	"net/http"

	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/pkg/response"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *application.DashboardService
}

func NewDashboardHandler(svc *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Dashboard godoc
// @Summary Board, own tickets and projects for the signed-in user
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} application.Dashboard
// @Router /dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}
	d, err := h.svc.Index(actor)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Insights godoc
// @Summary Ticket counts by status
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} report.Counts
// @Router /dashboard/insights [get]
func (h *DashboardHandler) Insights(c *gin.Context) {
	counts, err := h.svc.Insights()
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// AssignedTickets godoc
// @Summary Tickets assigned to a user
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} ticket.Summary
// @Router /dashboard/assigned-tickets/{id} [get]
func (h *DashboardHandler) AssignedTickets(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		respondBadID(c, "user")
		return
	}
	tickets, err := h.svc.AssignedTickets(id)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// Projects godoc
// @Summary Project overview for the dashboard
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {array} project.Overview
// @Router /dashboard/projects [get]
func (h *DashboardHandler) Projects(c *gin.Context) {
	projects, err := h.svc.ProjectsOverview()
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, projects)
}
