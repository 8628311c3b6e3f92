package handlers

import (
	"net/http"

	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/pkg/response"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc *application.ReportService
}

func NewReportHandler(svc *application.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// ProjectReports godoc
// @Summary Ticket counts and lists per project
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Success 200 {array} report.ProjectReport
// @Failure 403 {object} response.ErrorResponse
// @Router /reports/projects [get]
func (h *ReportHandler) ProjectReports(c *gin.Context) {
	reports, err := h.svc.ProjectReports()
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// UserReports godoc
// @Summary Ticket counts and lists per assignee
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Success 200 {object} application.UserReports
// @Failure 403 {object} response.ErrorResponse
// @Router /reports/users [get]
func (h *ReportHandler) UserReports(c *gin.Context) {
	reports, err := h.svc.UserReports()
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, reports)
}

// ArchiveProjectReports godoc
// @Summary Store a snapshot of the project reports in object storage
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Success 201 {object} response.ArchiveResponse
// @Failure 503 {object} response.ErrorResponse "Archive storage not configured"
// @Router /reports/projects/archive [post]
func (h *ReportHandler) ArchiveProjectReports(c *gin.Context) {
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	key, err := h.svc.ArchiveProjectReports(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, response.ArchiveResponse{Message: "Report archived", Object: key})
}
