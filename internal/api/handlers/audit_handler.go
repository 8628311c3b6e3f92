package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/response"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	svc *application.AuditService
}

func NewAuditHandler(svc *application.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// GetAuditLogs godoc
// @Summary      Query audit logs
// @Description  Filter by user, resource type, action and time range, with pagination.
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        user_id       query     uint     false  "User ID" example(7)
// @Param        resource_type query     string   false  "Resource type" example("ticket")
// @Param        action        query     string   false  "Action" example("update_status")
// @Param        start_time    query     string   false  "Start time (RFC3339)" example("2025-01-01T00:00:00Z")
// @Param        end_time      query     string   false  "End time (RFC3339)" example("2025-02-01T00:00:00Z")
// @Param        limit         query     int      false  "Max records (default 100, max 1000)" example(100)
// @Param        offset        query     int      false  "Offset" example(0)
// @Success      200 {array}   audit.AuditLog
// @Failure      400 {object}  response.ErrorResponse "Invalid query parameters"
// @Router       /audit/logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	var params repository.AuditQueryParams

	if uid, err := utils.ParseQueryUintParam(c, "user_id"); err != nil {
		if !errors.Is(err, utils.ErrEmptyParameter) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid user_id"})
			return
		}
	} else {
		params.UserID = &uid
	}

	if rt := c.Query("resource_type"); rt != "" {
		params.ResourceType = &rt
	}
	if act := c.Query("action"); act != "" {
		params.Action = &act
	}

	if start := c.Query("start_time"); start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid start_time"})
			return
		}
		params.StartTime = &t
	}
	if end := c.Query("end_time"); end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid end_time"})
			return
		}
		params.EndTime = &t
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	params.Limit = limit
	params.Offset = offset

	logs, err := h.svc.QueryAuditLogs(params)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, logs)
}
