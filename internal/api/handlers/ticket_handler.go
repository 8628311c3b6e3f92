package handlers

import (
	"net/http"

	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/internal/domain/ticket"
	"github.com/TraderJoe97/StackFlow/pkg/response"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	svc *application.TicketService
}

func NewTicketHandler(svc *application.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// formOptions is best effort: a failed lookup still lets the 400 go out.
func (h *TicketHandler) formOptions() any {
	opts, err := h.svc.FormOptions()
	if err != nil {
		return nil
	}
	return opts
}

// FormOptions godoc
// @Summary Choices for the ticket forms
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ticket.FormOptions
// @Failure 500 {object} response.ErrorResponse
// @Router /tickets/form-options [get]
func (h *TicketHandler) FormOptions(c *gin.Context) {
	opts, err := h.svc.FormOptions()
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// CreateTicket godoc
// @Summary Create a ticket
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body ticket.CreateTicketDTO true "Ticket"
// @Success 201 {object} ticket.Ticket
// @Failure 400 {object} response.ValidationResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var input ticket.CreateTicketDTO
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err, h.formOptions())
		return
	}
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	t, err := h.svc.Create(actor, input)
	if err != nil {
		respondError(c, err, h.formOptions())
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GetTicket godoc
// @Summary Ticket details with comments
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} ticket.Details
// @Failure 404 {object} response.ErrorResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		respondBadID(c, "ticket")
		return
	}
	d, err := h.svc.Get(id)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UpdateTicket godoc
// @Summary Edit a ticket
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param input body ticket.UpdateTicketDTO true "Ticket"
// @Success 200 {object} ticket.Ticket
// @Failure 400 {object} response.ValidationResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Edited by someone else"
// @Router /tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		respondBadID(c, "ticket")
		return
	}
	var input ticket.UpdateTicketDTO
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err, h.formOptions())
		return
	}
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	t, err := h.svc.Edit(actor, id, input)
	if err != nil {
		respondError(c, err, h.formOptions())
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTicketStatus godoc
// @Summary Move a ticket to another status
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param input body ticket.UpdateStatusDTO true "New status"
// @Success 200 {object} ticket.Ticket
// @Failure 400 {object} response.ValidationResponse "Invalid status value"
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /tickets/{id}/status [put]
func (h *TicketHandler) UpdateTicketStatus(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		respondBadID(c, "ticket")
		return
	}
	var input ticket.UpdateStatusDTO
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err, nil)
		return
	}
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	t, err := h.svc.UpdateStatus(actor, id, input)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTicket godoc
// @Summary Delete a ticket and its comments
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		respondBadID(c, "ticket")
		return
	}
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.svc.Delete(actor, id); err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Ticket deleted successfully"})
}

// AddComment godoc
// @Summary Comment on a ticket
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param input body ticket.CommentDTO true "Comment"
// @Success 201 {object} ticket.Comment
// @Failure 400 {object} response.ValidationResponse "Comment cannot be empty"
// @Failure 404 {object} response.ErrorResponse
// @Router /tickets/{id}/comments [post]
func (h *TicketHandler) AddComment(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		respondBadID(c, "ticket")
		return
	}
	var input ticket.CommentDTO
	if err := c.ShouldBind(&input); err != nil {
		respondBindError(c, err, nil)
		return
	}
	actor, err := utils.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	comment, err := h.svc.AddComment(actor, id, input)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
