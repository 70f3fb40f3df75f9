package handler

import (
	"net/http"
	"strings"

	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service service.TicketService
}

func NewTicketHandler(service service.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// RegisterRoutes expects r to be gated to organizers.
func (h *TicketHandler) RegisterRoutes(r *gin.RouterGroup) {
	router := r.Group("/events/:eventId/tickets")
	{
		router.GET("", h.List)
		router.POST("", h.RecordSale)
		router.PATCH(":ticketId/status", h.UpdateStatus)
	}
}

// RegisterValidationRoutes mounts the door-scanning endpoints, which take no identity.
func (h *TicketHandler) RegisterValidationRoutes(r *gin.RouterGroup) {
	router := r.Group("/tickets/validate")
	{
		router.GET(":ticketNumber", h.Validate)
		router.POST(":ticketNumber", h.CheckIn)
	}
}

func (h *TicketHandler) RecordSale(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}
	var req model.RecordSaleRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	ticket, err := h.service.RecordSale(c, orgID, eventID, &req)
	if err != nil {
		handleError(c, err, "RecordSale")
		return
	}
	handleSuccess(c, ticket, http.StatusCreated)
}

func (h *TicketHandler) List(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}

	tickets, err := h.service.ListByEvent(c, orgID, eventID)
	if err != nil {
		handleError(c, err, "ListTickets")
		return
	}
	handleSuccess(c, tickets, http.StatusOK)
}

func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}
	ticketID, ok := ParamID(c, "ticketId")
	if !ok {
		return
	}
	var req model.UpdateTicketStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	ticket, err := h.service.UpdateStatus(c, orgID, eventID, ticketID, req.Status)
	if err != nil {
		handleError(c, err, "UpdateTicketStatus")
		return
	}
	handleSuccess(c, ticket, http.StatusOK)
}

func (h *TicketHandler) Validate(c *gin.Context) {
	number := strings.TrimSpace(c.Param("ticketNumber"))
	validation, err := h.service.Validate(c, number)
	if err != nil {
		handleError(c, err, "ValidateTicket")
		return
	}
	handleSuccess(c, validation, http.StatusOK)
}

func (h *TicketHandler) CheckIn(c *gin.Context) {
	number := strings.TrimSpace(c.Param("ticketNumber"))
	validation, err := h.service.CheckIn(c, number)
	if err != nil {
		handleError(c, err, "CheckInTicket")
		return
	}
	handleSuccess(c, validation, http.StatusOK)
}
