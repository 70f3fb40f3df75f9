package handler

import (
	"net/http"

	"byblos-atelier/internal/middleware"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service"

	"github.com/gin-gonic/gin"
)

// EventHandler serves an organizer's own events and their ticket types.
type EventHandler struct {
	events      service.EventService
	ticketTypes service.TicketTypeService
}

func NewEventHandler(events service.EventService, ticketTypes service.TicketTypeService) *EventHandler {
	return &EventHandler{events: events, ticketTypes: ticketTypes}
}

// RegisterRoutes expects r to be gated to organizers.
func (h *EventHandler) RegisterRoutes(r *gin.RouterGroup) {
	router := r.Group("/events")
	{
		router.POST("", h.Create)
		router.GET("", h.List)
		router.GET(":eventId", h.Get)
		router.PUT(":eventId", h.Update)
		router.DELETE(":eventId", h.Delete)
		router.PATCH(":eventId/status", h.UpdateStatus)

		router.POST(":eventId/ticket-types", h.CreateTicketType)
		router.PUT(":eventId/ticket-types/:typeId", h.UpdateTicketType)
		router.DELETE(":eventId/ticket-types/:typeId", h.DeleteTicketType)
	}
}

// organizerID is only called behind RequireRole(organizer).
func organizerID(c *gin.Context) (int, bool) {
	account, ok := middleware.Account(c)
	if !ok || account.Role != model.RoleOrganizer {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return 0, false
	}
	return account.ID, true
}

func (h *EventHandler) Create(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.events.Create(c, orgID, &req)
	if err != nil {
		handleError(c, err, "CreateEvent")
		return
	}
	handleSuccess(c, created, http.StatusCreated)
}

func (h *EventHandler) List(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}

	events, err := h.events.ListByOrganizer(c, orgID)
	if err != nil {
		handleError(c, err, "ListEvents")
		return
	}
	handleSuccess(c, events, http.StatusOK)
}

func (h *EventHandler) Get(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}

	event, err := h.events.Get(c, orgID, eventID)
	if err != nil {
		handleError(c, err, "GetEvent")
		return
	}
	handleSuccess(c, event, http.StatusOK)
}

func (h *EventHandler) Update(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}
	var req model.UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.events.Update(c, orgID, eventID, req.Params())
	if err != nil {
		handleError(c, err, "UpdateEvent")
		return
	}
	handleSuccess(c, updated, http.StatusOK)
}

func (h *EventHandler) UpdateStatus(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}
	var req model.UpdateEventStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.events.UpdateStatus(c, orgID, eventID, req.Status)
	if err != nil {
		handleError(c, err, "UpdateEventStatus")
		return
	}
	handleSuccess(c, updated, http.StatusOK)
}

func (h *EventHandler) Delete(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}

	if err := h.events.Delete(c, orgID, eventID); err != nil {
		handleError(c, err, "DeleteEvent")
		return
	}
	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *EventHandler) CreateTicketType(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}
	var req model.TicketTypeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.ticketTypes.Create(c, orgID, eventID, &req)
	if err != nil {
		handleError(c, err, "CreateTicketType")
		return
	}
	handleSuccess(c, created, http.StatusCreated)
}

func (h *EventHandler) UpdateTicketType(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}
	typeID, ok := ParamID(c, "typeId")
	if !ok {
		return
	}
	var req model.TicketTypeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.ticketTypes.Update(c, orgID, eventID, typeID, &req)
	if err != nil {
		handleError(c, err, "UpdateTicketType")
		return
	}
	handleSuccess(c, updated, http.StatusOK)
}

func (h *EventHandler) DeleteTicketType(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}
	typeID, ok := ParamID(c, "typeId")
	if !ok {
		return
	}

	if err := h.ticketTypes.Delete(c, orgID, eventID, typeID); err != nil {
		handleError(c, err, "DeleteTicketType")
		return
	}
	handleSuccess(c, nil, http.StatusNoContent)
}
