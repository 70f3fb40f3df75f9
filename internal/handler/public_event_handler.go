package handler

import (
	"net/http"
	"strconv"

	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service"

	"github.com/gin-gonic/gin"
)

type PublicEventHandler struct {
	availability service.AvailabilityService
}

func NewPublicEventHandler(availability service.AvailabilityService) *PublicEventHandler {
	return &PublicEventHandler{availability: availability}
}

func (h *PublicEventHandler) RegisterRoutes(r *gin.RouterGroup) {
	router := r.Group("/events/public")
	{
		router.GET("upcoming", h.Upcoming)
		router.GET(":eventId", h.Get)
		router.GET(":eventId/ticket-types", h.TicketTypes)
	}
}

func (h *PublicEventHandler) Upcoming(c *gin.Context) {
	limit := service.DefaultUpcomingLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	events, err := h.availability.Upcoming(c, limit)
	if err != nil {
		handleError(c, err, "Upcoming")
		return
	}
	handleSuccess(c, events, http.StatusOK)
}

func (h *PublicEventHandler) Get(c *gin.Context) {
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}

	event, err := h.availability.ResolveEvent(c, eventID, model.ViewPublic)
	if err != nil {
		handleError(c, err, "GetPublicEvent")
		return
	}
	handleSuccess(c, event, http.StatusOK)
}

func (h *PublicEventHandler) TicketTypes(c *gin.Context) {
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}

	types, err := h.availability.ListTicketTypes(c, eventID, model.ViewPublic)
	if err != nil {
		handleError(c, err, "ListPublicTicketTypes")
		return
	}
	handleSuccess(c, types, http.StatusOK)
}
