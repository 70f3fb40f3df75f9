package handler

import (
	"net/http"

	"byblos-atelier/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes expects r to be gated to organizers.
func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	router := r.Group("/dashboard/stats")
	{
		router.GET("", h.Stats)
		router.POST("refresh", h.Refresh)
	}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}

	stats, err := h.service.Get(c, orgID)
	if err != nil {
		handleError(c, err, "DashboardStats")
		return
	}
	handleSuccess(c, stats, http.StatusOK)
}

func (h *DashboardHandler) Refresh(c *gin.Context) {
	orgID, ok := organizerID(c)
	if !ok {
		return
	}

	stats, err := h.service.Refresh(c, orgID)
	if err != nil {
		handleError(c, err, "RefreshDashboardStats")
		return
	}
	handleSuccess(c, stats, http.StatusOK)
}
