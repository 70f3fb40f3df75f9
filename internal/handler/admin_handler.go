package handler

import (
	"net/http"

	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin  service.AdminService
	events service.EventService
	cookie CookieOptions
}

func NewAdminHandler(admin service.AdminService, events service.EventService, cookie CookieOptions) *AdminHandler {
	return &AdminHandler{admin: admin, events: events, cookie: cookie}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, limit func(scope string) gin.HandlerFunc, protect ...gin.HandlerFunc) {
	r.POST("login", limit("admin:login"), h.Login)

	protected := r.Group("", protect...)
	{
		protected.GET("dashboard", h.Dashboard)
		protected.GET("sellers", h.ListSellers)
		protected.GET("organizers", h.ListOrganizers)
		protected.GET("events", h.ListEvents)
		protected.DELETE("sellers/:id", h.DeleteSeller)
		protected.DELETE("organizers/:id", h.DeleteOrganizer)
		protected.PATCH("events/:eventId/status", h.UpdateEventStatus)
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.admin.Login(c, &req)
	if err != nil {
		handleError(c, err, "AdminLogin")
		return
	}
	setAuthCookie(c, h.cookie, result.Token, result.ExpiresAt)
	handleSuccess(c, result, http.StatusOK)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.admin.Dashboard(c)
	if err != nil {
		handleError(c, err, "AdminDashboard")
		return
	}
	handleSuccess(c, stats, http.StatusOK)
}

func (h *AdminHandler) ListSellers(c *gin.Context) {
	h.listAccounts(c, model.RoleSeller)
}

func (h *AdminHandler) ListOrganizers(c *gin.Context) {
	h.listAccounts(c, model.RoleOrganizer)
}

func (h *AdminHandler) listAccounts(c *gin.Context, role model.Role) {
	accounts, err := h.admin.ListAccounts(c, role)
	if err != nil {
		handleError(c, err, "ListAccounts")
		return
	}
	handleSuccess(c, accounts, http.StatusOK)
}

func (h *AdminHandler) DeleteSeller(c *gin.Context) {
	h.deleteAccount(c, model.RoleSeller)
}

func (h *AdminHandler) DeleteOrganizer(c *gin.Context) {
	h.deleteAccount(c, model.RoleOrganizer)
}

func (h *AdminHandler) deleteAccount(c *gin.Context, role model.Role) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteAccount(c, role, id); err != nil {
		handleError(c, err, "DeleteAccount")
		return
	}
	handleSuccess(c, nil, http.StatusNoContent)
}

func (h *AdminHandler) ListEvents(c *gin.Context) {
	events, err := h.events.ListAll(c)
	if err != nil {
		handleError(c, err, "AdminListEvents")
		return
	}
	handleSuccess(c, events, http.StatusOK)
}

func (h *AdminHandler) UpdateEventStatus(c *gin.Context) {
	eventID, ok := ParamID(c, "eventId")
	if !ok {
		return
	}
	var req model.UpdateEventStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.events.AdminUpdateStatus(c, eventID, req.Status)
	if err != nil {
		handleError(c, err, "AdminUpdateEventStatus")
		return
	}
	handleSuccess(c, event, http.StatusOK)
}
