package handler

import (
	"net/http"
	"time"

	"byblos-atelier/internal/middleware"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service"

	"github.com/gin-gonic/gin"
)

// CookieOptions controls the auth cookie set on login.
type CookieOptions struct {
	Name   string
	Secure bool
}

func setAuthCookie(c *gin.Context, opts CookieOptions, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.Name, token, maxAge, "/", "", opts.Secure, true)
}

func clearAuthCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.Name, "", -1, "/", "", opts.Secure, true)
}

// AccountHandler serves the credential lifecycle of one account kind.
type AccountHandler struct {
	service service.AccountService
	cookie  CookieOptions
}

func NewAccountHandler(service service.AccountService, cookie CookieOptions) *AccountHandler {
	return &AccountHandler{service: service, cookie: cookie}
}

// RegisterRoutes mounts public routes on r and the rest behind protect.
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup, limit func(scope string) gin.HandlerFunc, protect ...gin.HandlerFunc) {
	role := string(h.service.Role())
	r.POST("register", h.Register)
	r.POST("login", limit(role+":login"), h.Login)
	r.POST("forgot-password", limit(role+":forgot-password"), h.ForgotPassword)
	r.POST("reset-password/:token", h.ResetPassword)

	protected := r.Group("", protect...)
	{
		protected.POST("logout", h.Logout)
		protected.GET("me", h.Me)
		protected.PATCH("update-profile", h.UpdateProfile)
		protected.PATCH("update-password", h.UpdatePassword)
	}
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	account, err := h.service.Register(c, &req)
	if err != nil {
		handleError(c, err, "Register")
		return
	}
	handleSuccess(c, account, http.StatusCreated)
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.service.Login(c, &req)
	if err != nil {
		handleError(c, err, "Login")
		return
	}
	setAuthCookie(c, h.cookie, result.Token, result.ExpiresAt)
	handleSuccess(c, result, http.StatusOK)
}

func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c, middleware.Claims(c)); err != nil {
		handleError(c, err, "Logout")
		return
	}
	clearAuthCookie(c, h.cookie)
	handleSuccess(c, gin.H{"message": "Logged out"}, http.StatusOK)
}

// current returns the caller's account; the route must be gated to this handler's role.
func (h *AccountHandler) current(c *gin.Context) (*model.Account, bool) {
	account, ok := middleware.Account(c)
	if !ok || account.Role != h.service.Role() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return nil, false
	}
	return account, true
}

func (h *AccountHandler) Me(c *gin.Context) {
	account, ok := h.current(c)
	if !ok {
		return
	}

	fresh, err := h.service.Me(c, account.ID)
	if err != nil {
		handleError(c, err, "Me")
		return
	}
	handleSuccess(c, fresh, http.StatusOK)
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	account, ok := h.current(c)
	if !ok {
		return
	}
	var req model.UpdateProfileRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.UpdateProfile(c, account.ID, req.Params())
	if err != nil {
		handleError(c, err, "UpdateProfile")
		return
	}
	handleSuccess(c, updated, http.StatusOK)
}

func (h *AccountHandler) UpdatePassword(c *gin.Context) {
	account, ok := h.current(c)
	if !ok {
		return
	}
	var req model.UpdatePasswordRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.UpdatePassword(c, account.ID, &req); err != nil {
		handleError(c, err, "UpdatePassword")
		return
	}
	handleSuccess(c, gin.H{"message": "Password updated"}, http.StatusOK)
}

func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	var req model.ForgotPasswordRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.ForgotPassword(c, req.Email); err != nil {
		handleError(c, err, "ForgotPassword")
		return
	}
	handleSuccess(c, gin.H{"message": "If the email is registered, a reset link has been sent"}, http.StatusOK)
}

func (h *AccountHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.ResetPassword(c, c.Param("token"), req.Password); err != nil {
		handleError(c, err, "ResetPassword")
		return
	}
	handleSuccess(c, gin.H{"message": "Password has been reset"}, http.StatusOK)
}
