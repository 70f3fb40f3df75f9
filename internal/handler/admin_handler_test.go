package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service"
	"byblos-atelier/internal/service/mocks"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAdminRouter(admin *mocks.AdminServiceMock, events *mocks.EventServiceMock) *gin.Engine {
	r := newTestRouter()
	NewAdminHandler(admin, events, testCookie).
		RegisterRoutes(r.Group("/api/admin"), noLimit, as(model.AdminIdentity{Email: "admin@byblos.test"}))
	return r
}

func TestAdminHandler_Login(t *testing.T) {
	admin := mocks.NewAdminServiceMock()
	admin.On("Login", mock.Anything, mock.Anything).
		Return(&service.LoginResult{Token: "admin-jwt", ExpiresAt: time.Now().Add(time.Hour)}, nil).Once()
	r := setupAdminRouter(admin, mocks.NewEventServiceMock())

	w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/admin/login", map[string]string{
		"email": "admin@byblos.test", "password": "secret123",
	}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin-jwt")
	assert.NotContains(t, w.Body.String(), `"user"`)
}

func TestAdminHandler_Dashboard(t *testing.T) {
	admin := mocks.NewAdminServiceMock()
	admin.On("Dashboard", mock.Anything).Return(&model.PlatformStats{
		TotalOrganizers: 2, TotalRevenue: decimal.NewFromInt(3000),
	}, nil).Once()
	r := setupAdminRouter(admin, mocks.NewEventServiceMock())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_organizers":2`)
}

func TestAdminHandler_Accounts(t *testing.T) {
	t.Run("List sellers", func(t *testing.T) {
		admin := mocks.NewAdminServiceMock()
		admin.On("ListAccounts", mock.Anything, model.RoleSeller).
			Return([]*model.Account{{ID: 1, Role: model.RoleSeller}}, nil).Once()
		r := setupAdminRouter(admin, mocks.NewEventServiceMock())

		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/admin/sellers", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		admin.AssertExpectations(t)
	})

	t.Run("Delete organizer", func(t *testing.T) {
		admin := mocks.NewAdminServiceMock()
		admin.On("DeleteAccount", mock.Anything, model.RoleOrganizer, 3).Return(nil).Once()
		r := setupAdminRouter(admin, mocks.NewEventServiceMock())

		w := serve(r, httptest.NewRequest(http.MethodDelete, "/api/admin/organizers/3", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Delete unknown seller", func(t *testing.T) {
		admin := mocks.NewAdminServiceMock()
		admin.On("DeleteAccount", mock.Anything, model.RoleSeller, 3).Return(apperrors.ErrSellerNotFound).Once()
		r := setupAdminRouter(admin, mocks.NewEventServiceMock())

		w := serve(r, httptest.NewRequest(http.MethodDelete, "/api/admin/sellers/3", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminHandler_Events(t *testing.T) {
	t.Run("List all", func(t *testing.T) {
		events := mocks.NewEventServiceMock()
		events.On("ListAll", mock.Anything).Return([]*model.Event{{ID: 1}, {ID: 2}}, nil).Once()
		r := setupAdminRouter(mocks.NewAdminServiceMock(), events)

		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/admin/events", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Cancel any event", func(t *testing.T) {
		events := mocks.NewEventServiceMock()
		events.On("AdminUpdateStatus", mock.Anything, 5, model.EventStatusCancelled).
			Return(&model.Event{ID: 5, Status: model.EventStatusCancelled}, nil).Once()
		r := setupAdminRouter(mocks.NewAdminServiceMock(), events)

		w := serve(r, createJSONHTTPRequest(http.MethodPatch, "/api/admin/events/5/status", map[string]string{"status": "cancelled"}))

		assert.Equal(t, http.StatusOK, w.Code)
		events.AssertExpectations(t)
	})
}
