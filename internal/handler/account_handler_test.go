package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"byblos-atelier/internal/auth"
	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service"
	"byblos-atelier/internal/service/mocks"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCookie = CookieOptions{Name: "token"}

func noLimit(string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}

func setupAccountRouter(svc *mocks.AccountServiceMock, identity model.Identity) *gin.Engine {
	r := newTestRouter()
	NewAccountHandler(svc, testCookie).RegisterRoutes(r.Group("/api/sellers"), noLimit, as(identity))
	return r
}

func TestAccountHandler_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewAccountServiceMock(model.RoleSeller)
		svc.On("Register", mock.Anything, mock.MatchedBy(func(req *model.RegisterRequest) bool {
			return req.Email == "ana@example.com"
		})).Return(&model.Account{ID: 1, Role: model.RoleSeller, Email: "ana@example.com"}, nil).Once()
		r := setupAccountRouter(svc, sellerIdentity(1))

		w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/sellers/register", map[string]string{
			"name": "Ana", "email": "Ana@Example.com", "password": "secret123",
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Failed - email taken", func(t *testing.T) {
		svc := mocks.NewAccountServiceMock(model.RoleSeller)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrEmailExists).Once()
		r := setupAccountRouter(svc, sellerIdentity(1))

		w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/sellers/register", map[string]string{
			"name": "Ana", "email": "ana@example.com", "password": "secret123",
		}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAccountHandler_Login(t *testing.T) {
	t.Run("Success - sets cookie", func(t *testing.T) {
		svc := mocks.NewAccountServiceMock(model.RoleSeller)
		svc.On("Login", mock.Anything, mock.Anything).Return(&service.LoginResult{
			Token:     "jwt-token",
			ExpiresAt: time.Now().Add(time.Hour),
			Account:   &model.Account{ID: 1, Role: model.RoleSeller},
		}, nil).Once()
		r := setupAccountRouter(svc, sellerIdentity(1))

		w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/sellers/login", map[string]string{
			"email": "ana@example.com", "password": "secret123",
		}))

		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token", cookies[0].Name)
		assert.Equal(t, "jwt-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("Failed - bad credentials", func(t *testing.T) {
		svc := mocks.NewAccountServiceMock(model.RoleSeller)
		svc.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidCredentials).Once()
		r := setupAccountRouter(svc, sellerIdentity(1))

		w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/sellers/login", map[string]string{
			"email": "ana@example.com", "password": "wrong",
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestAccountHandler_Logout_ClearsCookie(t *testing.T) {
	svc := mocks.NewAccountServiceMock(model.RoleSeller)
	svc.On("Logout", mock.Anything, mock.MatchedBy(func(claims *auth.Claims) bool {
		return claims.ID == "test-jti"
	})).Return(nil).Once()
	r := setupAccountRouter(svc, sellerIdentity(1))

	w := serve(r, httptest.NewRequest(http.MethodPost, "/api/sellers/logout", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
	svc.AssertExpectations(t)
}

func TestAccountHandler_Me(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewAccountServiceMock(model.RoleSeller)
		svc.On("Me", mock.Anything, 7).Return(&model.Account{ID: 7, Role: model.RoleSeller}, nil).Once()
		r := setupAccountRouter(svc, sellerIdentity(7))

		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/sellers/me", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"store_name"`)
	})

	t.Run("Failed - organizer on seller routes", func(t *testing.T) {
		svc := mocks.NewAccountServiceMock(model.RoleSeller)
		r := setupAccountRouter(svc, organizerIdentity(7))

		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/sellers/me", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		svc.AssertNotCalled(t, "Me", mock.Anything, mock.Anything)
	})
}

func TestAccountHandler_UpdateProfile(t *testing.T) {
	svc := mocks.NewAccountServiceMock(model.RoleSeller)
	name := "Ana Maria"
	svc.On("UpdateProfile", mock.Anything, 7, model.UpdateAccountParams{Name: &name}).
		Return(&model.Account{ID: 7, Role: model.RoleSeller, Name: name}, nil).Once()
	r := setupAccountRouter(svc, sellerIdentity(7))

	w := serve(r, createJSONHTTPRequest(http.MethodPatch, "/api/sellers/update-profile", map[string]string{"name": name}))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAccountHandler_UpdatePassword(t *testing.T) {
	t.Run("Failed - wrong current password", func(t *testing.T) {
		svc := mocks.NewAccountServiceMock(model.RoleSeller)
		svc.On("UpdatePassword", mock.Anything, 7, mock.Anything).Return(apperrors.ErrWrongPassword).Once()
		r := setupAccountRouter(svc, sellerIdentity(7))

		w := serve(r, createJSONHTTPRequest(http.MethodPatch, "/api/sellers/update-password", map[string]string{
			"current_password": "nope", "new_password": "newsecret1",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - weak new password", func(t *testing.T) {
		svc := mocks.NewAccountServiceMock(model.RoleSeller)
		r := setupAccountRouter(svc, sellerIdentity(7))

		w := serve(r, createJSONHTTPRequest(http.MethodPatch, "/api/sellers/update-password", map[string]string{
			"current_password": "secret123", "new_password": "letters",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAccountHandler_ForgotAndResetPassword(t *testing.T) {
	t.Run("Forgot always answers 200", func(t *testing.T) {
		svc := mocks.NewAccountServiceMock(model.RoleSeller)
		svc.On("ForgotPassword", mock.Anything, "ghost@example.com").Return(nil).Once()
		r := setupAccountRouter(svc, sellerIdentity(1))

		w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/sellers/forgot-password", map[string]string{
			"email": "ghost@example.com",
		}))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Reset with expired token", func(t *testing.T) {
		svc := mocks.NewAccountServiceMock(model.RoleSeller)
		svc.On("ResetPassword", mock.Anything, "abc", "newsecret1").Return(apperrors.ErrResetTokenInvalid).Once()
		r := setupAccountRouter(svc, sellerIdentity(1))

		w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/sellers/reset-password/abc", map[string]string{
			"password": "newsecret1",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), apperrors.ErrResetTokenInvalid.Error())
	})
}
