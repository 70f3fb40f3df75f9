package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"byblos-atelier/internal/auth"
	"byblos-atelier/internal/middleware"
	"byblos-atelier/internal/model"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var InvalidJSON = `{"invalid": json}`

func createJSONRequest(data interface{}) *bytes.Buffer {
	if s, ok := data.(string); ok {
		return bytes.NewBufferString(s)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	req := httptest.NewRequest(method, url, createJSONRequest(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// as injects an identity the way Authenticate would.
func as(identity model.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &auth.Claims{Role: identity.Role()}
		claims.ID = "test-jti"
		claims.Subject = identity.Subject()
		middleware.SetIdentity(c, identity, claims)
		c.Next()
	}
}

func organizerIdentity(id int) model.Identity {
	return model.OrganizerIdentity{Account: &model.Account{ID: id, Role: model.RoleOrganizer}}
}

func sellerIdentity(id int) model.Identity {
	return model.SellerIdentity{Account: &model.Account{ID: id, Role: model.RoleSeller}}
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrEventNotFound, http.StatusNotFound},
		{fmt.Errorf("find: %w", apperrors.ErrTicketTypeNotFound), http.StatusNotFound},
		{apperrors.ErrSellerNotFound, http.StatusNotFound},
		{apperrors.ErrInvalidInput, http.StatusBadRequest},
		{apperrors.ErrWrongPassword, http.StatusBadRequest},
		{apperrors.ErrResetTokenInvalid, http.StatusBadRequest},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperrors.ErrIdentityNotFound, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrEmailExists, http.StatusConflict},
		{apperrors.ErrDuplicateTicketNumber, http.StatusConflict},
		{apperrors.ErrTicketAlreadyCheckedIn, http.StatusConflict},
		{fmt.Errorf("%w: draft -> completed", apperrors.ErrInvalidEventStatus), http.StatusUnprocessableEntity},
		{apperrors.ErrInvalidTicketStatus, http.StatusUnprocessableEntity},
		{apperrors.ErrTicketNotValid, http.StatusUnprocessableEntity},
		{apperrors.ErrRateLimited, http.StatusTooManyRequests},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			r := newTestRouter()
			r.GET("/", func(c *gin.Context) { handleError(c, tc.err, "Test") })

			w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestHandleError_HidesWrappedDetail(t *testing.T) {
	r := newTestRouter()
	r.GET("/", func(c *gin.Context) {
		handleError(c, fmt.Errorf("lookup event 12 for organizer 4: %w", apperrors.ErrEventNotFound), "Test")
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.JSONEq(t, `{"error":"event not found"}`, w.Body.String())
}

func TestBindJson_ValidationDetails(t *testing.T) {
	r := newTestRouter()
	r.POST("/", func(c *gin.Context) {
		var req model.RegisterRequest
		if err := BindJson(c, &req); err != nil {
			return
		}
		c.JSON(http.StatusOK, req)
	})

	w := serve(r, createJSONHTTPRequest(http.MethodPost, "/", map[string]string{
		"name": "Ana", "email": "not-an-email", "password": "short",
	}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")
	assert.Contains(t, w.Body.String(), "password")

	w = serve(r, createJSONHTTPRequest(http.MethodPost, "/", InvalidJSON))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request format")

	w = serve(r, createJSONHTTPRequest(http.MethodPost, "/", map[string]string{
		"name": " Ana ", "email": " Ana@Example.COM ", "password": "secret123",
	}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ana@example.com"`)
}
