package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"byblos-atelier/internal/model"
	"byblos-atelier/internal/service/mocks"
	apperrors "byblos-atelier/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupEventRouter(events *mocks.EventServiceMock, types *mocks.TicketTypeServiceMock, identity model.Identity) *gin.Engine {
	r := newTestRouter()
	NewEventHandler(events, types).RegisterRoutes(r.Group("/api/organizers", as(identity)))
	return r
}

func TestEventHandler_Create(t *testing.T) {
	body := map[string]interface{}{
		"name":            "Expo",
		"start_date":      "2026-05-01T18:00:00Z",
		"ticket_quantity": 100,
		"ticket_price":    "25.00",
	}

	t.Run("Success", func(t *testing.T) {
		events := mocks.NewEventServiceMock()
		events.On("Create", mock.Anything, 4, mock.MatchedBy(func(req *model.CreateEventRequest) bool {
			return req.Name == "Expo" && req.TicketQuantity == 100
		})).Return(&model.EventAvailability{Event: &model.Event{ID: 1, Name: "Expo"}}, nil).Once()
		r := setupEventRouter(events, mocks.NewTicketTypeServiceMock(), organizerIdentity(4))

		w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/organizers/events", body))

		assert.Equal(t, http.StatusCreated, w.Code)
		events.AssertExpectations(t)
	})

	t.Run("Failed - missing name", func(t *testing.T) {
		events := mocks.NewEventServiceMock()
		r := setupEventRouter(events, mocks.NewTicketTypeServiceMock(), organizerIdentity(4))

		w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/organizers/events", map[string]interface{}{
			"start_date": "2026-05-01T18:00:00Z",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - seller identity", func(t *testing.T) {
		events := mocks.NewEventServiceMock()
		r := setupEventRouter(events, mocks.NewTicketTypeServiceMock(), sellerIdentity(4))

		w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/organizers/events", body))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestEventHandler_Get(t *testing.T) {
	t.Run("Failed - another organizer's event", func(t *testing.T) {
		events := mocks.NewEventServiceMock()
		events.On("Get", mock.Anything, 4, 9).Return(nil, apperrors.ErrEventNotFound).Once()
		r := setupEventRouter(events, mocks.NewTicketTypeServiceMock(), organizerIdentity(4))

		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/organizers/events/9", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - invalid id", func(t *testing.T) {
		r := setupEventRouter(mocks.NewEventServiceMock(), mocks.NewTicketTypeServiceMock(), organizerIdentity(4))

		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/organizers/events/0", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventHandler_UpdateStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		events := mocks.NewEventServiceMock()
		events.On("UpdateStatus", mock.Anything, 4, 9, model.EventStatusPublished).
			Return(&model.Event{ID: 9, Status: model.EventStatusPublished}, nil).Once()
		r := setupEventRouter(events, mocks.NewTicketTypeServiceMock(), organizerIdentity(4))

		w := serve(r, createJSONHTTPRequest(http.MethodPatch, "/api/organizers/events/9/status", map[string]string{"status": "published"}))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - illegal transition", func(t *testing.T) {
		events := mocks.NewEventServiceMock()
		events.On("UpdateStatus", mock.Anything, 4, 9, model.EventStatusDraft).
			Return(nil, apperrors.ErrInvalidEventStatus).Once()
		r := setupEventRouter(events, mocks.NewTicketTypeServiceMock(), organizerIdentity(4))

		w := serve(r, createJSONHTTPRequest(http.MethodPatch, "/api/organizers/events/9/status", map[string]string{"status": "draft"}))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Failed - unknown status", func(t *testing.T) {
		events := mocks.NewEventServiceMock()
		r := setupEventRouter(events, mocks.NewTicketTypeServiceMock(), organizerIdentity(4))

		w := serve(r, createJSONHTTPRequest(http.MethodPatch, "/api/organizers/events/9/status", map[string]string{"status": "archived"}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEventHandler_Update_EmptyBody(t *testing.T) {
	events := mocks.NewEventServiceMock()
	events.On("Update", mock.Anything, 4, 9, model.UpdateEventParams{}).Return(nil, apperrors.ErrInvalidInput).Once()
	r := setupEventRouter(events, mocks.NewTicketTypeServiceMock(), organizerIdentity(4))

	w := serve(r, createJSONHTTPRequest(http.MethodPut, "/api/organizers/events/9", map[string]string{}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandler_Delete(t *testing.T) {
	events := mocks.NewEventServiceMock()
	events.On("Delete", mock.Anything, 4, 9).Return(nil).Once()
	r := setupEventRouter(events, mocks.NewTicketTypeServiceMock(), organizerIdentity(4))

	w := serve(r, httptest.NewRequest(http.MethodDelete, "/api/organizers/events/9", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEventHandler_TicketTypes(t *testing.T) {
	t.Run("Success - create", func(t *testing.T) {
		types := mocks.NewTicketTypeServiceMock()
		types.On("Create", mock.Anything, 4, 9, mock.AnythingOfType("*model.TicketTypeRequest")).
			Return(&model.TicketType{ID: 1, EventID: 9, Name: "VIP"}, nil).Once()
		r := setupEventRouter(mocks.NewEventServiceMock(), types, organizerIdentity(4))

		w := serve(r, createJSONHTTPRequest(http.MethodPost, "/api/organizers/events/9/ticket-types", map[string]interface{}{
			"name": "VIP", "price": "1000", "quantity": 50,
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Failed - sales window ends before it starts", func(t *testing.T) {
		types := mocks.NewTicketTypeServiceMock()
		r := setupEventRouter(mocks.NewEventServiceMock(), types, organizerIdentity(4))

		w := serve(r, createJSONHTTPRequest(http.MethodPut, "/api/organizers/events/9/ticket-types/1", map[string]interface{}{
			"name": "VIP", "price": "10", "quantity": 5,
			"sales_start_date": "2026-05-02T00:00:00Z",
			"sales_end_date":   "2026-05-01T00:00:00Z",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		types.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - delete unknown type", func(t *testing.T) {
		types := mocks.NewTicketTypeServiceMock()
		types.On("Delete", mock.Anything, 4, 9, 3).Return(apperrors.ErrTicketTypeNotFound).Once()
		r := setupEventRouter(mocks.NewEventServiceMock(), types, organizerIdentity(4))

		w := serve(r, httptest.NewRequest(http.MethodDelete, "/api/organizers/events/9/ticket-types/3", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
