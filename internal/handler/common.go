package handler

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "byblos-atelier/pkg/app_errors"
	"byblos-atelier/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

type normalizer interface {
	Normalize()
}

// BindJson decodes the body into obj, normalizes and validates it. On failure the 400
// response is already written.
func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	if n, ok := obj.(normalizer); ok {
		n.Normalize()
	}
	if v, ok := obj.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Validation failed",
				"details": err,
			})
			return err
		}
	}
	return nil
}

// ParamID reads a positive integer path parameter. On failure the 400 response is
// already written.
func ParamID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return id, true
}

func handleSuccess(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}

// handleError maps service errors to HTTP responses.
func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrTicketTypeNotFound),
		errors.Is(err, apperrors.ErrTicketNotFound),
		errors.Is(err, apperrors.ErrOrganizerNotFound),
		errors.Is(err, apperrors.ErrSellerNotFound),
		errors.Is(err, apperrors.ErrStatsNotFound):
		log.Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": rootMessage(err)})
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrWrongPassword),
		errors.Is(err, apperrors.ErrResetTokenInvalid):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": rootMessage(err)})
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrUnauthenticated),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrIdentityNotFound):
		log.Warn("Unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": rootMessage(err)})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrEmailExists),
		errors.Is(err, apperrors.ErrDuplicateTicketNumber),
		errors.Is(err, apperrors.ErrTicketAlreadyCheckedIn):
		log.Warn("Conflict")
		c.JSON(http.StatusConflict, gin.H{"error": rootMessage(err)})
	case errors.Is(err, apperrors.ErrInvalidEventStatus),
		errors.Is(err, apperrors.ErrInvalidTicketStatus),
		errors.Is(err, apperrors.ErrTicketNotValid):
		log.Warn("Unprocessable")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateLimited):
		log.Warn("Rate limited")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": rootMessage(err)})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// rootMessage hides wrapping detail (driver errors, ids) from clients.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		apperrors.ErrEventNotFound, apperrors.ErrTicketTypeNotFound, apperrors.ErrTicketNotFound,
		apperrors.ErrOrganizerNotFound, apperrors.ErrSellerNotFound, apperrors.ErrStatsNotFound,
		apperrors.ErrInvalidInput, apperrors.ErrWrongPassword, apperrors.ErrResetTokenInvalid,
		apperrors.ErrInvalidCredentials, apperrors.ErrUnauthenticated, apperrors.ErrInvalidToken,
		apperrors.ErrIdentityNotFound, apperrors.ErrEmailExists, apperrors.ErrDuplicateTicketNumber,
		apperrors.ErrTicketAlreadyCheckedIn, apperrors.ErrRateLimited,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
