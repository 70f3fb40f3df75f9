package apperrors

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrOrganizerNotFound  = errors.New("organizer not found")
	ErrSellerNotFound     = errors.New("seller not found")
	ErrStatsNotFound      = errors.New("dashboard stats not found")

	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidEventStatus     = errors.New("invalid event status transition")
	ErrInvalidTicketStatus    = errors.New("invalid ticket status transition")
	ErrTicketNotValid         = errors.New("ticket is not valid for entry")
	ErrTicketAlreadyCheckedIn = errors.New("ticket already checked in")
	ErrDuplicateTicketNumber  = errors.New("ticket number already exists")
	ErrEmailExists            = errors.New("email already registered")
	ErrWrongPassword          = errors.New("wrong password")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrResetTokenInvalid      = errors.New("password reset token is invalid or has expired")
	ErrRateLimited            = errors.New("too many requests")
	ErrForbidden              = errors.New("forbidden")
	ErrInternalServerError    = errors.New("internal server error")

	// Authentication failures all surface as 401 but stay distinguishable in logs.
	ErrUnauthenticated  = errors.New("no authentication token provided")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrIdentityNotFound = errors.New("user no longer exists")
)
