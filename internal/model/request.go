package model

import (
	"errors"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"
)

// at least 8 characters, one letter and one digit
var passwordPolicy = regexp2.MustCompile(`^(?=.*[A-Za-z])(?=.*\d).{8,}$`, regexp2.None)

var ErrWeakPassword = errors.New("password must be at least 8 characters and contain a letter and a number")

func strongPassword(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	ok, err := passwordPolicy.MatchString(s)
	if err != nil {
		return err
	}
	if !ok {
		return ErrWeakPassword
	}
	return nil
}

var notNegative = validation.By(func(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return nil
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
})

type RegisterRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Phone        *string `json:"phone"`
	BusinessName *string `json:"business_name"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.By(strongPassword)),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	BusinessName *string `json:"business_name"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 255)),
	)
}

func (r *UpdateProfileRequest) Params() UpdateAccountParams {
	return UpdateAccountParams{Name: r.Name, Phone: r.Phone, BusinessName: r.BusinessName}
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *UpdatePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.By(strongPassword)),
	)
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

func (r *ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required, validation.By(strongPassword)),
	)
}

type CreateEventRequest struct {
	Name           string          `json:"name"`
	Description    *string         `json:"description"`
	Location       *string         `json:"location"`
	ImageURL       *string         `json:"image_url"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        *time.Time      `json:"end_date"`
	TicketQuantity int             `json:"ticket_quantity"`
	TicketPrice    decimal.Decimal `json:"ticket_price"`
}

func (r *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.StartDate, validation.Required),
		validation.Field(&r.TicketQuantity, validation.Min(0)),
		validation.Field(&r.TicketPrice, notNegative),
	)
}

func (r *CreateEventRequest) Event(organizerID int) *Event {
	return &Event{
		OrganizerID:    organizerID,
		Name:           strings.TrimSpace(r.Name),
		Description:    r.Description,
		Location:       r.Location,
		ImageURL:       r.ImageURL,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		Status:         EventStatusDraft,
		TicketQuantity: r.TicketQuantity,
		TicketPrice:    r.TicketPrice,
	}
}

type UpdateEventRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Location       *string          `json:"location"`
	ImageURL       *string          `json:"image_url"`
	StartDate      *time.Time       `json:"start_date"`
	EndDate        *time.Time       `json:"end_date"`
	TicketQuantity *int             `json:"ticket_quantity"`
	TicketPrice    *decimal.Decimal `json:"ticket_price"`
}

func (r *UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.TicketQuantity, validation.Min(0)),
		validation.Field(&r.TicketPrice, notNegative),
	)
}

func (r *UpdateEventRequest) Params() UpdateEventParams {
	return UpdateEventParams{
		Name:           r.Name,
		Description:    r.Description,
		Location:       r.Location,
		ImageURL:       r.ImageURL,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		TicketQuantity: r.TicketQuantity,
		TicketPrice:    r.TicketPrice,
	}
}

type UpdateEventStatusRequest struct {
	Status EventStatus `json:"status"`
}

func (r *UpdateEventStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.Required,
			validation.In(EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted)),
	)
}

type TicketTypeRequest struct {
	Name           string          `json:"name"`
	Description    *string         `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Quantity       int             `json:"quantity"`
	SalesStartDate *time.Time      `json:"sales_start_date"`
	SalesEndDate   *time.Time      `json:"sales_end_date"`
}

func (r *TicketTypeRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Price, notNegative),
		validation.Field(&r.Quantity, validation.Min(0)),
	)
	if err != nil {
		return err
	}
	if r.SalesStartDate != nil && r.SalesEndDate != nil && r.SalesEndDate.Before(*r.SalesStartDate) {
		return validation.Errors{"sales_end_date": errors.New("must not be before sales_start_date")}
	}
	return nil
}

func (r *TicketTypeRequest) TicketType(eventID int) *TicketType {
	return &TicketType{
		EventID:        eventID,
		Name:           strings.TrimSpace(r.Name),
		Description:    r.Description,
		Price:          r.Price,
		Quantity:       r.Quantity,
		SalesStartDate: r.SalesStartDate,
		SalesEndDate:   r.SalesEndDate,
	}
}

type RecordSaleRequest struct {
	TicketTypeID  *int             `json:"ticket_type_id"`
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	Price         *decimal.Decimal `json:"price"`
	Status        TicketStatus     `json:"status"`
	TransactionID *string          `json:"transaction_id"`
}

func (r *RecordSaleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CustomerName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.CustomerEmail, validation.Required, is.Email),
		validation.Field(&r.Price, notNegative),
		validation.Field(&r.Status, validation.In(TicketStatusPending, TicketStatusPaid)),
		validation.Field(&r.TransactionID, validation.NilOrNotEmpty, validation.Length(1, 64)),
	)
}

type UpdateTicketStatusRequest struct {
	Status TicketStatus `json:"status"`
}

func (r *UpdateTicketStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.Required,
			validation.In(TicketStatusPending, TicketStatusPaid, TicketStatusCancelled, TicketStatusRefunded)),
	)
}
