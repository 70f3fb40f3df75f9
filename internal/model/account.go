package model

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSeller    Role = "seller"
	RoleOrganizer Role = "organizer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleOrganizer:
		return true
	}
	return false
}

// Account is an organizer or seller row. Both tables share the same shape except for
// the business name column: organization_name for organizers, store_name for sellers.
type Account struct {
	ID           int
	Role         Role
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	BusinessName *string

	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarshalJSON never exposes credentials and names the business field after the role.
func (a Account) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":         a.ID,
		"role":       a.Role,
		"name":       a.Name,
		"email":      a.Email,
		"phone":      a.Phone,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	}
	out[a.Role.businessField()] = a.BusinessName
	return json.Marshal(out)
}

func (r Role) businessField() string {
	if r == RoleSeller {
		return "store_name"
	}
	return "organization_name"
}

type UpdateAccountParams struct {
	Name         *string
	Phone        *string
	BusinessName *string
}

func (p UpdateAccountParams) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.BusinessName == nil
}
