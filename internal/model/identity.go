package model

import "strconv"

// Identity is the authenticated principal of a request.
type Identity interface {
	Role() Role
	Subject() string
}

// AdminIdentity is the single configured platform admin. It has no database row.
type AdminIdentity struct {
	Email string `json:"email"`
}

func (AdminIdentity) Role() Role      { return RoleAdmin }
func (AdminIdentity) Subject() string { return AdminSubject }

type SellerIdentity struct {
	Account *Account
}

func (SellerIdentity) Role() Role        { return RoleSeller }
func (s SellerIdentity) Subject() string { return strconv.Itoa(s.Account.ID) }

type OrganizerIdentity struct {
	Account *Account
}

func (OrganizerIdentity) Role() Role        { return RoleOrganizer }
func (o OrganizerIdentity) Subject() string { return strconv.Itoa(o.Account.ID) }

// AdminSubject is the token subject reserved for the admin identity.
const AdminSubject = "admin"

// AccountOf returns the account behind a seller or organizer identity.
func AccountOf(id Identity) (*Account, bool) {
	switch v := id.(type) {
	case SellerIdentity:
		return v.Account, true
	case OrganizerIdentity:
		return v.Account, true
	}
	return nil, false
}
