package models

import "time"

// Account roles. A single collection holds both variants; handlers dispatch on
// the role tag rather than on a type hierarchy.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Account is an identity record. Email is the stable identifier referenced by
// bookings and occupancies.
type Account struct {
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Identity is the authenticated caller, resolved by the auth middleware and
// passed explicitly into service calls.
type Identity struct {
	Email string
	Role  string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
