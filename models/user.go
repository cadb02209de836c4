package models

import "time"

// Role is a user's position in the marketplace.
type Role string

const (
	RoleRenter  Role = "renter"
	RoleManager Role = "manager"
	RoleDriver  Role = "driver"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleRenter || r == RoleManager || r == RoleDriver
}

// User represents a platform user.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Role         Role      `bson:"role" json:"role"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   string
	Role Role
}

// UserRegistration is the input for creating an account.
type UserRegistration struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" binding:"required,min=8"`
	Role        Role   `json:"role"`
}
