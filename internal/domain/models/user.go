// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents admins (Nimble staff) and client users.
//
// Admins have no organization; client users belong to exactly one
// organization and only see candidates in that organization's pipeline.
// LastLoginAt drives the client-login notification debounce.
type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email          string              `bson:"email" json:"email"`
	FullName       string              `bson:"full_name" json:"full_name"`
	FullNameCI     string              `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Role           string              `bson:"role" json:"role"`      // admin | client
	PasswordHash   string              `bson:"password_hash,omitempty" json:"-"`
	OrganizationID *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`
	IsActive       bool                `bson:"is_active" json:"is_active"`
	LastLoginAt    *time.Time          `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Roles stored in User.Role.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)
