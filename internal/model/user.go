package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleRider = "rider"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Role      string             `bson:"role" json:"role"` // user, admin, rider
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ValidRole reports whether the given role is one the system knows about.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleRider:
		return true
	}
	return false
}

// RegisterUserRequest is the body of the sign-in-triggered registration call.
type RegisterUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ChangeRoleRequest is the body of an admin role-change call.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}
