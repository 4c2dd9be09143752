package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles assignable to a user account.
const (
	RoleCitizen = "citizen"
	RoleAdmin   = "admin"
)

// User represents a registered account, citizen or admin.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// RegisterRequest represents the request to create a new user
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=256"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=citizen admin"`
}

// LoginRequest represents the authentication request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest represents an admin update of user profile fields.
// Only the provided fields are applied.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,max=256"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

// AuthResponse is returned by register and login with a fresh bearer token.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// ProfileResponse is the identity behind a bearer token.
type ProfileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
