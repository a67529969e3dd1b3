package models

import (
	"time"
)

// RoleAdmin is the role required by admin-gated operations
const RoleAdmin = "admin"

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	"admin":  true,
	"editor": true,
	"viewer": true,
}

// LoginInput is the payload accepted by POST /api/auth/login
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// UserCreateInput is used by the `admin create` command
type UserCreateInput struct {
	Email    string `json:"email" validate:"required,max=255,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"oneof=admin editor viewer"`
}

// ApplyDefaults fills the role when omitted
func (in *UserCreateInput) ApplyDefaults() {
	if in.Role == "" {
		in.Role = RoleAdmin
	}
}
