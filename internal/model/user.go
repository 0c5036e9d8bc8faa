package model

import "time"

// Role distinguishes platform administrators from learners.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleLearner Role = "LEARNER"
)

// User represents a platform account.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNo      string    `json:"phone_no,omitempty"`
	Address      string    `json:"address,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for authentication, both roles.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the payload for creating a learner account.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	PhoneNo  string `json:"phone_no" binding:"omitempty,max=20"`
	Address  string `json:"address" binding:"omitempty,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateUserRequest is the payload for updating an existing account.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	PhoneNo  string `json:"phone_no" binding:"omitempty,max=20"`
	Address  string `json:"address" binding:"omitempty,max=255"`
	Password string `json:"password" binding:"omitempty,min=6,max=128"`
}

// Profile is the identity attached to outgoing result reports and the
// /me endpoints.
type Profile struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	PhoneNo string   `json:"phone_no,omitempty"`
	Address string   `json:"address,omitempty"`
	Courses []Course `json:"courses,omitempty"`
}
