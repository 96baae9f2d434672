package models

import "time"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user in Firestore. Documents are keyed by email,
// so the document ID doubles as the canonical owner id everywhere.
// @Description User account information
type User struct {
	ID        string    `json:"id" firestore:"-" example:"user@example.com"`
	Email     string    `json:"email" firestore:"email" example:"user@example.com"`
	Name      string    `json:"name" firestore:"name" example:"John Doe"`
	Password  string    `json:"-" firestore:"password"` // Hashed password, never sent to client
	Avatar    string    `json:"avatar" firestore:"avatar" example:"https://storage.googleapis.com/bucket/avatars/u.png"`
	Role      string    `json:"role" firestore:"role" example:"user"` // "user" or "admin"
	Bio       string    `json:"bio" firestore:"bio" example:"Backend engineer looking for new opportunities"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// RegisterRequest represents registration request
// @Description User registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"John Doe"`
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
}

// LoginRequest represents login request
// @Description User login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UpdateProfileRequest represents profile update request
// @Description Profile update request
type UpdateProfileRequest struct {
	Name   string `json:"name,omitempty" example:"John Smith"`
	Bio    string `json:"bio,omitempty" example:"Now a staff engineer"`
	Avatar string `json:"avatar,omitempty" example:"https://storage.googleapis.com/bucket/avatars/u.png"`
}

// AuthData is the payload returned on successful register/login
// @Description Authentication payload with JWT token
type AuthData struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  *User  `json:"user"`
}
