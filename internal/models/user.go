package models

import "time"

// UserRole is the platform-wide role of a user
type UserRole int

const (
	RoleStudent UserRole = 1
	RoleTeacher UserRole = 2
	RoleAdmin   UserRole = 3
)

// User represents a registered account
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	UserIndex    *string   `json:"userIndex,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserShort is the public projection of a user used in lists
type UserShort struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Email     string `json:"email" example:"student@example.com"`
	Password  string `json:"password" example:"secret123"`
	FullName  string `json:"fullName" example:"Ada Lovelace"`
	UserIndex string `json:"userIndex,omitempty" example:"123456"`
	IsTeacher bool   `json:"isTeacher"`
}

// LoginRequest represents a login by e-mail or by 6-digit user index
type LoginRequest struct {
	Login    string `json:"login" example:"123456"`
	Password string `json:"password" example:"secret123"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse is returned after a successful login
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
