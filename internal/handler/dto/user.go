// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/everkeep/everkeep/internal/model"
)

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the access token issued on successful login.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        *model.User `json:"user"`
}

// UserResponse combines an account with its profile.
type UserResponse struct {
	User    *model.User    `json:"user"`
	Profile *model.Profile `json:"profile"`
}

// UpdateProfileRequest represents the request body for patching a profile.
// Absent fields are left untouched.
type UpdateProfileRequest struct {
	FullName    *string    `json:"full_name,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	AvatarMedia *string    `json:"avatar_media_id,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}
