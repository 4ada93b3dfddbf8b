// Package model defines domain entities for the application.
package model

import "time"

// User represents an account holder. Email and phone are unique
// across all users; deleting a user cascades to every dependent row.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile holds the mutable presentation data for a user (1:1).
type Profile struct {
	UserID      string     `json:"user_id"`
	FullName    string     `json:"full_name"`
	Bio         string     `json:"bio,omitempty"`
	AvatarMedia *string    `json:"avatar_media_id,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
