package model

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleClone ChatRole = "clone"
)

// IsValid reports whether the role is a known value.
func (r ChatRole) IsValid() bool {
	return r == RoleUser || r == RoleClone
}

// ChatSession groups an ordered exchange of messages for one user.
// Deleting a session removes its messages; deleting a user removes
// its sessions.
type ChatSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is one turn inside a session.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
