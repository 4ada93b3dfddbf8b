package dto

// CreateContactRequest represents the request body for adding an
// emergency contact.
type CreateContactRequest struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Priority     int    `json:"priority"`
}

// UpdateContactRequest represents the request body for patching a contact.
type UpdateContactRequest struct {
	FullName     *string `json:"full_name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	Relationship *string `json:"relationship,omitempty"`
	Priority     *int    `json:"priority,omitempty"`
}

// CreateStoryRequest represents the request body for creating a story.
type CreateStoryRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags,omitempty"`
}

// UpdateStoryRequest represents the request body for patching a story.
// A nil Tags leaves tags untouched; an empty array clears them.
type UpdateStoryRequest struct {
	Title *string  `json:"title,omitempty"`
	Body  *string  `json:"body,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// CreateSessionRequest represents the request body for opening a chat
// session. Title is optional.
type CreateSessionRequest struct {
	Title string `json:"title,omitempty"`
}

// PostMessageRequest represents the request body for appending a chat
// message to a session.
type PostMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewGameRequest represents the request body for starting a sudoku game.
type NewGameRequest struct {
	Difficulty string `json:"difficulty"`
}

// UpdateBoardRequest represents the request body for submitting a
// sudoku board state.
type UpdateBoardRequest struct {
	Board string `json:"board"`
}

// CreateCloneVideoRequest represents the request body for requesting a
// clone video generation.
type CreateCloneVideoRequest struct {
	SourceMediaID string `json:"source_media_id"`
	Script        string `json:"script"`
}
