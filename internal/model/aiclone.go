package model

import "time"

// CloneVideoStatus tracks the lifecycle of a generation request.
// The external service owns the actual work; completion is never
// awaited inside the request that created the record.
type CloneVideoStatus string

const (
	ClonePending    CloneVideoStatus = "pending"
	CloneProcessing CloneVideoStatus = "processing"
	CloneCompleted  CloneVideoStatus = "completed"
	CloneFailed     CloneVideoStatus = "failed"
)

// AICloneVideo is one request to synthesize a talking-clone video
// from a source media item and a script.
type AICloneVideo struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	SourceMediaID string           `json:"source_media_id"`
	Script        string           `json:"script"`
	Status        CloneVideoStatus `json:"status"`
	JobID         string           `json:"-"`
	OutputURL     *string          `json:"output_url,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
