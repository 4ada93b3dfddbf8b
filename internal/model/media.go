package model

import "time"

// MediaType classifies an uploaded file. Stored as a Postgres enum;
// "audio" was added in a later migration.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

// IsValid reports whether the media type is a known enum value.
func (t MediaType) IsValid() bool {
	switch t {
	case MediaImage, MediaVideo, MediaAudio:
		return true
	}
	return false
}

// Media is the record for one uploaded file. The bytes live on local
// disk under the configured media directory; StoredName is the on-disk
// object name, FileName the original client-supplied name.
type Media struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        MediaType `json:"type"`
	FileName    string    `json:"file_name"`
	StoredName  string    `json:"-"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
