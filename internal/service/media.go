package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
	"github.com/everkeep/everkeep/internal/repository"
	"github.com/everkeep/everkeep/internal/storage"
)

// Media service errors.
var (
	ErrMediaNotFound          = errors.New("media not found")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrFileTooLarge           = errors.New("file exceeds maximum upload size")
	ErrEmptyFile              = errors.New("uploaded file is empty")
)

// contentTypeKinds maps accepted MIME types to the stored media type.
var contentTypeKinds = map[string]model.MediaType{
	"image/jpeg":  model.MediaImage,
	"image/png":   model.MediaImage,
	"image/webp":  model.MediaImage,
	"video/mp4":   model.MediaVideo,
	"video/webm":  model.MediaVideo,
	"audio/mpeg":  model.MediaAudio,
	"audio/wav":   model.MediaAudio,
	"audio/x-wav": model.MediaAudio,
}

// MediaService handles upload validation, disk storage, and the media
// records pointing at stored files.
type MediaService struct {
	repo     *repository.Repository
	store    *storage.LocalStore
	maxBytes int64
}

// NewMediaService creates a new MediaService.
func NewMediaService(repo *repository.Repository, store *storage.LocalStore, maxBytes int64) *MediaService {
	return &MediaService{
		repo:     repo,
		store:    store,
		maxBytes: maxBytes,
	}
}

// UploadInput defines input for one file upload.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload validates the file, buffers it to disk, and records it.
// The write happens synchronously within the request.
func (s *MediaService) Upload(ctx context.Context, userID string, input UploadInput) (*model.Media, error) {
	kind, ok := contentTypeKinds[input.ContentType]
	if !ok {
		return nil, ErrUnsupportedContentType
	}
	if input.Size == 0 {
		return nil, ErrEmptyFile
	}
	if input.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	// LimitReader guards against clients lying about the size.
	storedName, written, err := s.store.Save(io.LimitReader(input.Body, s.maxBytes+1), input.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if written > s.maxBytes {
		_ = s.store.Remove(storedName)
		return nil, ErrFileTooLarge
	}
	if written == 0 {
		_ = s.store.Remove(storedName)
		return nil, ErrEmptyFile
	}

	media := &model.Media{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        kind,
		FileName:    input.FileName,
		StoredName:  storedName,
		ContentType: input.ContentType,
		SizeBytes:   written,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.CreateMedia(ctx, media); err != nil {
		_ = s.store.Remove(storedName)
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return media, nil
}

// Get returns one of the user's media records.
func (s *MediaService) Get(ctx context.Context, userID, id string) (*model.Media, error) {
	media, err := s.repo.GetMedia(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return media, nil
}

// Open returns the stored bytes of one of the user's media records.
func (s *MediaService) Open(ctx context.Context, userID, id string) (*model.Media, io.ReadCloser, error) {
	media, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	f, err := s.store.Open(media.StoredName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stored media: %w", err)
	}

	return media, f, nil
}

// List returns the user's media with pagination metadata.
func (s *MediaService) List(ctx context.Context, userID string, p pagination.Params) ([]*model.Media, pagination.Metadata, error) {
	items, total, err := s.repo.ListMedia(ctx, userID, p)
	if err != nil {
		return nil, pagination.Metadata{}, err
	}
	return items, pagination.NewMetadata(p, total), nil
}

// Delete removes the record and its stored file. The row goes first;
// an orphaned file is recoverable, a dangling row is not.
func (s *MediaService) Delete(ctx context.Context, userID, id string) error {
	media, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteMedia(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return ErrMediaNotFound
		}
		return err
	}

	return s.store.Remove(media.StoredName)
}
