package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/client"
	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
	"github.com/everkeep/everkeep/internal/repository"
	"github.com/everkeep/everkeep/internal/storage"
)

// AI-clone service errors.
var (
	ErrCloneVideoNotFound = errors.New("clone video not found")
	ErrMissingScript      = errors.New("script is required")
	ErrSourceNotImage     = errors.New("source media must be an image")
	ErrNoFaceDetected     = errors.New("no face detected in source media")
	ErrGenerationFailed   = errors.New("generation dispatch failed")
)

// AICloneService creates talking-clone video requests. Generation
// itself happens in the external services; this service validates the
// source, dispatches the job, and tracks its status. Completion is
// never awaited inside a request.
type AICloneService struct {
	repo     *repository.Repository
	store    *storage.LocalStore
	detector client.FaceDetector
	speech   client.SpeechSynthesizer
}

// NewAICloneService creates a new AICloneService.
func NewAICloneService(repo *repository.Repository, store *storage.LocalStore, detector client.FaceDetector, speech client.SpeechSynthesizer) *AICloneService {
	return &AICloneService{
		repo:     repo,
		store:    store,
		detector: detector,
		speech:   speech,
	}
}

// Create validates the source image (it must contain at least one
// detectable face), dispatches a synthesis job, and records the
// request in pending state.
func (s *AICloneService) Create(ctx context.Context, userID, sourceMediaID, script string) (*model.AICloneVideo, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, ErrMissingScript
	}

	media, err := s.repo.GetMedia(ctx, userID, sourceMediaID)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	if media.Type != model.MediaImage {
		return nil, ErrSourceNotImage
	}

	// Preflight the source through face detection; a portrait with no
	// detectable face cannot drive clone generation.
	f, err := s.store.Open(media.StoredName)
	if err != nil {
		return nil, fmt.Errorf("failed to open source media: %w", err)
	}
	detections, err := s.detector.Detect(ctx, f, media.FileName)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if _, ok := client.Largest(detections); !ok {
		return nil, ErrNoFaceDetected
	}

	jobID, err := s.speech.Submit(ctx, client.SynthesisRequest{
		ReferenceText: media.FileName,
		TargetText:    script,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	now := time.Now().UTC()
	video := &model.AICloneVideo{
		ID:            uuid.New().String(),
		UserID:        userID,
		SourceMediaID: sourceMediaID,
		Script:        script,
		Status:        model.ClonePending,
		JobID:         jobID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateCloneVideo(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to record clone video: %w", err)
	}

	return video, nil
}

// Get returns one of the user's clone videos, refreshing its status
// from the external service while the job is still in flight.
func (s *AICloneService) Get(ctx context.Context, userID, id string) (*model.AICloneVideo, error) {
	video, err := s.repo.GetCloneVideo(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCloneVideoNotFound) {
			return nil, ErrCloneVideoNotFound
		}
		return nil, err
	}

	if video.Status == model.ClonePending || video.Status == model.CloneProcessing {
		s.refreshStatus(ctx, video)
	}

	return video, nil
}

// List returns the user's clone videos with pagination metadata.
func (s *AICloneService) List(ctx context.Context, userID string, p pagination.Params) ([]*model.AICloneVideo, pagination.Metadata, error) {
	videos, total, err := s.repo.ListCloneVideos(ctx, userID, p)
	if err != nil {
		return nil, pagination.Metadata{}, err
	}
	return videos, pagination.NewMetadata(p, total), nil
}

// Delete removes one of the user's clone videos.
func (s *AICloneService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteCloneVideo(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrCloneVideoNotFound) {
			return ErrCloneVideoNotFound
		}
		return err
	}
	return nil
}

// refreshStatus polls the external job and persists any transition.
// Poll failures leave the stored status untouched.
func (s *AICloneService) refreshStatus(ctx context.Context, video *model.AICloneVideo) {
	result, err := s.speech.Result(ctx, video.JobID)
	if err != nil {
		return
	}

	var status model.CloneVideoStatus
	var outputURL *string
	switch result.Status {
	case "processing":
		status = model.CloneProcessing
	case "completed":
		status = model.CloneCompleted
		if result.AudioURL != "" {
			outputURL = &result.AudioURL
		}
	case "failed":
		status = model.CloneFailed
	default:
		return
	}

	if status == video.Status {
		return
	}
	if err := s.repo.UpdateCloneVideoStatus(ctx, video.ID, status, outputURL); err != nil {
		return
	}
	video.Status = status
	video.OutputURL = outputURL
}
