package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/pagination"
	"github.com/everkeep/everkeep/internal/repository"
)

// Story service errors.
var (
	ErrStoryNotFound = errors.New("story not found")
	ErrMissingTitle  = errors.New("story title is required")
	ErrMissingBody   = errors.New("story body is required")
	ErrTooManyTags   = errors.New("too many tags")
)

const maxStoryTags = 10

// StoryService handles story business logic.
type StoryService struct {
	repo *repository.Repository
}

// NewStoryService creates a new StoryService.
func NewStoryService(repo *repository.Repository) *StoryService {
	return &StoryService{repo: repo}
}

// StoryInput defines input for creating a story.
type StoryInput struct {
	Title string
	Body  string
	Tags  []string
}

// Create adds a story for the user.
func (s *StoryService) Create(ctx context.Context, userID string, input StoryInput) (*model.Story, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	tags := normalizeTags(input.Tags)

	if err := validateStory(title, body, tags); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	story := &model.Story{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateStory(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	return story, nil
}

// Get returns one of the user's stories.
func (s *StoryService) Get(ctx context.Context, userID, id string) (*model.Story, error) {
	story, err := s.repo.GetStory(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return story, nil
}

// List returns the user's stories with pagination metadata.
func (s *StoryService) List(ctx context.Context, userID string, p pagination.Params) ([]*model.Story, pagination.Metadata, error) {
	stories, total, err := s.repo.ListStories(ctx, userID, p)
	if err != nil {
		return nil, pagination.Metadata{}, err
	}
	return stories, pagination.NewMetadata(p, total), nil
}

// UpdateStoryInput defines the mutable story fields.
type UpdateStoryInput struct {
	Title *string
	Body  *string
	Tags  []string // nil leaves tags untouched; empty slice clears them
}

// Update patches one of the user's stories.
func (s *StoryService) Update(ctx context.Context, userID, id string, input UpdateStoryInput) (*model.Story, error) {
	story, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		story.Title = strings.TrimSpace(*input.Title)
	}
	if input.Body != nil {
		story.Body = strings.TrimSpace(*input.Body)
	}
	if input.Tags != nil {
		story.Tags = normalizeTags(input.Tags)
	}

	if err := validateStory(story.Title, story.Body, story.Tags); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStory(ctx, story); err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}

	return story, nil
}

// Delete removes one of the user's stories.
func (s *StoryService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteStory(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrStoryNotFound) {
			return ErrStoryNotFound
		}
		return err
	}
	return nil
}

func validateStory(title, body string, tags []string) error {
	if title == "" {
		return ErrMissingTitle
	}
	if body == "" {
		return ErrMissingBody
	}
	if len(tags) > maxStoryTags {
		return ErrTooManyTags
	}
	return nil
}

// normalizeTags trims, lowercases, and deduplicates tags, dropping
// empties while preserving first-seen order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
