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

// Chat service errors.
var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrMissingContent  = errors.New("message content is required")
	ErrInvalidChatRole = errors.New("invalid chat role")
)

// ChatService handles chat sessions and their messages.
type ChatService struct {
	repo *repository.Repository
}

// NewChatService creates a new ChatService.
func NewChatService(repo *repository.Repository) *ChatService {
	return &ChatService{repo: repo}
}

// CreateSession starts a new chat session for the user.
func (s *ChatService) CreateSession(ctx context.Context, userID, title string) (*model.ChatSession, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "New conversation"
	}

	now := time.Now().UTC()
	session := &model.ChatSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}

	return session, nil
}

// GetSession returns one of the user's sessions.
func (s *ChatService) GetSession(ctx context.Context, userID, id string) (*model.ChatSession, error) {
	session, err := s.repo.GetSession(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// ListSessions returns the user's sessions with pagination metadata.
func (s *ChatService) ListSessions(ctx context.Context, userID string, p pagination.Params) ([]*model.ChatSession, pagination.Metadata, error) {
	sessions, total, err := s.repo.ListSessions(ctx, userID, p)
	if err != nil {
		return nil, pagination.Metadata{}, err
	}
	return sessions, pagination.NewMetadata(p, total), nil
}

// DeleteSession removes a session and its messages.
func (s *ChatService) DeleteSession(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteSession(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// PostMessage appends a message to one of the user's sessions. The
// session lookup doubles as the ownership check.
func (s *ChatService) PostMessage(ctx context.Context, userID, sessionID string, role model.ChatRole, content string) (*model.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrMissingContent
	}
	if !role.IsValid() {
		return nil, ErrInvalidChatRole
	}

	if _, err := s.GetSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	message := &model.ChatMessage{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create chat message: %w", err)
	}

	return message, nil
}

// ListMessages returns a session's messages with pagination metadata.
func (s *ChatService) ListMessages(ctx context.Context, userID, sessionID string, p pagination.Params) ([]*model.ChatMessage, pagination.Metadata, error) {
	if _, err := s.GetSession(ctx, userID, sessionID); err != nil {
		return nil, pagination.Metadata{}, err
	}

	messages, total, err := s.repo.ListMessages(ctx, sessionID, p)
	if err != nil {
		return nil, pagination.Metadata{}, err
	}
	return messages, pagination.NewMetadata(p, total), nil
}
