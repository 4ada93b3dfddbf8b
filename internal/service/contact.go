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

// Contact service errors.
var (
	ErrContactNotFound     = errors.New("emergency contact not found")
	ErrMissingContactName  = errors.New("contact full name is required")
	ErrInvalidContactPhone = errors.New("contact phone is invalid")
	ErrInvalidContactEmail = errors.New("contact email is invalid")
	ErrNegativePriority    = errors.New("priority must be >= 0")
)

// ContactService handles emergency contact business logic.
type ContactService struct {
	repo *repository.Repository
}

// NewContactService creates a new ContactService.
func NewContactService(repo *repository.Repository) *ContactService {
	return &ContactService{repo: repo}
}

// ContactInput defines input for creating an emergency contact.
type ContactInput struct {
	FullName     string
	Phone        string
	Email        string
	Relationship string
	Priority     int
}

// Create adds an emergency contact for the user.
func (s *ContactService) Create(ctx context.Context, userID string, input ContactInput) (*model.EmergencyContact, error) {
	if err := validateContact(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	contact := &model.EmergencyContact{
		ID:           uuid.New().String(),
		UserID:       userID,
		FullName:     strings.TrimSpace(input.FullName),
		Phone:        strings.TrimSpace(input.Phone),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Relationship: strings.TrimSpace(input.Relationship),
		Priority:     input.Priority,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

// Get returns one of the user's contacts.
func (s *ContactService) Get(ctx context.Context, userID, id string) (*model.EmergencyContact, error) {
	contact, err := s.repo.GetContact(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

// List returns the user's contacts with pagination metadata.
func (s *ContactService) List(ctx context.Context, userID string, p pagination.Params) ([]*model.EmergencyContact, pagination.Metadata, error) {
	contacts, total, err := s.repo.ListContacts(ctx, userID, p)
	if err != nil {
		return nil, pagination.Metadata{}, err
	}
	return contacts, pagination.NewMetadata(p, total), nil
}

// UpdateContactInput defines the mutable contact fields.
type UpdateContactInput struct {
	FullName     *string
	Phone        *string
	Email        *string
	Relationship *string
	Priority     *int
}

// Update patches one of the user's contacts.
func (s *ContactService) Update(ctx context.Context, userID, id string, input UpdateContactInput) (*model.EmergencyContact, error) {
	contact, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		contact.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Phone != nil {
		contact.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Email != nil {
		contact.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Relationship != nil {
		contact.Relationship = strings.TrimSpace(*input.Relationship)
	}
	if input.Priority != nil {
		contact.Priority = *input.Priority
	}

	if err := validateContact(ContactInput{
		FullName: contact.FullName,
		Phone:    contact.Phone,
		Email:    contact.Email,
		Priority: contact.Priority,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateContact(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}

	return contact, nil
}

// Delete removes one of the user's contacts.
func (s *ContactService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.DeleteContact(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}

// validateContact checks the contact inputs.
func validateContact(input ContactInput) error {
	if strings.TrimSpace(input.FullName) == "" {
		return ErrMissingContactName
	}
	if !phoneRegex.MatchString(strings.TrimSpace(input.Phone)) {
		return ErrInvalidContactPhone
	}
	if email := strings.TrimSpace(input.Email); email != "" && !emailRegex.MatchString(email) {
		return ErrInvalidContactEmail
	}
	if input.Priority < 0 {
		return ErrNegativePriority
	}
	return nil
}
