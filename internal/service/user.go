// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/auth"
	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/repository"
)

// User service errors.
var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrWeakPassword    = errors.New("password is too short")
	ErrMissingFullName = errors.New("full name is required")
	ErrEmailExists     = errors.New("email already registered")
	ErrPhoneExists     = errors.New("phone already registered")
	ErrUserNotFound    = errors.New("user not found")
	// ErrInvalidCredentials covers both unknown email and wrong
	// password so login failures do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when a user addresses a resource it
	// does not own.
	ErrForbidden = errors.New("forbidden")
)

const minPasswordLength = 8

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// UserService handles accounts: registration, login, profiles.
type UserService struct {
	repo     *repository.Repository
	hasher   *auth.PasswordHasher
	codec    *auth.TokenCodec
	tokenTTL time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, hasher *auth.PasswordHasher, codec *auth.TokenCodec, tokenTTL time.Duration) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		codec:    codec,
		tokenTTL: tokenTTL,
	}
}

// RegisterInput defines input for creating an account.
type RegisterInput struct {
	Email    string
	Phone    string
	Password string
	FullName string
}

// Register creates a user and its profile.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.Phone)
	fullName := strings.TrimSpace(input.FullName)

	if err := validateRegistration(email, phone, input.Password, fullName); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &model.Profile{
		UserID:    user.ID,
		FullName:  fullName,
		UpdatedAt: now,
	}

	if err := s.repo.CreateUser(ctx, user, profile); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailExists
		case errors.Is(err, repository.ErrPhoneExists):
			return nil, ErrPhoneExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a signed token. Every failure
// path returns ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, user, nil
}

// Get returns a user with its profile. Users may only read themselves.
func (s *UserService) Get(ctx context.Context, requesterID, id string) (*model.User, *model.Profile, error) {
	if requesterID != id {
		return nil, nil, ErrForbidden
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	profile, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	return user, profile, nil
}

// UpdateProfileInput defines the mutable profile fields. Nil pointers
// leave the stored value untouched.
type UpdateProfileInput struct {
	FullName    *string
	Bio         *string
	AvatarMedia *string
	DateOfBirth *time.Time
}

// UpdateProfile patches the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*model.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, ErrMissingFullName
		}
		profile.FullName = name
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.AvatarMedia != nil {
		profile.AvatarMedia = input.AvatarMedia
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return profile, nil
}

// Delete removes the caller's account; the database cascades the
// delete to all dependent rows.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// validateRegistration checks the registration inputs.
func validateRegistration(email, phone, password, fullName string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhone
	}
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	if fullName == "" {
		return ErrMissingFullName
	}
	return nil
}
