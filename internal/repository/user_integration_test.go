package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everkeep/everkeep/internal/model"
	"github.com/everkeep/everkeep/internal/testutil"
)

// newTestRepo connects to the test database, applies migrations, and
// serializes access across packages. Tests skip when
// TEST_DATABASE_URL is not set.
func newTestRepo(t *testing.T) (*Repository, context.Context) {
	t.Helper()

	dbURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, dbURL))

	repo, err := New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	require.NoError(t, err)
	t.Cleanup(func() { _ = unlock() })

	require.NoError(t, testutil.TruncateAll(ctx, repo.Pool()))

	return repo, ctx
}

func newTestUser(email, phone string) (*model.User, *model.Profile) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		Phone:        phone,
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarea",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	p := &model.Profile{
		UserID:    u.ID,
		FullName:  "Test User",
		UpdatedAt: now,
	}
	return u, p
}

func TestUserLifecycle(t *testing.T) {
	repo, ctx := newTestRepo(t)

	user, profile := newTestUser("alice@example.com", "+15550000001")
	require.NoError(t, repo.CreateUser(ctx, user, profile))

	got, err := repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)

	gotProfile, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", gotProfile.FullName)

	gotProfile.Bio = "gardener"
	require.NoError(t, repo.UpdateProfile(ctx, gotProfile))

	updated, err := repo.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "gardener", updated.Bio)

	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	_, err = repo.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = repo.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUserUniqueConstraints(t *testing.T) {
	repo, ctx := newTestRepo(t)

	user, profile := newTestUser("bob@example.com", "+15550000002")
	require.NoError(t, repo.CreateUser(ctx, user, profile))

	dupEmail, dupEmailProfile := newTestUser("bob@example.com", "+15550000003")
	assert.ErrorIs(t, repo.CreateUser(ctx, dupEmail, dupEmailProfile), ErrEmailExists)

	dupPhone, dupPhoneProfile := newTestUser("carol@example.com", "+15550000002")
	assert.ErrorIs(t, repo.CreateUser(ctx, dupPhone, dupPhoneProfile), ErrPhoneExists)
}

func TestDeleteUserCascades(t *testing.T) {
	repo, ctx := newTestRepo(t)

	user, profile := newTestUser("dave@example.com", "+15550000004")
	require.NoError(t, repo.CreateUser(ctx, user, profile))

	now := time.Now().UTC()
	contact := &model.EmergencyContact{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		FullName:  "Next of Kin",
		Phone:     "+15550000005",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateContact(ctx, contact))

	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	_, err := repo.GetContact(ctx, user.ID, contact.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)
}
