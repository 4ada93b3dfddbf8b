package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everkeep/everkeep/internal/auth"
	"github.com/everkeep/everkeep/internal/middleware"
	"github.com/everkeep/everkeep/internal/repository"
	"github.com/everkeep/everkeep/internal/service"
	"github.com/everkeep/everkeep/internal/testutil"
)

// newTestAPI wires a real repository behind the auth and user handlers.
// Skips when TEST_DATABASE_URL is not set.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	dbURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")
	ctx := context.Background()

	require.NoError(t, repository.Migrate(ctx, dbURL))

	repo, err := repository.New(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	require.NoError(t, err)
	t.Cleanup(func() { _ = unlock() })

	require.NoError(t, testutil.TruncateAll(ctx, repo.Pool()))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	codec, err := auth.NewTokenCodec("integration-test-secret")
	require.NoError(t, err)
	hasher := auth.NewPasswordHasher(4)

	userService := service.NewUserService(repo, hasher, codec, time.Hour)
	authHandler := NewAuthHandler(userService, logger)
	userHandler := NewUserHandler(userService, logger)

	r := chi.NewRouter()
	r.Post("/api/v1/auth/register", authHandler.Register)
	r.Post("/api/v1/auth/login", authHandler.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(middleware.AuthConfig{Logger: logger, Codec: codec, Users: repo}))
		r.Get("/api/v1/users/me", userHandler.Me)
		r.Get("/api/v1/users/{id}", userHandler.Get)
	})
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var e Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return rec, e
}

func TestRegisterLoginAndFetchSelf(t *testing.T) {
	api := newTestAPI(t)

	register := map[string]string{
		"email":     "a@x.com",
		"phone":     "+15551230001",
		"password":  "password1",
		"full_name": "A",
	}
	rec, env := doJSON(t, api, http.MethodPost, "/api/v1/auth/register", "", register)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	user, ok := env.Data.(map[string]any)
	require.True(t, ok)
	userID, _ := user["id"].(string)
	require.NotEmpty(t, userID)

	// Same email again must conflict, not blow up.
	rec, env = doJSON(t, api, http.MethodPost, "/api/v1/auth/register", "", register)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)

	login := map[string]string{"email": "a@x.com", "password": "password1"}
	rec, env = doJSON(t, api, http.MethodPost, "/api/v1/auth/login", "", login)
	require.Equal(t, http.StatusOK, rec.Code)

	payload, ok := env.Data.(map[string]any)
	require.True(t, ok)
	token, _ := payload["access_token"].(string)
	require.NotEmpty(t, token)

	// Wrong password is the same generic 401 as an unknown email.
	rec, _ = doJSON(t, api, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec, _ = doJSON(t, api, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "ghost@x.com", "password": "password1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Protected route without a token.
	rec, _ = doJSON(t, api, http.MethodGet, "/api/v1/users/"+userID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// With the token, the owner sees their own profile.
	rec, env = doJSON(t, api, http.MethodGet, "/api/v1/users/"+userID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp, ok := env.Data.(map[string]any)
	require.True(t, ok)
	profile, ok := resp["profile"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A", profile["full_name"])
}
