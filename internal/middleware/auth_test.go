package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everkeep/everkeep/internal/auth"
	"github.com/everkeep/everkeep/internal/model"
)

type stubUserFinder struct {
	users map[string]*model.User
}

func (s *stubUserFinder) GetUserByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, context.Canceled
}

func newAuthHandler(t *testing.T, codec *auth.TokenCodec, users *stubUserFinder) http.Handler {
	t.Helper()

	cfg := AuthConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Codec:  codec,
		Users:  users,
	}

	return Auth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := auth.UserFromContext(r.Context())
		require.NotNil(t, u)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(u.ID))
	}))
}

func TestAuthValidToken(t *testing.T) {
	codec, err := auth.NewTokenCodec("test-secret")
	require.NoError(t, err)

	users := &stubUserFinder{users: map[string]*model.User{
		"user-1": {ID: "user-1", Email: "a@example.com"},
	}}
	handler := newAuthHandler(t, codec, users)

	token, err := codec.Issue("user-1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestAuthFailuresAreUniform(t *testing.T) {
	codec, err := auth.NewTokenCodec("test-secret")
	require.NoError(t, err)
	otherCodec, err := auth.NewTokenCodec("other-secret")
	require.NoError(t, err)

	users := &stubUserFinder{users: map[string]*model.User{
		"user-1": {ID: "user-1"},
	}}
	handler := newAuthHandler(t, codec, users)

	validForOther, err := otherCodec.Issue("user-1", time.Hour)
	require.NoError(t, err)
	expired, err := codec.Issue("user-1", -time.Minute)
	require.NoError(t, err)
	unknownSubject, err := codec.Issue("ghost", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong signature", "Bearer " + validForOther},
		{"expired token", "Bearer " + expired},
		{"unknown subject", "Bearer " + unknownSubject},
	}

	var firstBody string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			if firstBody == "" {
				firstBody = rec.Body.String()
			} else {
				// Every failure mode must be indistinguishable.
				assert.Equal(t, firstBody, rec.Body.String())
			}
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", extractBearerToken(req))

	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", extractBearerToken(req))

	req.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "", extractBearerToken(req))
}
