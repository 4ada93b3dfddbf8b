package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/everkeep/everkeep/internal/auth"
	"github.com/everkeep/everkeep/internal/model"
)

// UserFinder loads the account a token subject refers to.
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Codec  *auth.TokenCodec
	Users  UserFinder
}

// Auth returns a middleware that authenticates requests with a bearer
// token. It verifies the token, checks expiry, loads the account, and
// injects the user into the request context. Every failure produces
// the same 401 response; the precise reason only goes to the log.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deny := func(reason string) {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
			}

			token := extractBearerToken(r)
			if token == "" {
				deny("missing_token")
				return
			}

			claims, err := cfg.Codec.Validate(token)
			if err != nil {
				deny("invalid_token")
				return
			}

			if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
				deny("expired_token")
				return
			}
			if claims.Subject == "" {
				deny("empty_subject")
				return
			}

			user, err := cfg.Users.GetUserByID(r.Context(), claims.Subject)
			if err != nil {
				deny("unknown_subject")
				return
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response. The body is the
// same for all auth failures to prevent account enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"http_code":401,"success":false,"message":"invalid or missing access token"}`))
}
