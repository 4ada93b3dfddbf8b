package auth

import (
	"context"

	"github.com/everkeep/everkeep/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey contextKey = "auth_user"

// ContextWithUser stores the authenticated user in the context.
func ContextWithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// UserFromContext retrieves the authenticated user from the context.
// Returns nil if the request was not authenticated.
func UserFromContext(ctx context.Context) *model.User {
	u, ok := ctx.Value(userContextKey).(*model.User)
	if !ok {
		return nil
	}
	return u
}

// MustUserFromContext retrieves the authenticated user or panics.
// Only call behind the auth middleware.
func MustUserFromContext(ctx context.Context) *model.User {
	u := UserFromContext(ctx)
	if u == nil {
		panic("auth user not found - ensure auth middleware is applied")
	}
	return u
}
