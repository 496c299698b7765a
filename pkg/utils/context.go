package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	RoleKey    contextKey = "role"
	SessionKey contextKey = "session"
)

// DefaultRole is the role assumed for any session that does not carry one.
const DefaultRole = "CUSTOMER"

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// GetRoleFromContext returns the session role, falling back to CUSTOMER.
func GetRoleFromContext(ctx context.Context) string {
	role, ok := ctx.Value(RoleKey).(string)
	if !ok || role == "" {
		return DefaultRole
	}
	return role
}

func SetUserContext(ctx context.Context, userID uuid.UUID, role string) context.Context {
	if role == "" {
		role = DefaultRole
	}
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

// GetSessionFromContext returns the decoded session claims set by the auth middleware.
func GetSessionFromContext(ctx context.Context) (*SessionClaims, bool) {
	claims, ok := ctx.Value(SessionKey).(*SessionClaims)
	return claims, ok && claims != nil
}

func SetSessionContext(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, SessionKey, claims)
}
