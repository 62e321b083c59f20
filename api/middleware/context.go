package middleware

import (
	"context"

	"github.com/bebifresh/bebifresh-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID  contextKey = "user_id"
	ctxRole    contextKey = "actor_role"
	ctxAgeMode contextKey = "age_mode"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// AgeModeFromContext returns the requested storefront copy audience,
// defaulting to adults when the request carried none.
func AgeModeFromContext(ctx context.Context) enums.AgeMode {
	if ctx == nil {
		return enums.AgeModeAdultos
	}
	if v, ok := ctx.Value(ctxAgeMode).(enums.AgeMode); ok && v.IsValid() {
		return v
	}
	return enums.AgeModeAdultos
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// WithAgeMode injects the storefront copy audience into the context.
func WithAgeMode(ctx context.Context, mode enums.AgeMode) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAgeMode, mode)
}
