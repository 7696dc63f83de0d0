package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/staffpicks/staffpicks-server/internal/scope"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyAccess contextKey = "access"

// withSession attaches the caller's revalidated access scope to the
// request context. The scope carries everything handlers need (user,
// role, company, store), so the full user record is not stored.
func withSession(ctx context.Context, access scope.Access) context.Context {
	return context.WithValue(ctx, contextKeyAccess, access)
}

// accessFrom extracts the caller's access scope from request context.
func accessFrom(ctx context.Context) (scope.Access, bool) {
	access, ok := ctx.Value(contextKeyAccess).(scope.Access)
	return access, ok
}

// requireAccess is the handler-side guard: routes behind the session
// middleware always have a scope, but handlers fail closed if not.
func requireAccess(ctx context.Context) (scope.Access, error) {
	access, ok := accessFrom(ctx)
	if !ok {
		return scope.Access{}, huma.Error401Unauthorized("authentication required")
	}
	return access, nil
}
