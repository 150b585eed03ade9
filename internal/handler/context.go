package handlers

import (
	"context"

	"blogapi/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext reports the caller set by the auth middleware, if any.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

func viewerFromContext(ctx context.Context) *models.Identity {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return nil
	}
	return &identity
}
