package auth

import "context"

type contextKey int

const identityKey contextKey = iota + 1

// Identity is the caller resolved from a bearer credential. Core services
// only ever act on this, never on user IDs supplied in request bodies.
type Identity struct {
	UserID string
	Role   string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the resolved caller, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
