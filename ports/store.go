package ports

import "context"

// RefreshStore persists refresh tokens in a TTL-capable key-value store.
// All mutable session state lives behind this interface; the store's
// per-key atomicity is the only concurrency control.
type RefreshStore interface {
	// Create generates a new opaque refresh token bound to subject and
	// persists it with the store's TTL.
	Create(ctx context.Context, subject string) (string, error)

	// Validate resolves a refresh token to its subject. Absent or expired
	// tokens return core.ErrTokenInvalid; an unreachable store returns
	// core.ErrStoreUnavailable.
	Validate(ctx context.Context, token string) (string, error)

	// Revoke deletes the token unconditionally. Revoking an absent token
	// is a no-op, not an error.
	Revoke(ctx context.Context, token string) error
}
