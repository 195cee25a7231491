package ports

import "context"

// IdentityVerifier is the injected identity check used at login. The token
// subsystem depends only on this interface, so the hardcoded credential
// match can be swapped for a real user directory without touching token
// logic.
type IdentityVerifier interface {
	// Check validates the presented credentials and returns the subject
	// identifier on success, or core.ErrIdentityRejected.
	Check(ctx context.Context, username, password string) (string, error)
}
