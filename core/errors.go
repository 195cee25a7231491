package core

import "errors"

var (
	// ErrTokenInvalid covers missing, malformed, badly signed or revoked
	// tokens. Callers never learn which of those it was.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned when a token's validity window has passed
	// or not yet begun.
	ErrTokenExpired = errors.New("token has expired")

	// ErrIdentityRejected is returned when the login credentials do not
	// match. Unknown user and wrong password are deliberately the same error.
	ErrIdentityRejected = errors.New("identity rejected")

	// ErrStoreUnavailable is returned when the refresh token store cannot be
	// reached. It is a dependency failure, never a credential failure, and
	// must not be collapsed into ErrTokenInvalid.
	ErrStoreUnavailable = errors.New("refresh token store unavailable")

	// ErrTokenCollision is returned when a freshly generated refresh token
	// already exists in the store. With 122 bits of randomness this signals
	// a broken random source, not bad luck.
	ErrTokenCollision = errors.New("refresh token collision")
)
