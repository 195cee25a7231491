package core

import "time"

// Principal represents an authenticated caller as carried inside an
// access token.
type Principal struct {
	Subject   string    // Identifier of the authenticated user
	Role      string    // Role claim granted at login
	IssuedAt  time.Time // When the access token was issued
	ExpiresAt time.Time // When the access token expires
}

// TokenPair is the pair of credentials returned by login and refresh:
// a signed access token and an opaque refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
