package ports

import "github.com/seastone/gatehouse/core"

// Tokenizer converts between principals and signed access tokens.
type Tokenizer interface {
	// PrincipalToAccessToken signs the principal's claims into a compact
	// access token.
	PrincipalToAccessToken(principal *core.Principal) (string, error)

	// AccessTokenToPrincipal verifies signature and validity window and
	// returns the embedded principal. Verification is pure: it performs no
	// I/O beyond the in-memory public key.
	AccessTokenToPrincipal(token string) (*core.Principal, error)
}
