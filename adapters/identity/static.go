package identity

import (
	"context"
	"crypto/subtle"

	"github.com/seastone/gatehouse/core"
	"github.com/seastone/gatehouse/ports"
)

// StaticVerifier is an IdentityVerifier backed by a single fixed
// credential pair. It stands in for a real user directory, which is
// outside this subsystem; swapping it out touches no token logic.
type StaticVerifier struct {
	username string
	password string
}

// NewStaticVerifier creates a verifier accepting exactly one
// username/password combination.
func NewStaticVerifier(username, password string) ports.IdentityVerifier {
	return &StaticVerifier{
		username: username,
		password: password,
	}
}

// Check compares the presented credentials in constant time. Unknown user
// and wrong password produce the same error so callers cannot probe for
// valid usernames.
func (v *StaticVerifier) Check(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.password)) == 1

	if !userOK || !passOK {
		return "", core.ErrIdentityRejected
	}

	return v.username, nil
}
