// Package keys owns the process-wide signing key pair. The pair is
// generated once at startup and is immutable afterwards, so it can be
// shared across any number of concurrent signing and verification calls
// without synchronization.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	jose "github.com/go-jose/go-jose/v3"
	"github.com/google/uuid"
)

// ModulusBits is the RSA modulus size used for signing keys.
const ModulusBits = 2048

// Pair holds an RSA signing key pair and its key identifier. The private
// half never leaves this process; the public half is exposed through
// Public and JWKS.
type Pair struct {
	private *rsa.PrivateKey
	kid     string
}

// Generate creates a fresh 2048-bit RSA key pair. Failure means the secure
// random source is unusable and the process must not start.
func Generate() (*Pair, error) {
	key, err := rsa.GenerateKey(rand.Reader, ModulusBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key pair: %w", err)
	}

	return &Pair{
		private: key,
		kid:     uuid.New().String(),
	}, nil
}

// Private returns the signing half of the pair.
func (p *Pair) Private() *rsa.PrivateKey {
	return p.private
}

// Public returns the verification half of the pair.
func (p *Pair) Public() *rsa.PublicKey {
	return &p.private.PublicKey
}

// KeyID returns the identifier embedded as the "kid" header of every token
// signed with this pair.
func (p *Pair) KeyID() string {
	return p.kid
}

// JWKS returns a JSON Web Key Set holding the public half only, suitable
// for serving to downstream services that verify tokens independently.
func (p *Pair) JWKS() jose.JSONWebKeySet {
	return jose.JSONWebKeySet{
		Keys: []jose.JSONWebKey{
			{
				Key:       p.Public(),
				KeyID:     p.kid,
				Algorithm: "RS256",
				Use:       "sig",
			},
		},
	}
}
