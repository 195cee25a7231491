package tokenizer

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/seastone/gatehouse/core"
	"github.com/seastone/gatehouse/internal/keys"
	"github.com/seastone/gatehouse/ports"
)

// JWTTokenizer implements the Tokenizer interface using RS256-signed JWTs.
// It is stateless per call: issuance and verification share only the
// immutable key pair.
type JWTTokenizer struct {
	pair *keys.Pair
}

// NewJWTTokenizer creates a new JWT tokenizer signing with the given pair.
func NewJWTTokenizer(pair *keys.Pair) ports.Tokenizer {
	return &JWTTokenizer{pair: pair}
}

// PrincipalToAccessToken signs the principal's claims into a compact JWT.
func (j *JWTTokenizer) PrincipalToAccessToken(principal *core.Principal) (string, error) {
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Subject,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(principal.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(principal.ExpiresAt),
		},
		Role: principal.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = j.pair.KeyID()

	signed, err := token.SignedString(j.pair.Private())
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// AccessTokenToPrincipal verifies an access token against the public key
// and returns the embedded principal. The signing algorithm is pinned to
// RS256 and both the expiry and issued-at claims are enforced, so a token
// dated in the future is rejected the same way an expired one is.
func (j *JWTTokenizer) AccessTokenToPrincipal(tokenStr string) (*core.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return j.pair.Public(), nil
		},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenUsedBeforeIssued) || errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, core.ErrTokenExpired
		}
		return nil, core.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, core.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, core.ErrTokenInvalid
	}

	return &core.Principal{
		Subject:   claims.Subject,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
