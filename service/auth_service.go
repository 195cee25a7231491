package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/seastone/gatehouse/core"
	"github.com/seastone/gatehouse/ports"
)

const (
	// DefaultAccessTTL is the default validity window of access tokens.
	DefaultAccessTTL = 5 * time.Minute

	// DefaultRole is the role claim granted to every authenticated subject.
	DefaultRole = "ADMIN"
)

// Config tunes the authentication service. Zero values select the
// defaults.
type Config struct {
	// AccessTTL is how long issued access tokens stay valid.
	AccessTTL time.Duration

	// Role is the role claim embedded in every access token.
	Role string

	// RotateRefreshTokens revokes the presented refresh token on every
	// refresh and issues a fresh one. Off by default: the same refresh
	// token is reused until logout or TTL expiry.
	RotateRefreshTokens bool
}

// AuthService orchestrates login, refresh and logout. It holds no mutable
// state of its own; everything lives in the key pair and the refresh
// store, so instances can be replicated freely.
type AuthService struct {
	tokenizer ports.Tokenizer
	store     ports.RefreshStore
	identity  ports.IdentityVerifier
	events    ports.EventPublisher

	accessTTL time.Duration
	role      string
	rotate    bool
}

// NewAuthService creates a new authentication service. The events
// publisher may be nil, in which case logout events are not published.
func NewAuthService(
	tokenizer ports.Tokenizer,
	store ports.RefreshStore,
	identity ports.IdentityVerifier,
	events ports.EventPublisher,
	cfg Config,
) *AuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.Role == "" {
		cfg.Role = DefaultRole
	}

	return &AuthService{
		tokenizer: tokenizer,
		store:     store,
		identity:  identity,
		events:    events,
		accessTTL: cfg.AccessTTL,
		role:      cfg.Role,
		rotate:    cfg.RotateRefreshTokens,
	}
}

// Login checks the presented credentials against the injected identity
// verifier and, on success, returns a freshly signed access token paired
// with a new refresh token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*core.TokenPair, error) {
	subject, err := s.identity.Check(ctx, username, password)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issueAccessToken(subject)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.store.Create(ctx, subject)
	if err != nil {
		return nil, err
	}

	return &core.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is echoed back unchanged unless rotation is
// enabled. Store outages surface as core.ErrStoreUnavailable so the
// transport can report a server-side failure instead of logging the
// caller out.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*core.TokenPair, error) {
	subject, err := s.store.Validate(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issueAccessToken(subject)
	if err != nil {
		return nil, err
	}

	if s.rotate {
		rotated, err := s.store.Create(ctx, subject)
		if err != nil {
			return nil, err
		}
		if err := s.store.Revoke(ctx, refreshToken); err != nil {
			return nil, err
		}
		refreshToken = rotated
	}

	return &core.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout revokes the refresh token unconditionally. Revoking a token that
// never existed or was already revoked succeeds, so callers cannot probe
// which tokens are live. Only a store outage fails the call: claiming
// success for a revocation that did not happen would fail open.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	// Best-effort subject resolution for the logout event. An invalid
	// token just means there is nothing to announce.
	subject, err := s.store.Validate(ctx, refreshToken)
	if err != nil && !errors.Is(err, core.ErrTokenInvalid) {
		return err
	}

	if err := s.store.Revoke(ctx, refreshToken); err != nil {
		return err
	}

	if s.events != nil && subject != "" {
		if err := s.events.PublishLogout(ctx, subject, refreshToken); err != nil {
			// The token is already revoked, which is the part that matters.
			log.Printf("failed to publish logout event: %v", err)
		}
	}

	return nil
}

// Verify validates an access token and returns the embedded principal.
// This path never touches the refresh store: an access token stays valid
// until its own expiry regardless of refresh token state.
func (s *AuthService) Verify(accessToken string) (*core.Principal, error) {
	return s.tokenizer.AccessTokenToPrincipal(accessToken)
}

func (s *AuthService) issueAccessToken(subject string) (string, error) {
	now := time.Now()
	return s.tokenizer.PrincipalToAccessToken(&core.Principal{
		Subject:   subject,
		Role:      s.role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.accessTTL),
	})
}
