package ports

import "context"

// EventPublisher notifies other instances about session changes.
type EventPublisher interface {
	// PublishLogout announces that a refresh token has been revoked.
	PublishLogout(ctx context.Context, subject string, token string) error
}
