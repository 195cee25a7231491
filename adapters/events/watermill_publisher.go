package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/seastone/gatehouse/ports"
)

// LogoutTopic is the topic logout events are published to.
const LogoutTopic = "gatehouse.logout"

// LogoutEvent announces that a refresh token has been revoked, so other
// instances can react (audit, session listings, cache eviction).
type LogoutEvent struct {
	Subject      string `json:"subject"`
	RefreshToken string `json:"refresh_token"`
}

// WatermillPublisher implements the EventPublisher interface using
// Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill-backed event publisher.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     LogoutTopic,
	}
}

// PublishLogout publishes a logout event.
func (p *WatermillPublisher) PublishLogout(ctx context.Context, subject string, token string) error {
	event := LogoutEvent{
		Subject:      subject,
		RefreshToken: token,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal logout event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish logout event: %w", err)
	}

	return nil
}
