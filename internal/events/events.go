package events

import (
	"context"
	"time"
)

const (
	InstrumentalCreated = "instrumental_created"
	InstrumentalUpdated = "instrumental_updated"
	InstrumentalDeleted = "instrumental_deleted"

	UserRegistered = "user_registered"
	PasswordReset  = "password_reset"
)

// Event is the JSON body written to the topic.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

func New(typ string, payload any) Event {
	return Event{Type: typ, OccurredAt: time.Now().UTC(), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
	Close() error
}

// Noop is used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, string, any) error { return nil }
func (Noop) Close() error { return nil }
