// Package events publishes ledger notifications for downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the ledger services.
const (
	AccountCreated       = "account.created"
	AccountClosed        = "account.closed"
	AccountRestored      = "account.restored"
	TransactionCompleted = "transaction.completed"
	TransactionFailed    = "transaction.failed"
)

// Event is the envelope published for every ledger change.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// NewEvent builds an envelope with a fresh id.
func NewEvent(eventType string, occurredAt time.Time, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
