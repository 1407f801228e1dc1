// Package events publishes domain events about subscriptions, deliveries and
// issue reports.
package events

//go:generate mockgen -source=events.go -destination=mocks/mock_events.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeContactOptedIn            = "contact.opted_in"
	TypeContactOptedOut           = "contact.opted_out"
	TypeNotificationStatusUpdated = "notification.status_updated"
	TypeIssueReported             = "issue.reported"
)

// Event is the envelope written to the topic.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type ContactPayload struct {
	ContactID   int64  `json:"contact_id"`
	PhoneNumber string `json:"phone_number"`
	Source      string `json:"source"`
}

type NotificationStatusPayload struct {
	ProviderMessageID string `json:"provider_message_id"`
	Status            string `json:"status"`
	ErrorMessage      string `json:"error_message,omitempty"`
}

type IssuePayload struct {
	IssueID   int64   `json:"issue_id"`
	Type      string  `json:"type"`
	Location  string  `json:"location,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Publisher emits events keyed for partitioning. Publishing never blocks on
// the broker; delivery failures are only logged.
type Publisher interface {
	Publish(ctx context.Context, key string, event Event) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that drops every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, Event) error { return nil }

func (nopPublisher) Close() error { return nil }
