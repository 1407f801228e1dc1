// Package cache keeps short-lived message bookkeeping in Redis.
package cache

//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks

import (
	"context"
	"time"
)

// SentMessage is what the cache remembers about an accepted outbound message.
type SentMessage struct {
	NotificationID int64
	SentAt         time.Time
}

type MessageCache interface {
	// StoreSent indexes an accepted message by its provider id.
	StoreSent(ctx context.Context, notificationID int64, providerMessageID string, sentAt time.Time) error
	// LookupSent returns the indexed message, or false once it has expired
	// or was never stored.
	LookupSent(ctx context.Context, providerMessageID string) (SentMessage, bool, error)
	// MarkInbound records an inbound message id and reports whether it was
	// seen for the first time.
	MarkInbound(ctx context.Context, messageSid string) (bool, error)
	// ReleaseInbound forgets an inbound message id so a redelivery is
	// processed again.
	ReleaseInbound(ctx context.Context, messageSid string) error
}
