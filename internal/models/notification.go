// Package models defines data structures used throughout the application.
package models

import (
	"database/sql"
	"time"

	"github.com/popeskul/gridpulse/internal/api"
)

type NotificationStatus = api.NotificationStatus

const (
	NotificationStatusQueued      = api.Queued
	NotificationStatusSent        = api.Sent
	NotificationStatusDelivered   = api.Delivered
	NotificationStatusRead        = api.Read
	NotificationStatusFailed      = api.Failed
	NotificationStatusUndelivered = api.Undelivered
)

// Message types recorded alongside notifications.
const (
	MessageTypeManual             = "manual"
	MessageTypeWelcome            = "welcome"
	MessageTypeOptOutConfirmation = "opt_out_confirmation"
	MessageTypeOptInConfirmation  = "opt_in_confirmation"
)

// IsFailureStatus reports whether a provider status ends delivery unsuccessfully.
func IsFailureStatus(status NotificationStatus) bool {
	return status == NotificationStatusFailed || status == NotificationStatusUndelivered
}

// Notification represents one logged outbound message attempt.
type Notification struct {
	ID                int64              `db:"id" json:"id"`
	ContactID         int64              `db:"contact_id" json:"contact_id"`
	ProviderMessageID sql.NullString     `db:"provider_message_id" json:"provider_message_id,omitempty"`
	MessageType       string             `db:"message_type" json:"message_type"`
	Content           string             `db:"content" json:"content"`
	Status            NotificationStatus `db:"status" json:"status"`
	SentAt            time.Time          `db:"sent_at" json:"sent_at"`
	DeliveredAt       sql.NullTime       `db:"delivered_at" json:"delivered_at,omitempty"`
	ReadAt            sql.NullTime       `db:"read_at" json:"read_at,omitempty"`
	FailedAt          sql.NullTime       `db:"failed_at" json:"failed_at,omitempty"`
	ErrorMessage      sql.NullString     `db:"error_message" json:"error_message,omitempty"`
}

// NotificationWithContact is a notification joined with its owning contact.
type NotificationWithContact struct {
	Notification
	PhoneNumber string         `db:"phone_number" json:"phone_number"`
	ContactName sql.NullString `db:"contact_name" json:"contact_name,omitempty"`
}

// NewNotification is the data needed to append a row to the notification log.
type NewNotification struct {
	ContactID         int64
	ProviderMessageID string
	MessageType       string
	Content           string
	Status            NotificationStatus
}

// StatusUpdate is a delivery-status callback applied to a notification.
type StatusUpdate struct {
	ProviderMessageID string
	Status            NotificationStatus
	ErrorMessage      string
}
