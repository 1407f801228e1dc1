package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/gridpulse/internal/models"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create appends a row to the notification log.
func (r *notificationRepository) Create(ctx context.Context, n models.NewNotification) (int64, error) {
	query := `
		INSERT INTO notifications (contact_id, provider_message_id, message_type, content, status, sent_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`

	var providerID sql.NullString
	if n.ProviderMessageID != "" {
		providerID = sql.NullString{String: n.ProviderMessageID, Valid: true}
	}

	messageType := n.MessageType
	if messageType == "" {
		messageType = models.MessageTypeManual
	}

	status := n.Status
	if status == "" {
		status = models.NotificationStatusSent
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, n.ContactID, providerID, messageType, n.Content, status); err != nil {
		return 0, fmt.Errorf("failed to create notification: %w", err)
	}

	return id, nil
}

// UpdateStatus applies a delivery callback. The timestamp matching the new
// status is set and the others are cleared; the error is kept only for
// failure statuses. Transitions are not checked for ordering.
func (r *notificationRepository) UpdateStatus(ctx context.Context, update models.StatusUpdate) (bool, error) {
	query := `
		UPDATE notifications
		SET status = $2::varchar,
		    delivered_at = CASE WHEN $2::varchar = 'delivered' THEN NOW() END,
		    read_at = CASE WHEN $2::varchar = 'read' THEN NOW() END,
		    failed_at = CASE WHEN $3::boolean THEN NOW() END,
		    error_message = CASE WHEN $3::boolean THEN $4::text END
		WHERE provider_message_id = $1
	`

	failed := models.IsFailureStatus(update.Status)

	var errMsg sql.NullString
	if failed && update.ErrorMessage != "" {
		errMsg = sql.NullString{String: update.ErrorMessage, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, update.ProviderMessageID, string(update.Status), failed, errMsg)
	if err != nil {
		return false, fmt.Errorf("failed to update notification status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}

// List returns notifications newest first, joined with their contact.
func (r *notificationRepository) List(ctx context.Context, offset, limit int) ([]*models.NotificationWithContact, error) {
	query := `
		SELECT n.id, n.contact_id, n.provider_message_id, n.message_type, n.content, n.status,
		       n.sent_at, n.delivered_at, n.read_at, n.failed_at, n.error_message,
		       c.phone_number, c.name AS contact_name
		FROM notifications n
		JOIN contacts c ON c.id = n.contact_id
		ORDER BY n.sent_at DESC, n.id DESC
		LIMIT $1 OFFSET $2
	`

	notifications := []*models.NotificationWithContact{}
	if err := r.db.SelectContext(ctx, &notifications, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

// Count returns the total number of logged notifications.
func (r *notificationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications`); err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return count, nil
}
