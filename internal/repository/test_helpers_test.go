package repository_test

import (
	"database/sql"
	"fmt"
	"time"
)

func insertTestContact(db *sql.DB, phoneNumber, name string, optedIn bool) (int64, error) {
	var id int64
	query := `
		INSERT INTO contacts (phone_number, name, opted_in, opted_in_at)
		VALUES ($1, NULLIF($2::text, ''), $3, CASE WHEN $3::boolean THEN NOW() END)
		RETURNING id
	`

	err := db.QueryRow(query, phoneNumber, name, optedIn).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert test contact: %w", err)
	}

	return id, nil
}

func insertTestNotification(db *sql.DB, contactID int64, providerID *string, content, status string, sentAt time.Time) (int64, error) {
	var id int64
	query := `
		INSERT INTO notifications (contact_id, provider_message_id, content, status, sent_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := db.QueryRow(query, contactID, providerID, content, status, sentAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert test notification: %w", err)
	}

	return id, nil
}

func insertTestResident(db *sql.DB, name, whatsapp, estate string) (int64, error) {
	var id int64
	query := `
		INSERT INTO residents (name, whatsapp, estate)
		VALUES ($1, NULLIF($2::text, ''), $3)
		RETURNING id
	`

	err := db.QueryRow(query, name, whatsapp, estate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert test resident: %w", err)
	}

	return id, nil
}

func countRows(db *sql.DB, table string) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

func ptr[T any](v T) *T {
	return &v
}
