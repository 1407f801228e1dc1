package models

import (
	"database/sql"
	"time"
)

// Contact is a phone-number-identified notification subscriber.
type Contact struct {
	ID          int64          `db:"id" json:"id"`
	PhoneNumber string         `db:"phone_number" json:"phone_number"`
	Name        sql.NullString `db:"name" json:"name,omitempty"`
	OptedIn     bool           `db:"opted_in" json:"opted_in"`
	OptedInAt   sql.NullTime   `db:"opted_in_at" json:"opted_in_at,omitempty"`
	OptedOutAt  sql.NullTime   `db:"opted_out_at" json:"opted_out_at,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}
