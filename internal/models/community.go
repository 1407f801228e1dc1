package models

import (
	"database/sql"
	"time"
)

// Resident is a registered member of an estate.
type Resident struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	WhatsApp  sql.NullString  `db:"whatsapp" json:"whatsapp,omitempty"`
	Estate    string          `db:"estate" json:"estate"`
	Latitude  sql.NullFloat64 `db:"latitude" json:"latitude,omitempty"`
	Longitude sql.NullFloat64 `db:"longitude" json:"longitude,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Issue is a reported utility outage.
type Issue struct {
	ID          int64          `db:"id" json:"id"`
	ResidentID  sql.NullInt64  `db:"resident_id" json:"resident_id,omitempty"`
	Type        string         `db:"type" json:"type"`
	Description string         `db:"description" json:"description"`
	Latitude    float64        `db:"latitude" json:"latitude"`
	Longitude   float64        `db:"longitude" json:"longitude"`
	Location    sql.NullString `db:"location" json:"location,omitempty"`
	PhotoURL    sql.NullString `db:"photo_url" json:"photo_url,omitempty"`
	Status      string         `db:"status" json:"status"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UserName    sql.NullString `db:"user_name" json:"user_name,omitempty"`
}

const IssueStatusReported = "reported"

// CommunityPost is a message on an estate's community feed.
type CommunityPost struct {
	ID         int64          `db:"id" json:"id"`
	ResidentID sql.NullInt64  `db:"resident_id" json:"resident_id,omitempty"`
	Estate     string         `db:"estate" json:"estate"`
	Content    string         `db:"content" json:"content"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	AuthorName sql.NullString `db:"author_name" json:"author_name,omitempty"`
}

// Business is a local business listing.
type Business struct {
	ID          int64          `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description sql.NullString `db:"description" json:"description,omitempty"`
	Estate      string         `db:"estate" json:"estate"`
	ImageURL    sql.NullString `db:"image_url" json:"image_url,omitempty"`
	Contact     sql.NullString `db:"contact" json:"contact,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
