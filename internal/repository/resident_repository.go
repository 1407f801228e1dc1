package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/gridpulse/internal/models"
)

type residentRepository struct {
	db *sqlx.DB
}

func NewResidentRepository(db *sqlx.DB) ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// Save matches an existing resident by WhatsApp number or name. A match is
// overwritten with the new details; otherwise a row is inserted.
func (r *residentRepository) Save(ctx context.Context, resident *models.Resident) (int64, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var id int64
	err = tx.GetContext(ctx, &id, `
		SELECT id FROM residents
		WHERE (whatsapp IS NOT NULL AND whatsapp = $1) OR name = $2
		ORDER BY id ASC
		LIMIT 1
		FOR UPDATE
	`, resident.WhatsApp, resident.Name)

	created := false
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = tx.GetContext(ctx, &id, `
			INSERT INTO residents (name, whatsapp, estate, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, resident.Name, resident.WhatsApp, resident.Estate, resident.Latitude, resident.Longitude)
		if err != nil {
			return 0, false, fmt.Errorf("failed to create resident: %w", err)
		}
		created = true
	case err != nil:
		return 0, false, fmt.Errorf("failed to find resident: %w", err)
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE residents
			SET name = $2, whatsapp = $3, estate = $4, latitude = $5, longitude = $6
			WHERE id = $1
		`, id, resident.Name, resident.WhatsApp, resident.Estate, resident.Latitude, resident.Longitude)
		if err != nil {
			return 0, false, fmt.Errorf("failed to update resident: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit resident: %w", err)
	}

	return id, created, nil
}
