package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/gridpulse/internal/models"
)

const contactColumns = `id, phone_number, name, opted_in, opted_in_at, opted_out_at, created_at, updated_at`

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{
		db: db,
	}
}

// Upsert creates the contact or refreshes its name on conflict.
func (r *contactRepository) Upsert(ctx context.Context, phoneNumber string, name *string) (*models.Contact, error) {
	query := `
		INSERT INTO contacts (phone_number, name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (phone_number) DO UPDATE
		SET name = COALESCE(EXCLUDED.name, contacts.name),
		    updated_at = NOW()
		RETURNING ` + contactColumns

	var nameArg sql.NullString
	if name != nil {
		nameArg = sql.NullString{String: *name, Valid: true}
	}

	var contact models.Contact
	if err := r.db.GetContext(ctx, &contact, query, phoneNumber, nameArg); err != nil {
		return nil, fmt.Errorf("failed to upsert contact: %w", err)
	}

	return &contact, nil
}

// OptIn marks the contact as subscribed and clears any opt-out timestamp.
func (r *contactRepository) OptIn(ctx context.Context, phoneNumber string) (*models.Contact, error) {
	query := `
		UPDATE contacts
		SET opted_in = TRUE,
		    opted_in_at = NOW(),
		    opted_out_at = NULL,
		    updated_at = NOW()
		WHERE phone_number = $1
		RETURNING ` + contactColumns

	return r.updateOne(ctx, query, phoneNumber, "opt in contact")
}

// OptOut marks the contact as unsubscribed. opted_in_at keeps its last value.
func (r *contactRepository) OptOut(ctx context.Context, phoneNumber string) (*models.Contact, error) {
	query := `
		UPDATE contacts
		SET opted_in = FALSE,
		    opted_out_at = NOW(),
		    updated_at = NOW()
		WHERE phone_number = $1
		RETURNING ` + contactColumns

	return r.updateOne(ctx, query, phoneNumber, "opt out contact")
}

func (r *contactRepository) GetByPhone(ctx context.Context, phoneNumber string) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE phone_number = $1`

	return r.updateOne(ctx, query, phoneNumber, "get contact")
}

// ListOptedIn returns every subscribed contact in creation order.
func (r *contactRepository) ListOptedIn(ctx context.Context) ([]*models.Contact, error) {
	optedIn := true
	return r.List(ctx, &optedIn)
}

func (r *contactRepository) List(ctx context.Context, optedIn *bool) ([]*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	var args []interface{}
	if optedIn != nil {
		query += ` WHERE opted_in = $1`
		args = append(args, *optedIn)
	}
	query += ` ORDER BY id ASC`

	contacts := []*models.Contact{}
	if err := r.db.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, nil
}

func (r *contactRepository) updateOne(ctx context.Context, query, phoneNumber, op string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.GetContext(ctx, &contact, query, phoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	return &contact, nil
}
