package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/gridpulse/internal/models"
)

type businessRepository struct {
	db *sqlx.DB
}

func NewBusinessRepository(db *sqlx.DB) BusinessRepository {
	return &businessRepository{
		db: db,
	}
}

func (r *businessRepository) ListByEstate(ctx context.Context, estate string, limit int) ([]*models.Business, error) {
	query := `
		SELECT id, name, description, estate, image_url, contact, created_at
		FROM businesses
		WHERE estate = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	businesses := []*models.Business{}
	if err := r.db.SelectContext(ctx, &businesses, query, estate, limit); err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	return businesses, nil
}

type estateRepository struct {
	db *sqlx.DB
}

func NewEstateRepository(db *sqlx.DB) EstateRepository {
	return &estateRepository{
		db: db,
	}
}

func (r *estateRepository) List(ctx context.Context) ([]string, error) {
	query := `
		SELECT estate FROM residents WHERE estate IS NOT NULL
		UNION
		SELECT estate FROM community_posts WHERE estate IS NOT NULL
		UNION
		SELECT estate FROM businesses WHERE estate IS NOT NULL
		ORDER BY estate
	`

	estates := []string{}
	if err := r.db.SelectContext(ctx, &estates, query); err != nil {
		return nil, fmt.Errorf("failed to list estates: %w", err)
	}

	return estates, nil
}
