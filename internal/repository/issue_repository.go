package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/gridpulse/internal/models"
)

type issueRepository struct {
	db *sqlx.DB
}

func NewIssueRepository(db *sqlx.DB) IssueRepository {
	return &issueRepository{
		db: db,
	}
}

func (r *issueRepository) Create(ctx context.Context, issue *models.Issue) (int64, error) {
	query := `
		INSERT INTO issues (resident_id, type, description, latitude, longitude, location, photo_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	status := issue.Status
	if status == "" {
		status = models.IssueStatusReported
	}

	row := r.db.QueryRowxContext(ctx, query,
		issue.ResidentID, issue.Type, issue.Description, issue.Latitude, issue.Longitude,
		issue.Location, issue.PhotoURL, status)
	if err := row.Scan(&issue.ID, &issue.CreatedAt); err != nil {
		return 0, fmt.Errorf("failed to create issue: %w", err)
	}
	issue.Status = status

	return issue.ID, nil
}

func (r *issueRepository) ListByLocation(ctx context.Context, location string, limit int) ([]*models.Issue, error) {
	query := `
		SELECT i.id, i.resident_id, i.type, i.description, i.latitude, i.longitude,
		       i.location, i.photo_url, i.status, i.created_at, r.name AS user_name
		FROM issues i
		LEFT JOIN residents r ON r.id = i.resident_id
		WHERE i.location = $1 OR i.location IS NULL
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT $2
	`

	issues := []*models.Issue{}
	if err := r.db.SelectContext(ctx, &issues, query, location, limit); err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	return issues, nil
}
