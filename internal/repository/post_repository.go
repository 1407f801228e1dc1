package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/popeskul/gridpulse/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{
		db: db,
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.CommunityPost) (int64, error) {
	query := `
		INSERT INTO community_posts (resident_id, estate, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	if err := r.db.GetContext(ctx, &id, query, post.ResidentID, post.Estate, post.Content); err != nil {
		return 0, fmt.Errorf("failed to create post: %w", err)
	}

	return id, nil
}

func (r *postRepository) ListByEstate(ctx context.Context, estate string, limit int) ([]*models.CommunityPost, error) {
	query := `
		SELECT p.id, p.resident_id, p.estate, p.content, p.created_at, r.name AS author_name
		FROM community_posts p
		LEFT JOIN residents r ON r.id = p.resident_id
		WHERE p.estate = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2
	`

	posts := []*models.CommunityPost{}
	if err := r.db.SelectContext(ctx, &posts, query, estate, limit); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}
