package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// repositoryImpl is the concrete implementation of Repository interface.
type repositoryImpl struct {
	db           *sqlx.DB
	contact      ContactRepository
	notification NotificationRepository
	resident     ResidentRepository
	issue        IssueRepository
	post         PostRepository
	business     BusinessRepository
	estate       EstateRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return &repositoryImpl{
		db:           db,
		contact:      NewContactRepository(db),
		notification: NewNotificationRepository(db),
		resident:     NewResidentRepository(db),
		issue:        NewIssueRepository(db),
		post:         NewPostRepository(db),
		business:     NewBusinessRepository(db),
		estate:       NewEstateRepository(db),
	}
}

func (r *repositoryImpl) Contact() ContactRepository {
	return r.contact
}

func (r *repositoryImpl) Notification() NotificationRepository {
	return r.notification
}

func (r *repositoryImpl) Resident() ResidentRepository {
	return r.resident
}

func (r *repositoryImpl) Issue() IssueRepository {
	return r.issue
}

func (r *repositoryImpl) Post() PostRepository {
	return r.post
}

func (r *repositoryImpl) Business() BusinessRepository {
	return r.business
}

func (r *repositoryImpl) Estate() EstateRepository {
	return r.estate
}

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}
