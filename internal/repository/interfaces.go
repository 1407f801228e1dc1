package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_repository.go -package=mocks

import (
	"context"
	"errors"

	"github.com/popeskul/gridpulse/internal/models"
)

// ErrNotFound is returned when a lookup or update matches no row.
var ErrNotFound = errors.New("record not found")

// Repository interface defines all repository operations.
type Repository interface {
	// Ping checks database connectivity
	Ping() error

	Contact() ContactRepository
	Notification() NotificationRepository
	Resident() ResidentRepository
	Issue() IssueRepository
	Post() PostRepository
	Business() BusinessRepository
	Estate() EstateRepository
}

// ContactRepository is the contact store.
type ContactRepository interface {
	// Upsert inserts the contact or, on a phone-number conflict, replaces the
	// name only when a non-nil name is given. Opt-in state is left untouched.
	Upsert(ctx context.Context, phoneNumber string, name *string) (*models.Contact, error)
	OptIn(ctx context.Context, phoneNumber string) (*models.Contact, error)
	OptOut(ctx context.Context, phoneNumber string) (*models.Contact, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*models.Contact, error)
	ListOptedIn(ctx context.Context) ([]*models.Contact, error)
	List(ctx context.Context, optedIn *bool) ([]*models.Contact, error)
}

// NotificationRepository is the notification log.
type NotificationRepository interface {
	Create(ctx context.Context, n models.NewNotification) (int64, error)
	// UpdateStatus reports whether a row with the provider message id existed.
	UpdateStatus(ctx context.Context, update models.StatusUpdate) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.NotificationWithContact, error)
	Count(ctx context.Context) (int64, error)
}

type ResidentRepository interface {
	// Save updates the resident matching by WhatsApp number or name, or
	// inserts a new one. created is false when an existing row was updated.
	Save(ctx context.Context, resident *models.Resident) (id int64, created bool, err error)
}

type IssueRepository interface {
	Create(ctx context.Context, issue *models.Issue) (int64, error)
	// ListByLocation returns issues at the location plus issues with no location.
	ListByLocation(ctx context.Context, location string, limit int) ([]*models.Issue, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.CommunityPost) (int64, error)
	ListByEstate(ctx context.Context, estate string, limit int) ([]*models.CommunityPost, error)
}

type BusinessRepository interface {
	ListByEstate(ctx context.Context, estate string, limit int) ([]*models.Business, error)
}

type EstateRepository interface {
	// List returns the distinct estates across residents, posts and businesses.
	List(ctx context.Context) ([]string, error)
}
