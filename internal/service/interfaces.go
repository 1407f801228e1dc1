package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"

	"github.com/popeskul/gridpulse/internal/api"
	"github.com/popeskul/gridpulse/internal/models"
)

type SubscriptionService interface {
	// OptIn subscribes the number and sends the welcome template. A failed
	// welcome send is logged; the contact stays opted in.
	OptIn(ctx context.Context, phoneNumber string, name *string) (*models.Contact, error)
	// OptOut unsubscribes an exact phone number. Returns ErrContactNotFound
	// for unknown numbers. Nothing is sent.
	OptOut(ctx context.Context, phoneNumber string) (*models.Contact, error)
	// Resubscribe opts a number back in without a name or welcome message.
	Resubscribe(ctx context.Context, phoneNumber string) (*models.Contact, error)
	ListContacts(ctx context.Context, optedIn *bool) ([]*models.Contact, error)
}

type NotificationService interface {
	// Send targets one contact, or broadcasts when only a template is given.
	Send(ctx context.Context, req SendRequest) (*SendSummary, error)
	ListNotifications(ctx context.Context, page, limit int) (*api.NotificationListResponse, error)
}

type BroadcastService interface {
	Broadcast(ctx context.Context, templateName string, variables map[string]string, messageType string) (*SendSummary, error)
}

type WebhookService interface {
	HandleCallback(ctx context.Context, payload WebhookPayload) error
}

type CommunityService interface {
	RegisterResident(ctx context.Context, input ResidentInput) (id int64, created bool, err error)
	ReportIssue(ctx context.Context, input IssueInput) (*models.Issue, error)
	ListIssues(ctx context.Context, estate string, limit int) ([]*models.Issue, error)
	CreatePost(ctx context.Context, input PostInput) (int64, error)
	ListPosts(ctx context.Context, estate string, limit int) ([]*models.CommunityPost, error)
	ListBusinesses(ctx context.Context, estate string, limit int) ([]*models.Business, error)
	ListEstates(ctx context.Context) ([]string, error)
}

type HealthService interface {
	GetHealth() *HealthStatus
}
