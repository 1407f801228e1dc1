package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/popeskul/gridpulse/internal/cache"
	"github.com/popeskul/gridpulse/internal/config"
	"github.com/popeskul/gridpulse/internal/events"
	"github.com/popeskul/gridpulse/internal/gateway"
	"github.com/popeskul/gridpulse/internal/metrics"
	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/phone"
	"github.com/popeskul/gridpulse/internal/repository"
)

const (
	SourceAPI      = "api"
	SourceWhatsApp = "whatsapp"

	welcomeTemplate = "welcome"
)

type subscriptionService struct {
	repo        repository.Repository
	deliverer   *deliverer
	publisher   events.Publisher
	countryCode string
	logger      *zap.Logger
}

func NewSubscriptionService(
	cfg *config.Config,
	repo repository.Repository,
	gw gateway.Gateway,
	messageCache cache.MessageCache,
	publisher events.Publisher,
	logger *zap.Logger,
) SubscriptionService {
	return &subscriptionService{
		repo:        repo,
		deliverer:   newDeliverer(repo, gw, messageCache, logger),
		publisher:   publisher,
		countryCode: cfg.WhatsApp.DefaultCountryCode,
		logger:      logger,
	}
}

func (s *subscriptionService) OptIn(ctx context.Context, phoneNumber string, name *string) (*models.Contact, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		name = nil
	}

	contact, err := s.subscribe(ctx, phoneNumber, name, SourceAPI)
	if err != nil {
		return nil, err
	}

	variables := map[string]string{}
	if contact.Name.Valid {
		variables["name"] = contact.Name.String
	}

	if _, err := s.deliverer.sendTemplate(ctx, contact, models.MessageTypeWelcome, welcomeTemplate, variables); err != nil {
		s.logger.Error("Failed to log welcome message",
			zap.String("phoneNumber", contact.PhoneNumber),
			zap.Error(err))
	}

	return contact, nil
}

func (s *subscriptionService) Resubscribe(ctx context.Context, phoneNumber string) (*models.Contact, error) {
	return s.subscribe(ctx, phoneNumber, nil, SourceWhatsApp)
}

func (s *subscriptionService) subscribe(ctx context.Context, phoneNumber string, name *string, source string) (*models.Contact, error) {
	if strings.TrimSpace(phoneNumber) == "" {
		return nil, newValidationError("Phone number is required")
	}

	normalized, err := phone.Normalize(phoneNumber, s.countryCode)
	if err != nil {
		return nil, newValidationError(fmt.Sprintf("Invalid phone number %q", phoneNumber))
	}

	if _, err := s.repo.Contact().Upsert(ctx, normalized, name); err != nil {
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	contact, err := s.repo.Contact().OptIn(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to opt in contact: %w", err)
	}

	s.logger.Info("Contact opted in",
		zap.Int64("contactId", contact.ID),
		zap.String("phoneNumber", contact.PhoneNumber),
		zap.String("source", source))
	metrics.SubscriptionChanges.WithLabelValues("opt_in", source).Inc()
	s.publish(ctx, events.TypeContactOptedIn, contact, source)

	return contact, nil
}

func (s *subscriptionService) OptOut(ctx context.Context, phoneNumber string) (*models.Contact, error) {
	contact, err := s.repo.Contact().OptOut(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to opt out contact: %w", err)
	}

	s.logger.Info("Contact opted out",
		zap.Int64("contactId", contact.ID),
		zap.String("phoneNumber", contact.PhoneNumber))
	metrics.SubscriptionChanges.WithLabelValues("opt_out", SourceWhatsApp).Inc()
	s.publish(ctx, events.TypeContactOptedOut, contact, SourceWhatsApp)

	return contact, nil
}

func (s *subscriptionService) ListContacts(ctx context.Context, optedIn *bool) ([]*models.Contact, error) {
	contacts, err := s.repo.Contact().List(ctx, optedIn)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (s *subscriptionService) publish(ctx context.Context, eventType string, contact *models.Contact, source string) {
	event := events.NewEvent(eventType, events.ContactPayload{
		ContactID:   contact.ID,
		PhoneNumber: contact.PhoneNumber,
		Source:      source,
	})
	if err := s.publisher.Publish(ctx, contact.PhoneNumber, event); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}
