package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/gridpulse/internal/api"
	"github.com/popeskul/gridpulse/internal/cache"
	"github.com/popeskul/gridpulse/internal/config"
	"github.com/popeskul/gridpulse/internal/gateway"
	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/phone"
	"github.com/popeskul/gridpulse/internal/repository"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type notificationService struct {
	repo        repository.Repository
	deliverer   *deliverer
	broadcast   BroadcastService
	countryCode string
	logger      *zap.Logger
}

func NewNotificationService(
	cfg *config.Config,
	repo repository.Repository,
	gw gateway.Gateway,
	messageCache cache.MessageCache,
	broadcast BroadcastService,
	logger *zap.Logger,
) NotificationService {
	return &notificationService{
		repo:        repo,
		deliverer:   newDeliverer(repo, gw, messageCache, logger),
		broadcast:   broadcast,
		countryCode: cfg.WhatsApp.DefaultCountryCode,
		logger:      logger,
	}
}

func (s *notificationService) Send(ctx context.Context, req SendRequest) (*SendSummary, error) {
	if req.PhoneNumber == "" && req.TemplateName == "" {
		return nil, newValidationError("Phone number is required for individual messages")
	}
	if req.Message == "" && req.TemplateName == "" {
		return nil, newValidationError("Message content or template name is required")
	}
	if req.TemplateName != "" && !gateway.HasTemplate(req.TemplateName) {
		return nil, newValidationError(fmt.Sprintf("Unknown template name %q", req.TemplateName))
	}
	if req.MessageType == "" {
		req.MessageType = models.MessageTypeManual
	}

	if req.PhoneNumber == "" {
		return s.broadcast.Broadcast(ctx, req.TemplateName, req.Variables, req.MessageType)
	}

	contact, err := s.findRecipient(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	var result DeliveryResult
	if req.TemplateName != "" {
		result, err = s.deliverer.sendTemplate(ctx, contact, req.MessageType, req.TemplateName, req.Variables)
	} else {
		result, err = s.deliverer.sendText(ctx, contact, req.MessageType, req.Message)
	}
	if err != nil {
		return nil, err
	}

	summary := &SendSummary{}
	summary.add(result)
	return summary, nil
}

func (s *notificationService) findRecipient(ctx context.Context, phoneNumber string) (*models.Contact, error) {
	normalized, err := phone.Normalize(phoneNumber, s.countryCode)
	if err != nil {
		return nil, newValidationError(fmt.Sprintf("Invalid phone number %q", phoneNumber))
	}

	contact, err := s.repo.Contact().GetByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	if !contact.OptedIn {
		return nil, ErrContactNotOptedIn
	}

	return contact, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, page, limit int) (*api.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	offset := (page - 1) * limit

	notifications, err := s.repo.Notification().List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	total, err := s.repo.Notification().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count notifications: %w", err)
	}

	apiNotifications := make([]api.Notification, len(notifications))
	for i, n := range notifications {
		apiNotifications[i] = toAPINotification(n)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &api.NotificationListResponse{
		Notifications: apiNotifications,
		Pagination: api.Pagination{
			CurrentPage:  page,
			ItemsPerPage: limit,
			TotalItems:   int(total),
			TotalPages:   totalPages,
		},
	}, nil
}

func toAPINotification(n *models.NotificationWithContact) api.Notification {
	notification := api.Notification{
		Id:          n.ID,
		ContactId:   n.ContactID,
		PhoneNumber: n.PhoneNumber,
		MessageType: n.MessageType,
		Content:     n.Content,
		Status:      n.Status,
		SentAt:      n.SentAt,
	}

	if n.ContactName.Valid {
		notification.ContactName = &n.ContactName.String
	}
	if n.ProviderMessageID.Valid {
		notification.MessageSid = &n.ProviderMessageID.String
	}
	if n.ErrorMessage.Valid {
		notification.ErrorMessage = &n.ErrorMessage.String
	}
	notification.DeliveredAt = nullTime(n.DeliveredAt.Time, n.DeliveredAt.Valid)
	notification.ReadAt = nullTime(n.ReadAt.Time, n.ReadAt.Valid)
	notification.FailedAt = nullTime(n.FailedAt.Time, n.FailedAt.Valid)

	return notification
}

func nullTime(t time.Time, valid bool) *time.Time {
	if !valid {
		return nil
	}
	return &t
}
