package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/gridpulse/internal/cache"
	"github.com/popeskul/gridpulse/internal/gateway"
	"github.com/popeskul/gridpulse/internal/metrics"
	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/repository"
)

// deliverer sends one message to a contact and appends it to the notification
// log when the provider accepts it.
type deliverer struct {
	repo    repository.Repository
	gateway gateway.Gateway
	cache   cache.MessageCache
	logger  *zap.Logger
}

func newDeliverer(repo repository.Repository, gw gateway.Gateway, messageCache cache.MessageCache, logger *zap.Logger) *deliverer {
	return &deliverer{
		repo:    repo,
		gateway: gw,
		cache:   messageCache,
		logger:  logger,
	}
}

func (d *deliverer) sendText(ctx context.Context, contact *models.Contact, messageType, body string) (DeliveryResult, error) {
	return d.deliver(ctx, contact, messageType, func() (*gateway.SendResult, error) {
		return d.gateway.Send(ctx, contact.PhoneNumber, body, "")
	})
}

func (d *deliverer) sendTemplate(ctx context.Context, contact *models.Contact, messageType, templateName string, variables map[string]string) (DeliveryResult, error) {
	return d.deliver(ctx, contact, messageType, func() (*gateway.SendResult, error) {
		return d.gateway.SendTemplate(ctx, contact.PhoneNumber, templateName, variables)
	})
}

// deliver returns an error only when an accepted message could not be logged.
// Gateway failures are reported in the result.
func (d *deliverer) deliver(
	ctx context.Context,
	contact *models.Contact,
	messageType string,
	send func() (*gateway.SendResult, error),
) (DeliveryResult, error) {
	result := DeliveryResult{PhoneNumber: contact.PhoneNumber}

	sent, err := send()
	if err != nil {
		d.logger.Error("Failed to send WhatsApp message",
			zap.String("phoneNumber", contact.PhoneNumber),
			zap.String("messageType", messageType),
			zap.Error(err))
		metrics.MessagesSent.WithLabelValues(messageType, metrics.OutcomeFailure).Inc()
		result.Error = err.Error()
		return result, nil
	}

	metrics.MessagesSent.WithLabelValues(messageType, metrics.OutcomeSuccess).Inc()
	result.Success = true
	result.MessageSid = sent.MessageID

	notificationID, err := d.repo.Notification().Create(ctx, models.NewNotification{
		ContactID:         contact.ID,
		ProviderMessageID: sent.MessageID,
		MessageType:       messageType,
		Content:           sent.Body,
		Status:            initialStatus(sent.Status),
	})
	if err != nil {
		return result, fmt.Errorf("failed to log notification %s: %w", sent.MessageID, err)
	}

	if err := d.cache.StoreSent(ctx, notificationID, sent.MessageID, time.Now()); err != nil {
		d.logger.Warn("Failed to cache sent message",
			zap.String("messageSid", sent.MessageID),
			zap.Error(err))
	}

	return result, nil
}

// initialStatus keeps the provider's status when it is one we track.
func initialStatus(providerStatus string) models.NotificationStatus {
	switch status := models.NotificationStatus(providerStatus); status {
	case models.NotificationStatusQueued,
		models.NotificationStatusSent,
		models.NotificationStatusDelivered,
		models.NotificationStatusRead:
		return status
	default:
		return models.NotificationStatusSent
	}
}
