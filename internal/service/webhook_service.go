package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/gridpulse/internal/cache"
	"github.com/popeskul/gridpulse/internal/events"
	"github.com/popeskul/gridpulse/internal/gateway"
	"github.com/popeskul/gridpulse/internal/metrics"
	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/phone"
	"github.com/popeskul/gridpulse/internal/repository"
)

const (
	OptOutConfirmation = "You have been unsubscribed from WhatsApp notifications. Reply START to opt back in."
	OptInConfirmation  = "Welcome back! You are now subscribed to WhatsApp notifications. Reply STOP to opt out anytime."
)

// maxStatusLength matches the notifications.status column.
const maxStatusLength = 64

type inboundCommand int

const (
	commandNone inboundCommand = iota
	commandStop
	commandStart
)

func parseCommand(body string) inboundCommand {
	switch strings.ToLower(strings.TrimSpace(body)) {
	case "stop", "unsubscribe":
		return commandStop
	case "start", "subscribe":
		return commandStart
	default:
		return commandNone
	}
}

type webhookService struct {
	repo          repository.Repository
	subscriptions SubscriptionService
	deliverer     *deliverer
	cache         cache.MessageCache
	publisher     events.Publisher
	logger        *zap.Logger
}

func NewWebhookService(
	repo repository.Repository,
	subscriptions SubscriptionService,
	gw gateway.Gateway,
	messageCache cache.MessageCache,
	publisher events.Publisher,
	logger *zap.Logger,
) WebhookService {
	return &webhookService{
		repo:          repo,
		subscriptions: subscriptions,
		deliverer:     newDeliverer(repo, gw, messageCache, logger),
		cache:         messageCache,
		publisher:     publisher,
		logger:        logger,
	}
}

// HandleCallback applies a provider callback. A payload can carry a status
// update, an inbound message, both, or neither; missing fields skip the
// matching step.
func (s *webhookService) HandleCallback(ctx context.Context, payload WebhookPayload) error {
	if payload.MessageSid != "" && payload.MessageStatus != "" {
		if err := s.updateStatus(ctx, payload); err != nil {
			return err
		}
	}

	if payload.From != "" && payload.Body != "" {
		if err := s.handleInbound(ctx, payload); err != nil {
			return err
		}
	}

	return nil
}

func (s *webhookService) updateStatus(ctx context.Context, payload WebhookPayload) error {
	status := models.NotificationStatus(strings.ToLower(payload.MessageStatus))
	if len(status) > maxStatusLength {
		s.logger.Warn("Ignoring oversized status callback",
			zap.String("messageSid", payload.MessageSid),
			zap.Int("length", len(status)))
		return nil
	}

	matched, err := s.repo.Notification().UpdateStatus(ctx, models.StatusUpdate{
		ProviderMessageID: payload.MessageSid,
		Status:            status,
		ErrorMessage:      payload.ErrorMessage,
	})
	if err != nil {
		return fmt.Errorf("failed to update notification status: %w", err)
	}

	metrics.StatusCallbacks.WithLabelValues(string(status), strconv.FormatBool(matched)).Inc()

	if !matched {
		s.logger.Debug("Status callback for unknown message",
			zap.String("messageSid", payload.MessageSid),
			zap.String("status", string(status)))
		return nil
	}

	s.logger.Info("Notification status updated",
		zap.String("messageSid", payload.MessageSid),
		zap.String("status", string(status)))

	if status == models.NotificationStatusDelivered {
		s.observeDeliveryLatency(ctx, payload.MessageSid)
	}

	event := events.NewEvent(events.TypeNotificationStatusUpdated, events.NotificationStatusPayload{
		ProviderMessageID: payload.MessageSid,
		Status:            string(status),
		ErrorMessage:      payload.ErrorMessage,
	})
	if err := s.publisher.Publish(ctx, payload.MessageSid, event); err != nil {
		s.logger.Warn("Failed to publish event", zap.String("type", event.Type), zap.Error(err))
	}

	return nil
}

func (s *webhookService) observeDeliveryLatency(ctx context.Context, messageSid string) {
	sent, found, err := s.cache.LookupSent(ctx, messageSid)
	if err != nil {
		s.logger.Debug("Failed to look up sent message", zap.String("messageSid", messageSid), zap.Error(err))
		return
	}
	if !found {
		return
	}

	metrics.DeliveryLatency.Observe(time.Since(sent.SentAt).Seconds())
}

func (s *webhookService) handleInbound(ctx context.Context, payload WebhookPayload) error {
	command := parseCommand(payload.Body)
	if command == commandNone {
		return nil
	}

	claimed := false
	if payload.MessageSid != "" {
		first, err := s.cache.MarkInbound(ctx, payload.MessageSid)
		if err != nil {
			s.logger.Warn("Failed to check inbound message", zap.String("messageSid", payload.MessageSid), zap.Error(err))
		} else if !first {
			s.logger.Info("Skipping redelivered inbound message", zap.String("messageSid", payload.MessageSid))
			return nil
		}
		claimed = err == nil
	}

	applied, err := s.applyCommand(ctx, command, payload)
	if err != nil && claimed && !applied {
		// The provider retries on a non-2xx answer; the retry must not look
		// like a duplicate.
		if releaseErr := s.cache.ReleaseInbound(context.WithoutCancel(ctx), payload.MessageSid); releaseErr != nil {
			s.logger.Warn("Failed to release inbound message",
				zap.String("messageSid", payload.MessageSid), zap.Error(releaseErr))
		}
	}

	return err
}

// applyCommand reports whether the subscription change was stored, even when
// the confirmation afterwards failed.
func (s *webhookService) applyCommand(ctx context.Context, command inboundCommand, payload WebhookPayload) (bool, error) {
	from := phone.WithoutChannel(payload.From)

	switch command {
	case commandStop:
		contact, err := s.subscriptions.OptOut(ctx, from)
		if errors.Is(err, ErrContactNotFound) {
			s.logger.Info("Opt-out from unknown number", zap.String("phoneNumber", from))
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, s.confirm(ctx, contact, models.MessageTypeOptOutConfirmation, OptOutConfirmation)

	case commandStart:
		contact, err := s.subscriptions.Resubscribe(ctx, from)
		if err != nil {
			var validationErr *ValidationError
			if errors.As(err, &validationErr) {
				s.logger.Warn("Ignoring opt-in from invalid number", zap.String("from", payload.From))
				return false, nil
			}
			return false, err
		}
		return true, s.confirm(ctx, contact, models.MessageTypeOptInConfirmation, OptInConfirmation)
	}

	return false, nil
}

func (s *webhookService) confirm(ctx context.Context, contact *models.Contact, messageType, body string) error {
	_, err := s.deliverer.sendText(ctx, contact, messageType, body)
	return err
}
