package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/popeskul/gridpulse/internal/cache"
	"github.com/popeskul/gridpulse/internal/config"
	"github.com/popeskul/gridpulse/internal/gateway"
	"github.com/popeskul/gridpulse/internal/metrics"
	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/repository"
)

type broadcastService struct {
	repo      repository.Repository
	deliverer *deliverer
	delay     time.Duration
	logger    *zap.Logger
}

func NewBroadcastService(
	cfg *config.Config,
	repo repository.Repository,
	gw gateway.Gateway,
	messageCache cache.MessageCache,
	logger *zap.Logger,
) BroadcastService {
	return &broadcastService{
		repo:      repo,
		deliverer: newDeliverer(repo, gw, messageCache, logger),
		delay:     cfg.Broadcast.Delay(),
		logger:    logger,
	}
}

// Broadcast sends the template to every opted-in contact, one at a time.
// A failed send is recorded and the loop moves on to the next contact.
func (s *broadcastService) Broadcast(ctx context.Context, templateName string, variables map[string]string, messageType string) (*SendSummary, error) {
	if !gateway.HasTemplate(templateName) {
		return nil, newValidationError(fmt.Sprintf("Unknown template name %q", templateName))
	}
	if messageType == "" {
		messageType = models.MessageTypeManual
	}

	contacts, err := s.repo.Contact().ListOptedIn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get opted-in contacts: %w", err)
	}

	start := time.Now()
	defer func() {
		metrics.BroadcastDuration.Observe(time.Since(start).Seconds())
	}()

	s.logger.Info("Starting broadcast",
		zap.String("template", templateName),
		zap.Int("recipients", len(contacts)))

	limiter := s.newLimiter()
	summary := &SendSummary{Results: make([]DeliveryResult, 0, len(contacts))}

	for i, contact := range contacts {
		if i > 0 {
			if err := limiter.Wait(ctx); err != nil {
				return summary, fmt.Errorf("broadcast interrupted after %d of %d contacts: %w", i, len(contacts), err)
			}
		}

		result, err := s.deliverer.sendTemplate(ctx, contact, messageType, templateName, variables)
		if err != nil {
			s.logger.Error("Failed to log broadcast notification",
				zap.String("phoneNumber", contact.PhoneNumber),
				zap.Error(err))
		}
		summary.add(result)
	}

	s.logger.Info("Broadcast finished",
		zap.String("template", templateName),
		zap.Int("sent", summary.TotalSent),
		zap.Int("failed", summary.TotalFailed))

	return summary, nil
}

// newLimiter spaces consecutive sends by the configured delay. The first
// token is consumed up front so the first contact is sent immediately and
// every later Wait blocks for a full interval.
func (s *broadcastService) newLimiter() *rate.Limiter {
	if s.delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	limiter := rate.NewLimiter(rate.Every(s.delay), 1)
	limiter.Allow()
	return limiter
}
