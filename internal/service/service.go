package service

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/popeskul/gridpulse/internal/cache"
	"github.com/popeskul/gridpulse/internal/config"
	"github.com/popeskul/gridpulse/internal/events"
	"github.com/popeskul/gridpulse/internal/gateway"
	"github.com/popeskul/gridpulse/internal/repository"
)

type Service struct {
	Subscription SubscriptionService
	Notification NotificationService
	Broadcast    BroadcastService
	Webhook      WebhookService
	Community    CommunityService
	Health       HealthService
}

func NewService(
	cfg *config.Config,
	repo repository.Repository,
	redisClient *redis.Client,
	gw gateway.Gateway,
	publisher events.Publisher,
	logger *zap.Logger,
) *Service {
	messageCache := cache.NewRedisCache(redisClient, cfg.Redis.TTL())

	subscriptionService := NewSubscriptionService(cfg, repo, gw, messageCache, publisher, logger)
	broadcastService := NewBroadcastService(cfg, repo, gw, messageCache, logger)
	notificationService := NewNotificationService(cfg, repo, gw, messageCache, broadcastService, logger)
	webhookService := NewWebhookService(repo, subscriptionService, gw, messageCache, publisher, logger)
	communityService := NewCommunityService(cfg, repo, publisher, logger)
	healthService := NewHealthService(repo, redisClient, gw)

	return &Service{
		Subscription: subscriptionService,
		Notification: notificationService,
		Broadcast:    broadcastService,
		Webhook:      webhookService,
		Community:    communityService,
		Health:       healthService,
	}
}
