package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/popeskul/gridpulse/internal/api"
	"github.com/popeskul/gridpulse/internal/gateway"
	"github.com/popeskul/gridpulse/internal/repository"
)

type healthService struct {
	repo        repository.Repository
	redisClient *redis.Client
	gateway     gateway.Gateway
}

func NewHealthService(
	repo repository.Repository,
	redisClient *redis.Client,
	gw gateway.Gateway,
) HealthService {
	return &healthService{
		repo:        repo,
		redisClient: redisClient,
		gateway:     gw,
	}
}

func (s *healthService) GetHealth() *HealthStatus {
	status := &HealthStatus{
		Status: api.Healthy,
	}

	status.DatabaseStatus = s.checkDatabaseHealth()

	status.RedisStatus = s.checkRedisHealth()

	state, requests, failures := s.gateway.CircuitBreakerStatus()
	status.CircuitBreakerState = state
	if requests > 0 {
		failureRate := float64(failures) / float64(requests) * 100
		status.CircuitBreakerStatus = fmt.Sprintf("Requests: %d, Failures: %d (%.1f%%)", requests, failures, failureRate)
	} else {
		status.CircuitBreakerStatus = "No requests yet"
	}

	// Lost storage outranks an open breaker
	switch {
	case status.DatabaseStatus != api.HealthResponseDatabaseStatusConnected ||
		status.RedisStatus != api.HealthResponseRedisStatusConnected:
		status.Status = api.Unhealthy
	case state == api.Open:
		status.Status = api.Degraded
	}

	return status
}

func (s *healthService) checkDatabaseHealth() api.HealthResponseDatabaseStatus {
	err := s.repo.Ping()
	if err != nil {
		return api.HealthResponseDatabaseStatusDisconnected
	}
	return api.HealthResponseDatabaseStatusConnected
}

func (s *healthService) checkRedisHealth() api.HealthResponseRedisStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return api.HealthResponseRedisStatusDisconnected
	}

	return api.HealthResponseRedisStatusConnected
}
