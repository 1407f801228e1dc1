// Package gateway submits outbound WhatsApp messages to the messaging provider.
package gateway

//go:generate mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/popeskul/gridpulse/internal/api"
	"github.com/popeskul/gridpulse/internal/config"
)

var (
	// ErrSendFailed wraps every provider-side rejection or transport error.
	ErrSendFailed = errors.New("message send failed")
	// ErrUnknownTemplate is returned for a template name outside the fixed set.
	ErrUnknownTemplate = errors.New("unknown message template")
)

// SendResult is what the provider reports for an accepted message.
type SendResult struct {
	MessageID string
	Status    string
	Body      string
}

// Gateway is the outbound messaging adapter. Each call makes a single
// attempt; retrying is left to the caller.
type Gateway interface {
	Send(ctx context.Context, to, body, mediaURL string) (*SendResult, error)
	SendTemplate(ctx context.Context, to, templateName string, variables map[string]string) (*SendResult, error)
	CircuitBreakerStatus() (state api.HealthResponseCircuitBreakerState, requests uint32, failures uint32)
}

// Sender delivers one message through a concrete provider.
type Sender interface {
	Deliver(ctx context.Context, to, body, mediaURL string) (*SendResult, error)
}

type gateway struct {
	sender         Sender
	circuitBreaker *CircuitBreaker
	logger         *zap.Logger
}

func New(sender Sender, circuitBreaker *CircuitBreaker, logger *zap.Logger) Gateway {
	return &gateway{
		sender:         sender,
		circuitBreaker: circuitBreaker,
		logger:         logger,
	}
}

// NewFromConfig builds the gateway for the configured provider.
func NewFromConfig(cfg *config.WhatsAppConfig, logger *zap.Logger) (Gateway, error) {
	var sender Sender
	switch cfg.Provider {
	case config.ProviderTwilio:
		sender = NewTwilioSender(cfg)
	case config.ProviderLog, "":
		sender = NewLogSender(logger)
	default:
		return nil, fmt.Errorf("unknown whatsapp provider %q", cfg.Provider)
	}

	return New(sender, NewCircuitBreaker(&cfg.CircuitBreaker, logger), logger), nil
}

// Send submits body to the recipient through the circuit breaker.
func (g *gateway) Send(ctx context.Context, to, body, mediaURL string) (*SendResult, error) {
	var result *SendResult
	err := g.circuitBreaker.Execute(ctx, func() error {
		var err error
		result, err = g.sender.Deliver(ctx, to, body, mediaURL)
		return err
	})
	if err != nil {
		g.logger.Warn("WhatsApp send failed",
			zap.String("to", to),
			zap.Error(err),
			zap.String("circuitBreakerState", string(g.circuitBreaker.GetState())))
		if errors.Is(err, ErrSendFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	if result.Body == "" {
		result.Body = body
	}

	return result, nil
}

// SendTemplate renders a named template and sends it.
func (g *gateway) SendTemplate(ctx context.Context, to, templateName string, variables map[string]string) (*SendResult, error) {
	body, err := RenderTemplate(templateName, variables)
	if err != nil {
		return nil, err
	}

	return g.Send(ctx, to, body, "")
}

func (g *gateway) CircuitBreakerStatus() (api.HealthResponseCircuitBreakerState, uint32, uint32) {
	requests, failures := g.circuitBreaker.GetCounts()
	return g.circuitBreaker.GetState(), requests, failures
}
