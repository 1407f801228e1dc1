package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Config holds middleware configuration.
type Config struct {
	Logger *zap.Logger
	// Paths logged at debug level on success, such as health checks.
	QuietPaths []string

	CORS *CORSConfig

	RateLimit      rate.Limit
	RateLimitBurst int
	// Paths that bypass the per-client rate limit, such as provider callbacks.
	RateLimitExemptPaths []string

	RequestTimeout time.Duration
	// Paths served without the request timeout, such as long broadcasts.
	TimeoutExemptPaths []string
}

// Chain is the outer middleware stack shared by every route.
type Chain struct {
	config      *Config
	rateLimiter *RateLimiter
}

// NewChain builds the stack. Stop must be called on shutdown to end the
// rate limiter's background cleanup.
func NewChain(config *Config) *Chain {
	return &Chain{
		config:      config,
		rateLimiter: NewRateLimiter(config.RateLimit, config.RateLimitBurst, config.RateLimitExemptPaths...),
	}
}

// Then wraps handler. Middleware run outer to inner: logger, request id,
// recovery, CORS, rate limit, timeout.
func (c *Chain) Then(handler http.Handler) http.Handler {
	h := handler

	h = Timeout(c.config.RequestTimeout, c.config.TimeoutExemptPaths...)(h)

	h = c.rateLimiter.Middleware()(h)

	if c.config.CORS != nil {
		h = CORS(c.config.CORS)(h)
	}

	h = Recovery(c.config.Logger)(h)

	h = RequestID(h)

	h = Logger(c.config.Logger, c.config.QuietPaths...)(h)

	return h
}

func (c *Chain) Stop() {
	c.rateLimiter.Stop()
}
