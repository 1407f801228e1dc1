// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderTwilio = "twilio"
	ProviderLog    = "log"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	WhatsApp   WhatsAppConfig   `mapstructure:"whatsapp"`
	Broadcast  BroadcastConfig  `mapstructure:"broadcast"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Middleware MiddlewareConfig `mapstructure:"middleware"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

// WhatsAppConfig describes the messaging provider account and the webhook it calls back.
type WhatsAppConfig struct {
	Provider           string               `mapstructure:"provider"`
	AccountSID         string               `mapstructure:"account_sid"`
	AuthToken          string               `mapstructure:"auth_token"`
	FromNumber         string               `mapstructure:"from_number"`
	DefaultCountryCode string               `mapstructure:"default_country_code"`
	StatusCallbackURL  string               `mapstructure:"status_callback_url"`
	WebhookURL         string               `mapstructure:"webhook_url"`
	ValidateSignature  bool                 `mapstructure:"validate_signature"`
	CircuitBreaker     CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"`
	Timeout          int     `mapstructure:"timeout"`
	FailureRatio     float64 `mapstructure:"failure_ratio"`
	ConsecutiveFails uint32  `mapstructure:"consecutive_fails"`
}

type BroadcastConfig struct {
	DelayMS int `mapstructure:"delay_ms"`
}

// Delay is the pause between two consecutive broadcast sends.
func (b BroadcastConfig) Delay() time.Duration {
	return time.Duration(b.DelayMS) * time.Millisecond
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Enabled reports whether domain events should be published.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

type MiddlewareConfig struct {
	RateLimit      int      `mapstructure:"rate_limit"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
	EnableCORS     bool     `mapstructure:"enable_cors"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RequestTimeout int      `mapstructure:"request_timeout"`
}

// LoadConfig reads the YAML file at configPath. Values from an optional .env file and
// from the process environment override it (whatsapp.auth_token <- WHATSAPP_AUTH_TOKEN).
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "gridpulse")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.migrations_path", "./migrations")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_hours", 24)
	v.SetDefault("whatsapp.provider", ProviderLog)
	v.SetDefault("whatsapp.account_sid", "")
	v.SetDefault("whatsapp.auth_token", "")
	v.SetDefault("whatsapp.from_number", "")
	v.SetDefault("whatsapp.default_country_code", "1")
	v.SetDefault("whatsapp.status_callback_url", "")
	v.SetDefault("whatsapp.webhook_url", "")
	v.SetDefault("whatsapp.validate_signature", false)
	v.SetDefault("whatsapp.circuit_breaker.max_requests", 3)
	v.SetDefault("whatsapp.circuit_breaker.interval", 60)
	v.SetDefault("whatsapp.circuit_breaker.timeout", 60)
	v.SetDefault("whatsapp.circuit_breaker.failure_ratio", 0.6)
	v.SetDefault("whatsapp.circuit_breaker.consecutive_fails", 5)
	v.SetDefault("broadcast.delay_ms", 1000)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "gridpulse.events")
	v.SetDefault("middleware.rate_limit", 100)
	v.SetDefault("middleware.rate_limit_burst", 1000)
	v.SetDefault("middleware.enable_cors", true)
	v.SetDefault("middleware.allowed_origins", []string{"*"})
	v.SetDefault("middleware.request_timeout", 30)
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.WhatsApp.Provider {
	case ProviderLog:
	case ProviderTwilio:
		if c.WhatsApp.AccountSID == "" || c.WhatsApp.AuthToken == "" || c.WhatsApp.FromNumber == "" {
			return fmt.Errorf("twilio provider requires whatsapp.account_sid, whatsapp.auth_token and whatsapp.from_number")
		}
	default:
		return fmt.Errorf("unknown whatsapp provider %q", c.WhatsApp.Provider)
	}

	if c.WhatsApp.ValidateSignature && c.WhatsApp.WebhookURL == "" {
		return fmt.Errorf("whatsapp.validate_signature requires whatsapp.webhook_url")
	}

	if c.Broadcast.DelayMS < 0 {
		return fmt.Errorf("broadcast.delay_ms must be >= 0")
	}

	return nil
}

// GetDSN returns PostgreSQL connection string.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// GetURL returns the PostgreSQL connection URL used by the migration runner.
func (d *DatabaseConfig) GetURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// RedisAddr returns host:port for the Redis client.
func (r *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// TTL is how long cached message ids and inbound de-dup markers live.
func (r *RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLHours) * time.Hour
}
