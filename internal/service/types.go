package service

import "github.com/popeskul/gridpulse/internal/api"

type HealthStatus struct {
	Status               api.HealthResponseStatus              `json:"status"`
	DatabaseStatus       api.HealthResponseDatabaseStatus      `json:"database_status"`
	RedisStatus          api.HealthResponseRedisStatus         `json:"redis_status"`
	CircuitBreakerStatus string                                `json:"circuit_breaker_status,omitempty"`
	CircuitBreakerState  api.HealthResponseCircuitBreakerState `json:"circuit_breaker_state,omitempty"`
}

type SendRequest struct {
	PhoneNumber  string
	Message      string
	MessageType  string
	TemplateName string
	Variables    map[string]string
}

// DeliveryResult is the outcome of one send attempt.
type DeliveryResult struct {
	PhoneNumber string
	Success     bool
	MessageSid  string
	Error       string
}

type SendSummary struct {
	Results     []DeliveryResult
	TotalSent   int
	TotalFailed int
}

func (s *SendSummary) add(result DeliveryResult) {
	s.Results = append(s.Results, result)
	if result.Success {
		s.TotalSent++
	} else {
		s.TotalFailed++
	}
}

// WebhookPayload carries the form fields of a provider callback.
type WebhookPayload struct {
	MessageSid    string
	MessageStatus string
	From          string
	Body          string
	ErrorMessage  string
}

type ResidentInput struct {
	Name      string
	WhatsApp  string
	Estate    string
	Latitude  *float64
	Longitude *float64
}

type IssueInput struct {
	ResidentID  *int64
	Type        string
	Description string
	Latitude    *float64
	Longitude   *float64
	Location    string
	PhotoURL    string
}

type PostInput struct {
	ResidentID *int64
	Estate     string
	Content    string
}
