// Package handler provides HTTP request handlers for the application.
package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/popeskul/gridpulse/internal/api"
	"github.com/popeskul/gridpulse/internal/gateway"
	"github.com/popeskul/gridpulse/internal/middleware"
	"github.com/popeskul/gridpulse/internal/models"
	"github.com/popeskul/gridpulse/internal/service"
)

const (
	errorMessageFailedToOptIn   = "Failed to opt in"
	errorMessageFailedToSend    = "Failed to send notification"
	errorMessageFailedToProcess = "Failed to process webhook"
)

const optInMessage = "Successfully opted in to WhatsApp notifications"

// WebhookVerifier checks provider signatures on incoming callbacks. URL must
// be the public webhook address the provider signs.
type WebhookVerifier struct {
	Validator gateway.SignatureValidator
	URL       string
}

type Handler struct {
	service  *service.Service
	verifier *WebhookVerifier
	logger   *zap.Logger
}

// NewHandler creates a new handler instance that implements api.ServerInterface.
// A nil verifier accepts unsigned webhook calls.
func NewHandler(service *service.Service, verifier *WebhookVerifier, logger *zap.Logger) api.ServerInterface {
	return &Handler{
		service:  service,
		verifier: verifier,
		logger:   logger,
	}
}

// OptIn implements api.ServerInterface.
func (h *Handler) OptIn(w http.ResponseWriter, r *http.Request) {
	var req api.OptInRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, middleware.ErrorCodeInvalidRequest, middleware.ErrorMessageInvalidJSON)
		return
	}

	contact, err := h.service.Subscription.OptIn(r.Context(), deref(req.PhoneNumber), req.Name)
	if err != nil {
		h.handleServiceError(w, r, err, errorMessageFailedToOptIn)
		return
	}

	render.JSON(w, r, api.OptInResponse{
		Success: true,
		Message: optInMessage,
		User:    toAPIContact(contact),
	})
}

// SendNotification implements api.ServerInterface.
func (h *Handler) SendNotification(w http.ResponseWriter, r *http.Request) {
	var req api.SendRequest
	// Numbers are kept as literals so template variables render as sent.
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, middleware.ErrorCodeInvalidRequest, middleware.ErrorMessageInvalidJSON)
		return
	}

	sendReq := service.SendRequest{
		PhoneNumber: deref(req.PhoneNumber),
		Message:     deref(req.Message),
		MessageType: deref(req.MessageType),
	}
	if req.TemplateName != nil {
		sendReq.TemplateName = string(*req.TemplateName)
	}
	if req.Variables != nil {
		sendReq.Variables = make(map[string]string, len(*req.Variables))
		for k, v := range *req.Variables {
			sendReq.Variables[k] = templateValue(v)
		}
	}

	// A broadcast is paced and may outlast the server write timeout; the
	// caller waits for the full batch, so this response has no deadline.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.logger.Warn("Failed to clear write deadline",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
	}

	// A broadcast runs to completion even if the client goes away.
	summary, err := h.service.Notification.Send(context.WithoutCancel(r.Context()), sendReq)
	if err != nil {
		h.handleServiceError(w, r, err, errorMessageFailedToSend)
		return
	}

	results := make([]api.DeliveryResult, len(summary.Results))
	for i, result := range summary.Results {
		results[i] = api.DeliveryResult{
			PhoneNumber: result.PhoneNumber,
			Success:     result.Success,
			MessageSid:  optional(result.MessageSid),
			Error:       optional(result.Error),
		}
	}

	render.JSON(w, r, api.SendResponse{
		Success:     true,
		Results:     results,
		TotalSent:   summary.TotalSent,
		TotalFailed: summary.TotalFailed,
	})
}

// WhatsappWebhook implements api.ServerInterface.
func (h *Handler) WhatsappWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.sendError(w, r, http.StatusBadRequest, middleware.ErrorCodeInvalidRequest, middleware.ErrorMessageInvalidForm)
		return
	}

	if h.verifier != nil {
		params := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			params[key] = r.PostForm.Get(key)
		}
		if !h.verifier.Validator.Validate(h.verifier.URL, params, r.Header.Get(gateway.SignatureHeader)) {
			h.logger.Warn("Rejected webhook with invalid signature",
				zap.String("request_id", middleware.GetRequestID(r.Context())))
			h.sendError(w, r, http.StatusForbidden, middleware.ErrorCodeInvalidSignature, middleware.ErrorMessageInvalidSignature)
			return
		}
	}

	payload := service.WebhookPayload{
		MessageSid:    r.PostForm.Get("MessageSid"),
		MessageStatus: r.PostForm.Get("MessageStatus"),
		From:          r.PostForm.Get("From"),
		Body:          r.PostForm.Get("Body"),
		ErrorMessage:  r.PostForm.Get("ErrorMessage"),
	}

	if err := h.service.Webhook.HandleCallback(r.Context(), payload); err != nil {
		h.handleServiceError(w, r, err, errorMessageFailedToProcess)
		return
	}

	render.JSON(w, r, api.WebhookResponse{Success: true})
}

// ListContacts implements api.ServerInterface.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request, params api.ListContactsParams) {
	contacts, err := h.service.Subscription.ListContacts(r.Context(), params.OptedIn)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve contacts")
		return
	}

	apiContacts := make([]api.Contact, len(contacts))
	for i, contact := range contacts {
		apiContacts[i] = toAPIContact(contact)
	}

	render.JSON(w, r, api.ContactListResponse{
		Contacts: apiContacts,
		Count:    len(apiContacts),
	})
}

// ListNotifications implements api.ServerInterface.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request, params api.ListNotificationsParams) {
	page := 1
	limit := service.DefaultPageSize

	if params.Page != nil && *params.Page >= 1 {
		page = *params.Page
	}

	if params.Limit != nil && *params.Limit >= 1 && *params.Limit <= service.MaxPageSize {
		limit = *params.Limit
	}

	result, err := h.service.Notification.ListNotifications(r.Context(), page, limit)
	if err != nil {
		h.handleServiceError(w, r, err, "Failed to retrieve notifications")
		return
	}

	render.JSON(w, r, result)
}

// HealthCheck implements api.ServerInterface.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth()

	response := api.HealthResponse{
		Status:    health.Status,
		Timestamp: time.Now(),
	}

	if health.DatabaseStatus != "" {
		status := health.DatabaseStatus
		response.DatabaseStatus = &status
	}

	if health.RedisStatus != "" {
		status := health.RedisStatus
		response.RedisStatus = &status
	}

	if health.CircuitBreakerStatus != "" {
		response.CircuitBreakerStatus = &health.CircuitBreakerStatus
	}

	if health.CircuitBreakerState != "" {
		state := health.CircuitBreakerState
		response.CircuitBreakerState = &state
	}

	// Degraded still answers 200 so the service stays in rotation
	if health.Status == api.Unhealthy {
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, response)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.sendError(w, r, http.StatusBadRequest, middleware.ErrorCodeValidation, validationErr.Message)
	case errors.Is(err, service.ErrContactNotFound):
		h.sendError(w, r, http.StatusNotFound, middleware.ErrorCodeContactNotFound, middleware.ErrorMessageContactNotFound)
	case errors.Is(err, service.ErrContactNotOptedIn):
		h.sendError(w, r, http.StatusForbidden, middleware.ErrorCodeContactNotOptedIn, middleware.ErrorMessageNotOptedIn)
	default:
		h.logger.Error(internalMessage,
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, internalMessage)
	}
}

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	middleware.WriteError(w, r, statusCode, errorCode, message)
}

// templateValue renders a decoded JSON value as template text. Numbers keep
// their literal form, so 1234567 stays "1234567".
func templateValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(encoded)
	}
}

func toAPIContact(c *models.Contact) api.Contact {
	return api.Contact{
		Id:          c.ID,
		PhoneNumber: c.PhoneNumber,
		Name:        nullString(c.Name),
		OptedIn:     c.OptedIn,
		OptedInAt:   nullTime(c.OptedInAt),
		OptedOutAt:  nullTime(c.OptedOutAt),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
