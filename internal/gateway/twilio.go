package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/popeskul/gridpulse/internal/config"
)

const whatsappPrefix = "whatsapp:"

type messageAPI interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSender delivers messages over the Twilio WhatsApp channel.
type TwilioSender struct {
	api            messageAPI
	from           string
	statusCallback string
}

func NewTwilioSender(cfg *config.WhatsAppConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return newTwilioSender(client.Api, cfg.FromNumber, cfg.StatusCallbackURL)
}

func newTwilioSender(api messageAPI, from, statusCallback string) *TwilioSender {
	return &TwilioSender{
		api:            api,
		from:           whatsappAddress(from),
		statusCallback: statusCallback,
	}
}

func (s *TwilioSender) Deliver(ctx context.Context, to, body, mediaURL string) (*SendResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(whatsappAddress(to))
	params.SetBody(body)
	if mediaURL != "" {
		params.SetMediaUrl([]string{mediaURL})
	}
	if s.statusCallback != "" {
		params.SetStatusCallback(s.statusCallback)
	}

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	result := &SendResult{Body: body}
	if msg.Sid != nil {
		result.MessageID = *msg.Sid
	}
	if msg.Status != nil {
		result.Status = *msg.Status
	}
	if result.MessageID == "" {
		return nil, fmt.Errorf("%w: provider returned no message sid", ErrSendFailed)
	}

	return result, nil
}

func whatsappAddress(number string) string {
	if strings.HasPrefix(number, whatsappPrefix) {
		return number
	}
	return whatsappPrefix + number
}
