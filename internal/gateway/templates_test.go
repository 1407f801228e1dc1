package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popeskul/gridpulse/internal/gateway"
)

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		variables map[string]string
		want      string
	}{
		{
			name:     "welcome",
			template: gateway.TemplateWelcome,
			want:     "Welcome to our service! Reply STOP to opt out anytime.",
		},
		{
			name:      "order confirmation",
			template:  gateway.TemplateOrderConfirmation,
			variables: map[string]string{"order_id": "A12", "amount": "30.50"},
			want:      "Your order #A12 has been confirmed. Total: $30.50",
		},
		{
			name:      "appointment reminder",
			template:  gateway.TemplateAppointmentReminder,
			variables: map[string]string{"date": "Monday", "time": "10:00"},
			want:      "Reminder: You have an appointment on Monday at 10:00. Reply STOP to opt out.",
		},
		{
			name:      "promotional",
			template:  gateway.TemplatePromotional,
			variables: map[string]string{"offer_text": "Free delivery.", "expiry_date": "Friday"},
			want:      "Special offer: Free delivery. Valid until Friday. Reply STOP to opt out.",
		},
		{
			name:     "missing variables render empty",
			template: gateway.TemplateOrderConfirmation,
			want:     "Your order # has been confirmed. Total: $",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gateway.RenderTemplate(tt.template, tt.variables)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTemplate_Unknown(t *testing.T) {
	_, err := gateway.RenderTemplate("birthday", nil)
	assert.ErrorIs(t, err, gateway.ErrUnknownTemplate)
	assert.False(t, gateway.HasTemplate("birthday"))
	assert.True(t, gateway.HasTemplate("promotional"))
}
