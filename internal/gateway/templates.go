package gateway

import (
	"fmt"
	"strings"
	"text/template"
)

const (
	TemplateWelcome             = "welcome"
	TemplateOrderConfirmation   = "order_confirmation"
	TemplateAppointmentReminder = "appointment_reminder"
	TemplatePromotional         = "promotional"
)

var templates = template.Must(template.New("whatsapp").Option("missingkey=zero").Parse(`
{{- define "welcome"}}Welcome to our service! Reply STOP to opt out anytime.{{end}}
{{- define "order_confirmation"}}Your order #{{.order_id}} has been confirmed. Total: ${{.amount}}{{end}}
{{- define "appointment_reminder"}}Reminder: You have an appointment on {{.date}} at {{.time}}. Reply STOP to opt out.{{end}}
{{- define "promotional"}}Special offer: {{.offer_text}} Valid until {{.expiry_date}}. Reply STOP to opt out.{{end}}
`))

// HasTemplate reports whether name is one of the fixed message templates.
func HasTemplate(name string) bool {
	switch name {
	case TemplateWelcome, TemplateOrderConfirmation, TemplateAppointmentReminder, TemplatePromotional:
		return true
	default:
		return false
	}
}

// RenderTemplate substitutes variables into a named template. Missing
// variables render as empty strings.
func RenderTemplate(name string, variables map[string]string) (string, error) {
	if !HasTemplate(name) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	if variables == nil {
		variables = map[string]string{}
	}

	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, variables); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}

	return b.String(), nil
}
