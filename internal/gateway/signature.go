package gateway

import twilioclient "github.com/twilio/twilio-go/client"

// SignatureHeader carries the provider's HMAC of the callback URL and form.
const SignatureHeader = "X-Twilio-Signature"

type SignatureValidator interface {
	Validate(url string, params map[string]string, signature string) bool
}

// NewSignatureValidator checks callbacks signed with the account auth token.
func NewSignatureValidator(authToken string) SignatureValidator {
	validator := twilioclient.NewRequestValidator(authToken)
	return &validator
}
