// Package phone normalizes user-entered phone numbers into the canonical
// "+<digits>" form used as the contact key.
package phone

import (
	"errors"
	"strings"
)

const DefaultCountryCode = "1"

// MaxDigits is the E.164 limit on digits after the "+".
const MaxDigits = 15

var (
	ErrNoDigits = errors.New("phone number contains no digits")
	ErrTooLong  = errors.New("phone number has too many digits")
)

// Normalize strips every non-digit and prefixes "+". A ten-digit number gets
// the country code prepended; any other length is used as is, so a number
// that already carries its country code is left alone. Results longer than
// MaxDigits are rejected.
func Normalize(raw, countryCode string) (string, error) {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	digits := Digits(raw)
	if digits == "" {
		return "", ErrNoDigits
	}

	if len(digits) == 10 {
		digits = countryCode + digits
	}
	if len(digits) > MaxDigits {
		return "", ErrTooLong
	}
	return "+" + digits, nil
}

// Digits returns only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// WithoutChannel removes a messaging channel prefix such as "whatsapp:".
func WithoutChannel(address string) string {
	if i := strings.Index(address, ":"); i >= 0 {
		return address[i+1:]
	}
	return address
}
