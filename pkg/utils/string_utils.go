package utils

import (
	"net/url"
	"strings"
)

// NewNullString is a helper for string pointers, returning nil if string is empty.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NormalizePhone reduces a loosely formatted mobile number to digits suitable
// for a WhatsApp link. Numbers with a leading local "0" are rewritten to the
// Indonesian country code; numbers already carrying 62 or 44 are kept as-is.
func NormalizePhone(phone string) string {
	if phone == "" {
		return ""
	}

	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case strings.HasPrefix(d, "62"):
		return d
	case strings.HasPrefix(d, "0"):
		return "62" + d[1:]
	case strings.HasPrefix(d, "44"):
		return d
	}
	return d
}

// WhatsAppLink builds a wa.me deep link with a prefilled message.
// An empty or digit-free phone yields "#" so the caller can still render a row.
func WhatsAppLink(phone, message string) string {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return "#"
	}
	// wa.me expects %20 for spaces, not the form-encoded plus.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + normalized + "?text=" + encoded
}
