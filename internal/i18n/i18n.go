// Package i18n picks English or Hindi text for API responses.
package i18n

import "strings"

type Locale string

const (
	English Locale = "en"
	Hindi   Locale = "hi"
)

// Parse maps a lang query value or Accept-Language header to a Locale.
// Anything that is not Hindi is English.
func Parse(raw string) Locale {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(raw, "hi") {
		return Hindi
	}
	return English
}

var messages = map[string]map[Locale]string{
	"booking.login_required": {
		English: "Please login to book",
		Hindi:   "बुकिंग के लिए कृपया लॉगिन करें",
	},
	"booking.created": {
		English: "Booking received",
		Hindi:   "बुकिंग प्राप्त हो गई",
	},
	"booking.cancelled": {
		English: "Booking cancelled",
		Hindi:   "बुकिंग रद्द कर दी गई",
	},
	"booking.confirmed_cancel": {
		English: "Confirmed bookings cannot be cancelled directly. Please contact support.",
		Hindi:   "पुष्टि की गई बुकिंग सीधे रद्द नहीं की जा सकती। कृपया सहायता से संपर्क करें।",
	},
	"contact.login_required": {
		English: "Please login to send a message",
		Hindi:   "संदेश भेजने के लिए कृपया लॉगिन करें",
	},
	"contact.received": {
		English: "Inquiry received",
		Hindi:   "पूछताछ प्राप्त हो गई",
	},
}

// Translate returns the message for key in locale, falling back to English
// and then to the key itself.
func Translate(key string, locale Locale) string {
	m, ok := messages[key]
	if !ok {
		return key
	}
	if s := m[locale]; s != "" {
		return s
	}
	return m[English]
}

// Localize picks the Hindi variant when asked for and present.
func Localize(en, hi string, locale Locale) string {
	if locale == Hindi && strings.TrimSpace(hi) != "" {
		return hi
	}
	return en
}
