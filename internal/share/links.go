// Package share builds the outbound actions for a formatted order:
// messaging deep links and a clipboard copy.
package share

import (
	"net/url"
	"strings"
)

// Links are the outbound deep links for one order message.
type Links struct {
	WhatsApp  string `json:"whatsapp"`
	Messenger string `json:"messenger"`
}

// Recipients holds the configured destination identifiers. Empty fields
// fall back to links that open the app without a preselected chat.
type Recipients struct {
	WhatsAppNumber    string
	MessengerUsername string
}

// BuildLinks percent-encodes message into the WhatsApp deep link and
// returns the Messenger chat link. Messenger prefill is unreliable
// upstream, so that link only opens the conversation; the shopper pastes
// the copied message.
func BuildLinks(message string, r Recipients) Links {
	// QueryEscape uses '+' for spaces; deep links want %20.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")

	whatsapp := "https://wa.me/?text=" + encoded
	if r.WhatsAppNumber != "" {
		whatsapp = "https://wa.me/" + r.WhatsAppNumber + "?text=" + encoded
	}

	messenger := "https://www.messenger.com/"
	if r.MessengerUsername != "" {
		messenger = "https://m.me/" + r.MessengerUsername
	}

	return Links{WhatsApp: whatsapp, Messenger: messenger}
}
