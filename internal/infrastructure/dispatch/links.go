package dispatch

import (
	"fmt"
	"net/url"
	"strings"
)

// contactGreeting is the canned text behind the storefront's contact button
const contactGreeting = "Hello! I have a question."

// encodeComponent percent-encodes a URI component. Form encoding turns
// spaces into "+", which mail clients render literally (RFC 6068 hfields
// expect percent-encoding), so spaces become %20 here.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// WhatsAppLink builds a messaging deep link that opens a conversation with
// the seller, pre-filled with the given text.
func WhatsAppLink(sellerPhone, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", sellerPhone, encodeComponent(text))
}

// ContactLink builds the deep link for the storefront's general contact
// button.
func ContactLink(sellerPhone string) string {
	return WhatsAppLink(sellerPhone, contactGreeting)
}

// MailtoLink builds a mail-composition URI with the given subject and body.
func MailtoLink(subject, body string) string {
	return "mailto:?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}
