package workflow

import (
	"net/url"
	"strings"
)

// MailtoLink builds a mailto URI that pre-fills the recipient, subject
// and body for the system mail client.
func MailtoLink(email, subject, body string) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(email)
	b.WriteString("?subject=")
	b.WriteString(escapeMailto(subject))
	b.WriteString("&body=")
	b.WriteString(escapeMailto(body))
	return b.String()
}

// escapeMailto percent-encodes a header value. Mail clients expect
// %20 for spaces, not the form-encoding plus sign.
func escapeMailto(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
