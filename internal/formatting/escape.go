// Package formatting provides the pure text helpers used to turn resume fields into display markup.
package formatting

import (
	"html"
	"net/url"
	"strings"
)

// EscapeText escapes HTML-significant characters in text so user input is
// always shown as literal text and never parsed as markup.
// Special characters: & < > " '
func EscapeText(text string) string {
	return html.EscapeString(text)
}

// blockedSchemes can run script when placed in an href
var blockedSchemes = map[string]bool{
	"javascript": true,
	"vbscript":   true,
	"data":       true,
}

// SafeHref escapes a user supplied URL for an href attribute.
// URLs with a script-capable scheme become "#".
func SafeHref(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	// Browsers ignore control characters and whitespace inside the scheme
	cleaned := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, trimmed)
	if u, err := url.Parse(cleaned); err == nil && blockedSchemes[strings.ToLower(u.Scheme)] {
		return "#"
	}
	if i := strings.IndexByte(cleaned, ':'); i > 0 && blockedSchemes[strings.ToLower(cleaned[:i])] {
		return "#"
	}
	return EscapeText(trimmed)
}
