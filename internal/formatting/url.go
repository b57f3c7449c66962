package formatting

import (
	"net/url"
	"strings"
)

// FormatURL returns the host of rawURL without a leading "www.", for display.
// Input that does not parse as an absolute URL is returned unchanged.
func FormatURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
