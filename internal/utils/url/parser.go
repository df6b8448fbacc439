package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateURL performs comprehensive URL validation
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// Join builds a page URL by appending path to the site base URL verbatim.
// No slash is added or removed: "https://a.ru" + "/contacts" and
// "https://a.ru/" + "contacts" both work, "https://a.ru/" + "/contacts" keeps the double slash.
func Join(site, path string) string {
	return site + path
}

// Host returns the host part of a site URL, or the input unchanged when it does not parse
func Host(site string) string {
	u, err := url.Parse(site)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(site, "/")
	}
	return u.Host
}
