package config

import (
	"fmt"
	"net/url"
	"strings"
)

// SanitizeSheetURL validates a published sheet URL. Only absolute http(s)
// URLs are accepted. An empty value is allowed and means "use demo data".
func SanitizeSheetURL(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", nil
	}

	if strings.ContainsAny(cleaned, " \t\r\n") {
		return "", fmt.Errorf("sheet URL cannot contain whitespace")
	}

	u, err := url.Parse(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid sheet URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("sheet URL must use http or https")
	}
	if u.Host == "" {
		return "", fmt.Errorf("sheet URL must include a host")
	}

	return u.String(), nil
}

// NormalizeBaseURL lowercases the scheme and host of a site base URL and
// drops any trailing slash, so paths can be appended directly.
func NormalizeBaseURL(raw string) string {
	cleaned := strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(cleaned)
	if err != nil || u.Host == "" {
		return cleaned
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return strings.TrimRight(u.String(), "/")
}
