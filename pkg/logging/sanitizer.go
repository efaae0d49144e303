package logging

import (
	"regexp"
)

const (
	// MaxBodyLogLength is the maximum length of a response body to log
	MaxBodyLogLength = 200
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

var (
	// Pattern to match credentials in query strings
	// Matches: password=xxx, pwd=xxx, pass=xxx, token=xxx (until next delimiter)
	secretParamPattern = regexp.MustCompile(`(?i)(password|pwd|pass|token|api[_-]?key)=[^;&\s]+`)

	// Pattern to match bearer tokens
	bearerPattern = regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_.~+/]+=*`)

	// Pattern to match URL credentials (user:pass@host format)
	userInfoPattern = regexp.MustCompile(`://[^:/@\s]+:[^@/\s]+@`)
)

// SanitizeURL removes credentials from a URL before it is logged.
func SanitizeURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	sanitized := userInfoPattern.ReplaceAllString(rawURL, "://"+RedactedText+"@")
	sanitized = secretParamPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)

	return sanitized
}

// SanitizeError sanitizes error messages that might contain request URLs or tokens.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	sanitized := SanitizeURL(err.Error())
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)

	return sanitized
}

// SanitizeBody truncates a response body for logging and strips secrets from it.
func SanitizeBody(body string) string {
	if body == "" {
		return ""
	}

	sanitized := TruncateString(body, MaxBodyLogLength)
	sanitized = secretParamPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	sanitized = bearerPattern.ReplaceAllString(sanitized, "Bearer "+RedactedText)

	return sanitized
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
