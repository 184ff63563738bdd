package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateEndpoint checks that raw is an absolute http or https URL with a host.
// Service endpoints come from user configuration, so anything else is rejected
// before the first request is made.
func ValidateEndpoint(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return New(ErrCodeInvalidEndpoint, "endpoint cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidEndpoint, err, "parse endpoint %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidEndpoint, "endpoint %q must use http or https", raw)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidEndpoint, "endpoint %q has no host", raw)
	}
	return nil
}

// ValidateFilename validates a download filename for safety.
// It must be a simple basename: no path separators, no parent references,
// no control characters.
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFilename, "filename cannot be empty")
	}
	if len(name) > 255 {
		return New(ErrCodeInvalidFilename, "filename too long (max 255 characters)")
	}
	if name == "." || name == ".." {
		return New(ErrCodeInvalidFilename, "filename %q is reserved", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFilename, "filename contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidFilename, "filename must not contain path separators: %q", name)
	}
	return nil
}

// SanitizeFilename maps name to something [ValidateFilename] accepts.
// Separators and control characters become underscores; an empty result
// becomes fallback.
func SanitizeFilename(name, fallback string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return fallback
	}
	if len(cleaned) > 255 {
		cleaned = cleaned[:255]
	}
	return cleaned
}
