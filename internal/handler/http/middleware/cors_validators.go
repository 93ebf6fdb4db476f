package middleware

import (
	"strings"
)

// PatternValidator validates origins against a list of patterns.
// Two pattern forms are supported:
//
//   - Exact origins ("https://example.com"), compared case-insensitively
//     with any trailing slash removed.
//   - Wildcard subdomain patterns ("*.example.com"), which match any origin
//     whose host ends with the suffix after the asterisk. The scheme is not
//     part of the comparison for wildcard patterns.
//
// Example:
//
//	validator := NewPatternValidator([]string{
//	    "https://blog.example.com",
//	    "*.preview.example.com",
//	})
//	validator.IsAllowed("https://blog.example.com")          // true
//	validator.IsAllowed("https://pr-42.preview.example.com") // true
//	validator.IsAllowed("https://evil.com")                  // false
type PatternValidator struct {
	exact     []string
	wildcards []string // suffixes, including the leading dot
}

// NewPatternValidator creates a PatternValidator from the given pattern list.
// Patterns are normalized to lowercase with trailing slashes removed; empty
// entries are skipped.
func NewPatternValidator(patterns []string) *PatternValidator {
	v := &PatternValidator{}
	for _, pattern := range patterns {
		pattern = normalizeOrigin(pattern)
		if pattern == "" {
			continue
		}
		if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
			// "*.example.com" stores ".example.com"
			v.wildcards = append(v.wildcards, suffix)
			continue
		}
		v.exact = append(v.exact, pattern)
	}
	return v
}

// IsAllowed reports whether the origin matches any configured pattern.
func (v *PatternValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}

	for _, allowed := range v.exact {
		if origin == allowed {
			return true
		}
	}

	// Wildcard comparison ignores the scheme so "*.example.com" admits both
	// http and https subdomains
	host := stripScheme(origin)
	for _, suffix := range v.wildcards {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}

	return false
}

// AllowAllValidator admits every origin. Used when no allow-list is
// configured, which puts the server in open mode.
type AllowAllValidator struct{}

func (AllowAllValidator) IsAllowed(origin string) bool {
	return origin != ""
}

// normalizeOrigin lowercases an origin and strips surrounding whitespace and
// any trailing slash.
func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}

// stripScheme removes an http:// or https:// prefix if present.
func stripScheme(origin string) string {
	if rest, ok := strings.CutPrefix(origin, "https://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(origin, "http://"); ok {
		return rest
	}
	return origin
}
