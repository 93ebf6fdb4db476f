package middleware

import (
	"slices"

	"blogforge/pkg/config"
)

// CORSConfig holds the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	// Configurable via CORS_ALLOWED_METHODS environment variable.
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	// Configurable via CORS_ALLOWED_HEADERS environment variable.
	AllowedHeaders []string

	// MaxAge specifies how long preflight results can be cached (in seconds).
	// Configurable via CORS_MAX_AGE environment variable. Default: 86400.
	MaxAge int

	// OpenMode is true when no allow-list is configured: every origin is
	// admitted and disallowed-origin rejection never fires.
	OpenMode bool

	// Validator is the origin validation strategy.
	Validator OriginValidator

	// Logger receives CORS policy decisions.
	Logger CORSLogger
}

// LoadCORSConfig builds the CORS configuration from environment variables.
//
// ALLOWED_ORIGINS is a comma-separated allow-list supporting exact origins
// and "*.suffix" wildcard patterns. When it is unset, empty, or contains the
// single entry "*", the server runs in open mode and admits every origin.
func LoadCORSConfig() *CORSConfig {
	origins := config.GetEnvStringList("ALLOWED_ORIGINS", nil)

	cfg := &CORSConfig{
		AllowedMethods: config.GetEnvStringList("CORS_ALLOWED_METHODS",
			[]string{"GET", "POST", "DELETE", "OPTIONS"}),
		AllowedHeaders: config.GetEnvStringList("CORS_ALLOWED_HEADERS",
			[]string{"Content-Type", "X-Request-ID"}),
		MaxAge: config.GetEnvInt("CORS_MAX_AGE", 86400),
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.OpenMode = true
		cfg.Validator = AllowAllValidator{}
		return cfg
	}

	cfg.Validator = NewPatternValidator(origins)
	return cfg
}
