package respond

import (
	"regexp"
)

var (
	// API key patterns. The Anthropic pattern must be applied first since it
	// is the more specific of the two.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// Unsplash access keys are passed as "Client-ID <key>" headers
	unsplashKeyPattern = regexp.MustCompile(`Client-ID [a-zA-Z0-9-_]+`)

	// Database passwords embedded in a DSN
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)
)

// SanitizeError returns the error message with credentials masked so it can
// be written to logs safely.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = unsplashKeyPattern.ReplaceAllString(msg, "Client-ID ****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
