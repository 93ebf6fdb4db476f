package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Prompt length bounds, counted in characters. The trimmed prompt becomes the
// article title verbatim, so the bounds double as title bounds.
const (
	MinPromptLength = 5
	MaxPromptLength = 180
)

// Sentinel errors for prompt validation. All of them wrap ErrInvalidInput;
// handlers map them to 400 responses.
var (
	// ErrPromptRequired indicates that the prompt field is absent or empty.
	ErrPromptRequired = fmt.Errorf("%w: prompt is required", ErrInvalidInput)

	// ErrPromptTooShort indicates that the trimmed prompt is below MinPromptLength.
	ErrPromptTooShort = fmt.Errorf("%w: prompt is too short (min 5 chars)", ErrInvalidInput)

	// ErrPromptTooLong indicates that the trimmed prompt exceeds MaxPromptLength.
	ErrPromptTooLong = fmt.Errorf("%w: prompt is too long (max 180 chars)", ErrInvalidInput)
)

// ValidatePrompt normalizes and bounds-checks a user-supplied topic string.
// It trims surrounding whitespace and enforces the [MinPromptLength,
// MaxPromptLength] bounds on the trimmed value. Lengths are counted in
// characters, not bytes, so a multi-byte script does not shrink the budget.
// On success it returns the trimmed prompt; this exact string becomes the
// eventual article title.
func ValidatePrompt(raw string) (string, error) {
	prompt := strings.TrimSpace(raw)
	if prompt == "" {
		return "", ErrPromptRequired
	}
	length := utf8.RuneCountInString(prompt)
	if length < MinPromptLength {
		return "", ErrPromptTooShort
	}
	if length > MaxPromptLength {
		return "", ErrPromptTooLong
	}
	return prompt, nil
}
