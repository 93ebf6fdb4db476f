// Package generator provides clients for generative language model APIs.
// It supports both blocking article generation and token-by-token streaming,
// with a provider-agnostic interface so the rest of the application does not
// care which vendor produced the text.
package generator

import "context"

// Generator produces article text from a user prompt.
type Generator interface {
	// Generate returns the complete markdown article for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Keywords returns a short search phrase describing the prompt's topic,
	// suitable for querying an image search API.
	Keywords(ctx context.Context, prompt string) (string, error)

	// Stream starts a streaming generation and returns a TokenStream that
	// yields text deltas as the model produces them. The returned stream
	// must be closed by the caller.
	Stream(ctx context.Context, prompt string) (TokenStream, error)
}

// TokenStream yields incremental text fragments from a streaming generation.
// Recv returns io.EOF when the model has finished naturally; any other error
// indicates the stream failed partway through.
type TokenStream interface {
	Recv() (string, error)
	Close() error
}

// articlePrompt is the system instruction used for blocking and streaming
// article generation.
const articlePrompt = "You are a professional blog writer. Write a well-structured blog article " +
	"of roughly 500 words in markdown format about the following topic. " +
	"Start with a level-1 heading that titles the article."

// keywordsPrompt asks the model for a concise image search phrase.
const keywordsPrompt = "Extract 2-4 search keywords that describe the visual subject of the " +
	"following blog topic. Reply with only the keywords, separated by spaces, " +
	"on a single line. No punctuation, no explanation."
