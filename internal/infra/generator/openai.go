package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"blogforge/internal/resilience/circuitbreaker"
	"blogforge/internal/resilience/retry"
)

// OpenAIGenerator generates articles via the OpenAI chat completion API.
// Blocking calls go through retry with backoff and a circuit breaker;
// streaming calls bypass both, since a half-delivered stream cannot be
// transparently retried.
type OpenAIGenerator struct {
	client    *openai.Client
	settings  Settings
	breaker   *circuitbreaker.CircuitBreaker
	retryConf retry.Config
}

func NewOpenAIGenerator(apiKey string, settings Settings) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:    openai.NewClient(apiKey),
		settings:  settings,
		breaker:   circuitbreaker.New(circuitbreaker.GeneratorAPIConfig("openai")),
		retryConf: retry.AIAPIConfig(),
	}
}

// Generate returns the complete markdown article for the prompt.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.complete(ctx, "generate", articlePrompt, prompt)
}

// Keywords asks the model for a short image search phrase. Only the first
// line of the reply is used; models occasionally append commentary despite
// the instruction not to.
func (g *OpenAIGenerator) Keywords(ctx context.Context, prompt string) (string, error) {
	reply, err := g.complete(ctx, "keywords", keywordsPrompt, prompt)
	if err != nil {
		return "", err
	}
	return firstLine(reply), nil
}

func (g *OpenAIGenerator) complete(ctx context.Context, kind, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.settings.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:     g.settings.Model,
		MaxTokens: g.settings.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	start := time.Now()
	var content string
	err := retry.WithBackoff(ctx, g.retryConf, func() error {
		result, execErr := g.breaker.Execute(func() (interface{}, error) {
			resp, apiErr := g.client.CreateChatCompletion(ctx, req)
			if apiErr != nil {
				return nil, classifyOpenAIError(apiErr)
			}
			if len(resp.Choices) == 0 {
				return nil, errors.New("completion returned no choices")
			}
			return resp.Choices[0].Message.Content, nil
		})
		if execErr != nil {
			return execErr
		}
		content = result.(string)
		return nil
	})
	observeCall(ProviderOpenAI, kind, time.Since(start).Seconds(), err)
	if err != nil {
		slog.Error("openai completion failed",
			slog.String("kind", kind),
			slog.String("model", g.settings.Model),
			slog.Any("error", err))
		return "", fmt.Errorf("openai %s: %w", kind, err)
	}
	return content, nil
}

// Stream starts a streaming chat completion. The caller owns the returned
// TokenStream and must close it.
func (g *OpenAIGenerator) Stream(ctx context.Context, prompt string) (TokenStream, error) {
	req := openai.ChatCompletionRequest{
		Model:     g.settings.Model,
		MaxTokens: g.settings.MaxTokens,
		Stream:    true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: articlePrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	stream, err := g.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		generationsTotal.WithLabelValues(ProviderOpenAI, "stream", "error").Inc()
		return nil, fmt.Errorf("openai stream: %w", classifyOpenAIError(err))
	}
	generationsTotal.WithLabelValues(ProviderOpenAI, "stream", "success").Inc()
	return &openaiTokenStream{stream: stream}, nil
}

type openaiTokenStream struct {
	stream *openai.ChatCompletionStream
}

// Recv returns the next non-empty text delta. Empty deltas (role-only or
// finish-reason chunks) are skipped so callers only ever see actual text.
func (s *openaiTokenStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			// io.EOF passes through unchanged as the natural end marker.
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			return delta, nil
		}
	}
}

func (s *openaiTokenStream) Close() error {
	return s.stream.Close()
}

// classifyOpenAIError converts API errors carrying an HTTP status into
// retry.HTTPError so the retry layer can tell transient failures apart from
// permanent ones.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 {
		return &retry.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
	}
	return err
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
