package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	"blogforge/internal/resilience/circuitbreaker"
	"blogforge/internal/resilience/retry"
)

// ClaudeGenerator generates articles via the Anthropic Messages API.
type ClaudeGenerator struct {
	client    anthropic.Client
	settings  Settings
	breaker   *circuitbreaker.CircuitBreaker
	retryConf retry.Config
}

func NewClaudeGenerator(apiKey string, settings Settings) *ClaudeGenerator {
	return &ClaudeGenerator{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		settings:  settings,
		breaker:   circuitbreaker.New(circuitbreaker.GeneratorAPIConfig("claude")),
		retryConf: retry.AIAPIConfig(),
	}
}

// Generate returns the complete markdown article for the prompt.
func (g *ClaudeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.complete(ctx, "generate", articlePrompt, prompt)
}

// Keywords asks the model for a short image search phrase.
func (g *ClaudeGenerator) Keywords(ctx context.Context, prompt string) (string, error) {
	reply, err := g.complete(ctx, "keywords", keywordsPrompt, prompt)
	if err != nil {
		return "", err
	}
	return firstLine(reply), nil
}

func (g *ClaudeGenerator) complete(ctx context.Context, kind, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.settings.Timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.settings.Model),
		MaxTokens: int64(g.settings.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}

	start := time.Now()
	var content string
	err := retry.WithBackoff(ctx, g.retryConf, func() error {
		result, execErr := g.breaker.Execute(func() (interface{}, error) {
			message, apiErr := g.client.Messages.New(ctx, params)
			if apiErr != nil {
				return nil, apiErr
			}
			return collectText(message), nil
		})
		if execErr != nil {
			return execErr
		}
		content = result.(string)
		return nil
	})
	observeCall(ProviderClaude, kind, time.Since(start).Seconds(), err)
	if err != nil {
		slog.Error("claude completion failed",
			slog.String("kind", kind),
			slog.String("model", g.settings.Model),
			slog.Any("error", err))
		return "", fmt.Errorf("claude %s: %w", kind, err)
	}
	return content, nil
}

// Stream starts a streaming message generation. The caller owns the returned
// TokenStream and must close it.
func (g *ClaudeGenerator) Stream(ctx context.Context, prompt string) (TokenStream, error) {
	stream := g.client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.settings.Model),
		MaxTokens: int64(g.settings.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: articlePrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err := stream.Err(); err != nil {
		generationsTotal.WithLabelValues(ProviderClaude, "stream", "error").Inc()
		return nil, fmt.Errorf("claude stream: %w", err)
	}
	generationsTotal.WithLabelValues(ProviderClaude, "stream", "success").Inc()
	return &claudeTokenStream{stream: stream}, nil
}

type claudeTokenStream struct {
	stream *ssestream.Stream[anthropic.MessageStreamEventUnion]
}

// Recv advances the event stream until it finds a text delta. Non-text events
// (message start, content block boundaries, usage updates) are skipped.
func (s *claudeTokenStream) Recv() (string, error) {
	for s.stream.Next() {
		event := s.stream.Current()
		switch variant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if delta, ok := variant.Delta.AsAny().(anthropic.TextDelta); ok && delta.Text != "" {
				return delta.Text, nil
			}
		}
	}
	if err := s.stream.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *claudeTokenStream) Close() error {
	return s.stream.Close()
}

// collectText concatenates the text blocks of a message response.
func collectText(message *anthropic.Message) string {
	var sb strings.Builder
	for _, block := range message.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String()
}
