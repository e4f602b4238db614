// Package summarizer implements the Summarizer port for the two supported
// text providers: OpenAI chat completions and Anthropic Claude. Both build
// the same single-call prompt and share the tolerant JSON parser, so the
// workflow never knows which provider produced a bundle.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/resilience/circuitbreaker"
	"github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
	"github.com/AicraftersLab/Article-To-Post/internal/utils/text"
)

// OpenAI implements post.Summarizer using the OpenAI chat completion API.
type OpenAI struct {
	client         *openai.Client
	model          string
	circuitBreaker *circuitbreaker.CircuitBreaker
	timeout        time.Duration
}

// NewOpenAI creates an OpenAI summarizer with the given API key and model.
func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		client:         openai.NewClient(apiKey),
		model:          model,
		circuitBreaker: circuitbreaker.New(circuitbreaker.TextModelConfig("openai-text")),
		timeout:        60 * time.Second,
	}
}

// Provider implements post.Summarizer.
func (o *OpenAI) Provider() string { return "openai" }

// Summarize generates a SummaryBundle with a single chat completion call.
// There is no automatic retry: a failed call is surfaced to the user, who
// can re-trigger generation.
func (o *OpenAI) Summarize(ctx context.Context, article string, params post.SummaryParams) (entity.SummaryBundle, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	result, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doSummarize(ctx, article, params)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai text circuit breaker open, request rejected",
				slog.String("state", o.circuitBreaker.State().String()))
			return entity.SummaryBundle{}, fmt.Errorf("%w: text provider temporarily unavailable", entity.ErrGeneration)
		}
		return entity.SummaryBundle{}, err
	}

	return result.(entity.SummaryBundle), nil
}

func (o *OpenAI) doSummarize(ctx context.Context, article string, params post.SummaryParams) (entity.SummaryBundle, error) {
	requestID := uuid.New().String()
	prompt := buildPrompt(article, params)

	slog.InfoContext(ctx, "starting summary generation",
		slog.String("request_id", requestID),
		slog.String("provider", "openai"),
		slog.String("model", o.model),
		slog.Int("article_runes", text.CountRunes(article)),
		slog.Int("hashtag_count", params.HashtagCount))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   800,
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "summary generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return entity.SummaryBundle{}, fmt.Errorf("%w: openai: %v", entity.ErrGeneration, err)
	}

	if len(resp.Choices) == 0 {
		return entity.SummaryBundle{}, fmt.Errorf("%w: openai returned empty choices", entity.ErrGeneration)
	}

	bundle, err := parseBundle(resp.Choices[0].Message.Content, params)
	if err != nil {
		slog.ErrorContext(ctx, "summary response unparseable",
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return entity.SummaryBundle{}, err
	}

	slog.InfoContext(ctx, "summary generation completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("bullets", len(bundle.Bullets)),
		slog.Int("description_words", text.CountWords(bundle.Description)),
		slog.String("category", bundle.Category))

	return bundle, nil
}
