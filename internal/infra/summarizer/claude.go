package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/resilience/circuitbreaker"
	"github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
	"github.com/AicraftersLab/Article-To-Post/internal/utils/text"
)

// Claude implements post.Summarizer using Anthropic's Messages API.
type Claude struct {
	client         anthropic.Client
	model          string
	circuitBreaker *circuitbreaker.CircuitBreaker
	timeout        time.Duration
}

// NewClaude creates a Claude summarizer with the given API key and model.
func NewClaude(apiKey, model string) *Claude {
	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:          model,
		circuitBreaker: circuitbreaker.New(circuitbreaker.TextModelConfig("claude-text")),
		timeout:        60 * time.Second,
	}
}

// Provider implements post.Summarizer.
func (c *Claude) Provider() string { return "claude" }

// Summarize generates a SummaryBundle with a single Messages API call.
func (c *Claude) Summarize(ctx context.Context, article string, params post.SummaryParams) (entity.SummaryBundle, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doSummarize(ctx, article, params)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude text circuit breaker open, request rejected",
				slog.String("state", c.circuitBreaker.State().String()))
			return entity.SummaryBundle{}, fmt.Errorf("%w: text provider temporarily unavailable", entity.ErrGeneration)
		}
		return entity.SummaryBundle{}, err
	}

	return result.(entity.SummaryBundle), nil
}

func (c *Claude) doSummarize(ctx context.Context, article string, params post.SummaryParams) (entity.SummaryBundle, error) {
	requestID := uuid.New().String()
	prompt := buildPrompt(article, params)

	slog.InfoContext(ctx, "starting summary generation",
		slog.String("request_id", requestID),
		slog.String("provider", "claude"),
		slog.String("model", c.model),
		slog.Int("article_runes", text.CountRunes(article)),
		slog.Int("hashtag_count", params.HashtagCount))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "summary generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return entity.SummaryBundle{}, fmt.Errorf("%w: claude: %v", entity.ErrGeneration, err)
	}

	if len(message.Content) == 0 {
		return entity.SummaryBundle{}, fmt.Errorf("%w: claude returned empty response", entity.ErrGeneration)
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return entity.SummaryBundle{}, fmt.Errorf("%w: claude returned unexpected response type", entity.ErrGeneration)
	}

	bundle, err := parseBundle(textBlock.Text, params)
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
