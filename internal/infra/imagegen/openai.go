package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/resilience/circuitbreaker"
)

// OpenAI implements post.ImageGenerator using the OpenAI image API.
type OpenAI struct {
	client         *openai.Client
	model          string
	circuitBreaker *circuitbreaker.CircuitBreaker
	timeout        time.Duration
}

// NewOpenAI creates an OpenAI image generator with the given API key and
// model.
func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		client:         openai.NewClient(apiKey),
		model:          model,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ImageModelConfig("openai-image")),
		timeout:        120 * time.Second,
	}
}

// Provider implements post.ImageGenerator.
func (o *OpenAI) Provider() string { return "openai" }

// GenerateImage requests one portrait image and normalizes it to the post
// canvas. A failed call is surfaced directly; re-generation is a new call.
func (o *OpenAI) GenerateImage(ctx context.Context, prompt string) (entity.GeneratedImage, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	result, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doGenerate(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai image circuit breaker open, request rejected",
				slog.String("state", o.circuitBreaker.State().String()))
			return entity.GeneratedImage{}, fmt.Errorf("%w: image provider temporarily unavailable", entity.ErrGeneration)
		}
		return entity.GeneratedImage{}, err
	}

	return result.(entity.GeneratedImage), nil
}

func (o *OpenAI) doGenerate(ctx context.Context, prompt string) (entity.GeneratedImage, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "starting image generation",
		slog.String("request_id", requestID),
		slog.String("provider", "openai"),
		slog.String("model", o.model))

	start := time.Now()

	// 1024x1792 is the closest supported portrait resolution to the
	// 768x957 canvas; the overflow is cropped during normalization.
	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          o.model,
		N:              1,
		Size:           openai.CreateImageSize1024x1792,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "image generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return entity.GeneratedImage{}, fmt.Errorf("%w: openai image: %v", entity.ErrGeneration, err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return entity.GeneratedImage{}, fmt.Errorf("%w: openai returned no image data", entity.ErrGeneration)
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return entity.GeneratedImage{}, fmt.Errorf("%w: invalid base64 image payload: %v", entity.ErrGeneration, err)
	}

	normalized, err := normalizePNG(raw)
	if err != nil {
		return entity.GeneratedImage{}, err
	}

	slog.InfoContext(ctx, "image generation completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("png_bytes", len(normalized)))

	return entity.GeneratedImage{
		Provider:    "openai",
		Prompt:      prompt,
		PNG:         normalized,
		GeneratedAt: time.Now(),
	}, nil
}
