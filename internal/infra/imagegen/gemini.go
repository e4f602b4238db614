package imagegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mhpenta/imagegen"
	"github.com/mhpenta/imagegen/provider/gemini"
	"github.com/sony/gobreaker"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/resilience/circuitbreaker"
)

// Gemini implements post.ImageGenerator using Google's Gemini image models
// through the imagegen provider abstraction.
type Gemini struct {
	manager        *imagegen.Manager
	circuitBreaker *circuitbreaker.CircuitBreaker
	timeout        time.Duration
}

// NewGemini creates a Gemini image generator with the given API key.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	gen, err := gemini.NewWithAPIKey(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("%w: gemini provider init: %v", entity.ErrConfig, err)
	}

	return &Gemini{
		manager:        imagegen.NewManager(gen),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ImageModelConfig("gemini-image")),
		timeout:        120 * time.Second,
	}, nil
}

// Provider implements post.ImageGenerator.
func (g *Gemini) Provider() string { return "gemini" }

// Close releases the underlying provider connection.
func (g *Gemini) Close() {
	g.manager.Close()
}

// GenerateImage requests one image and normalizes it to the post canvas.
func (g *Gemini) GenerateImage(ctx context.Context, prompt string) (entity.GeneratedImage, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.circuitBreaker.Execute(func() (interface{}, error) {
		return g.doGenerate(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("gemini image circuit breaker open, request rejected",
				slog.String("state", g.circuitBreaker.State().String()))
			return entity.GeneratedImage{}, fmt.Errorf("%w: image provider temporarily unavailable", entity.ErrGeneration)
		}
		return entity.GeneratedImage{}, err
	}

	return result.(entity.GeneratedImage), nil
}

func (g *Gemini) doGenerate(ctx context.Context, prompt string) (entity.GeneratedImage, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "starting image generation",
		slog.String("request_id", requestID),
		slog.String("provider", "gemini"))

	start := time.Now()

	result, err := g.manager.Generate(ctx, prompt, nil)
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "image generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return entity.GeneratedImage{}, fmt.Errorf("%w: gemini image: %v", entity.ErrGeneration, err)
	}

	if len(result.Images) == 0 || len(result.Images[0].Data) == 0 {
		return entity.GeneratedImage{}, fmt.Errorf("%w: gemini returned no image data", entity.ErrGeneration)
	}

	normalized, err := normalizePNG(result.Images[0].Data)
	if err != nil {
		return entity.GeneratedImage{}, err
	}

	slog.InfoContext(ctx, "image generation completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("png_bytes", len(normalized)))

	return entity.GeneratedImage{
		Provider:    "gemini",
		Prompt:      prompt,
		PNG:         normalized,
		GeneratedAt: time.Now(),
	}, nil
}
