// Command server starts the article-to-post web application: the session
// workflow API, the embedded UI, and the health/metrics endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AicraftersLab/Article-To-Post/internal/compose"
	"github.com/AicraftersLab/Article-To-Post/internal/config"
	hhttp "github.com/AicraftersLab/Article-To-Post/internal/handler/http"
	"github.com/AicraftersLab/Article-To-Post/internal/infra/fetcher"
	"github.com/AicraftersLab/Article-To-Post/internal/infra/imagegen"
	"github.com/AicraftersLab/Article-To-Post/internal/infra/summarizer"
	"github.com/AicraftersLab/Article-To-Post/internal/observability/logging"
	"github.com/AicraftersLab/Article-To-Post/internal/session"
	postUC "github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, cleanup, err := buildService(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build providers", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	store := session.NewStore()
	handler := hhttp.NewRouter(hhttp.RouterConfig{
		Version:       getVersion(),
		TextProvider:  cfg.Providers.TextProvider,
		ImageProvider: cfg.Providers.ImageProvider,
	}, store, svc, logger)

	runServer(ctx, cfg, logger, handler)
}

// buildService assembles the workflow service from the configured
// providers. The returned cleanup releases provider resources.
func buildService(ctx context.Context, cfg config.Config, logger *slog.Logger) (*postUC.Service, func(), error) {
	var textProvider postUC.Summarizer
	switch cfg.Providers.TextProvider {
	case config.ProviderClaude:
		textProvider = summarizer.NewClaude(cfg.Providers.AnthropicKey, cfg.Providers.ClaudeModel)
	default:
		textProvider = summarizer.NewOpenAI(cfg.Providers.OpenAIKey, cfg.Providers.TextModel)
	}

	cleanup := func() {}
	var imageProvider postUC.ImageGenerator
	switch cfg.Providers.ImageProvider {
	case config.ProviderGemini:
		gem, err := imagegen.NewGemini(ctx, cfg.Providers.GeminiKey)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { gem.Close() }
		imageProvider = gem
	default:
		imageProvider = imagegen.NewOpenAI(cfg.Providers.OpenAIKey, cfg.Providers.ImageModel)
	}

	layout := compose.DefaultLayout()
	if cfg.LayoutFile != "" {
		var err error
		layout, err = compose.LoadLayout(cfg.LayoutFile)
		if err != nil {
			return nil, nil, err
		}
	}
	compositor, err := compose.NewCompositor(layout)
	if err != nil {
		return nil, nil, err
	}

	svc := postUC.NewService(
		logger,
		fetcher.NewReadabilityFetcher(fetcher.DefaultConfig()),
		textProvider,
		imageProvider,
		compositor,
		postUC.SummaryParams{
			BulletWords:      cfg.Content.BulletWords,
			DescriptionWords: cfg.Content.DescriptionWords,
			HashtagCount:     cfg.Content.HashtagCount,
			Language:         cfg.Content.Language,
		},
	)
	return svc, cleanup, nil
}

// runServer blocks until SIGINT/SIGTERM, then shuts down gracefully.
func runServer(ctx context.Context, cfg config.Config, logger *slog.Logger, handler http.Handler) {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("text_provider", cfg.Providers.TextProvider),
			slog.String("image_provider", cfg.Providers.ImageProvider),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
