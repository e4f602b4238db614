package post

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/observability/logging"
	"github.com/AicraftersLab/Article-To-Post/internal/observability/metrics"
	"github.com/AicraftersLab/Article-To-Post/internal/session"
)

// Service sequences the workflow steps against a session: provide article,
// generate summary, generate image, finalize. A failed step leaves the
// session exactly as it was.
type Service struct {
	logger     *slog.Logger
	fetcher    ContentFetcher
	summarizer Summarizer
	imageGen   ImageGenerator
	compositor Compositor
	defaults   SummaryParams
	now        func() time.Time
}

// NewService wires the workflow with its providers. defaults supplies the
// word and hashtag budgets used when a request does not override them.
func NewService(
	logger *slog.Logger,
	fetcher ContentFetcher,
	summarizer Summarizer,
	imageGen ImageGenerator,
	compositor Compositor,
	defaults SummaryParams,
) *Service {
	return &Service{
		logger:     logger,
		fetcher:    fetcher,
		summarizer: summarizer,
		imageGen:   imageGen,
		compositor: compositor,
		defaults:   defaults,
		now:        time.Now,
	}
}

// ProvideArticleURL fetches and extracts the article behind url into the
// session. On fetch failure the session keeps its previous content.
func (s *Service) ProvideArticleURL(ctx context.Context, st *session.State, url string) (entity.ArticleContent, error) {
	start := time.Now()
	article, err := s.fetcher.FetchArticle(ctx, url)
	metrics.RecordArticleFetch(err == nil, time.Since(start))
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "article fetch failed", "url", url, "error", err)
		return entity.ArticleContent{}, err
	}

	st.SetArticle(article)
	s.log(ctx).InfoContext(ctx, "article fetched",
		"session_id", st.ID(),
		"url", url,
		"chars", len(article.Text),
	)
	return article, nil
}

// ProvideArticleText stores pasted text as the session's article content.
// The fetcher is never involved.
func (s *Service) ProvideArticleText(ctx context.Context, st *session.State, text string) (entity.ArticleContent, error) {
	article := entity.ArticleContent{Text: strings.TrimSpace(text), FetchedAt: s.now()}
	if err := article.Validate(); err != nil {
		return entity.ArticleContent{}, err
	}

	st.SetArticle(article)
	s.log(ctx).InfoContext(ctx, "article text provided", "session_id", st.ID(), "chars", len(article.Text))
	return article, nil
}

// GenerateSummary runs the summarizer over the session's article. Zero
// fields in override fall back to the configured defaults.
func (s *Service) GenerateSummary(ctx context.Context, st *session.State, override SummaryParams) (entity.SummaryBundle, error) {
	article, ok := st.Article()
	if !ok {
		return entity.SummaryBundle{}, fmt.Errorf("%w: provide article content before generating a summary", entity.ErrStepNotReady)
	}

	params := s.mergeParams(override)
	start := time.Now()
	bundle, err := s.summarizer.Summarize(ctx, article.Text, params)
	metrics.RecordSummarize(s.summarizer.Provider(), err == nil, time.Since(start))
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "summary generation failed",
			"session_id", st.ID(),
			"provider", s.summarizer.Provider(),
			"error", err,
		)
		return entity.SummaryBundle{}, err
	}

	st.SetBundle(bundle)
	s.log(ctx).InfoContext(ctx, "summary generated",
		"session_id", st.ID(),
		"provider", s.summarizer.Provider(),
		"bullets", len(bundle.Bullets),
		"hashtags", len(bundle.Hashtags),
		"category", bundle.Category,
	)
	return bundle, nil
}

// EditSummary replaces the session's summary bundle with user edits. The
// category is normalized to the allowed set.
func (s *Service) EditSummary(ctx context.Context, st *session.State, bundle entity.SummaryBundle) (entity.SummaryBundle, error) {
	if _, ok := st.Bundle(); !ok {
		return entity.SummaryBundle{}, fmt.Errorf("%w: generate a summary before editing it", entity.ErrStepNotReady)
	}
	if err := bundle.Validate(); err != nil {
		return entity.SummaryBundle{}, err
	}

	bundle.Category = bundle.NormalizeCategory()
	st.SetBundle(bundle)
	s.log(ctx).InfoContext(ctx, "summary edited", "session_id", st.ID())
	return bundle, nil
}

// GenerateImage produces a background image from the session's summary.
// Requires a description; an existing finalized post stays untouched.
func (s *Service) GenerateImage(ctx context.Context, st *session.State) (entity.GeneratedImage, error) {
	bundle, ok := st.Bundle()
	if !ok || bundle.Description == "" {
		return entity.GeneratedImage{}, fmt.Errorf("%w: a summary with a description is required before image generation", entity.ErrStepNotReady)
	}

	prompt := buildImagePrompt(bundle)
	start := time.Now()
	img, err := s.imageGen.GenerateImage(ctx, prompt)
	metrics.RecordImageGeneration(s.imageGen.Provider(), err == nil, time.Since(start))
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "image generation failed",
			"session_id", st.ID(),
			"provider", s.imageGen.Provider(),
			"error", err,
		)
		return entity.GeneratedImage{}, err
	}

	st.SetImage(img)
	s.log(ctx).InfoContext(ctx, "image generated",
		"session_id", st.ID(),
		"provider", img.Provider,
		"bytes", len(img.PNG),
	)
	return img, nil
}

// SetLogo stores a logo for the final composite. The data must decode as a
// raster image.
func (s *Service) SetLogo(ctx context.Context, st *session.State, data []byte) error {
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return &entity.ValidationError{Field: "logo", Message: "logo must be a PNG or JPEG image"}
	}
	st.SetLogo(data)
	s.log(ctx).InfoContext(ctx, "logo set", "session_id", st.ID(), "bytes", len(data))
	return nil
}

// RemoveLogo drops the session's logo.
func (s *Service) RemoveLogo(ctx context.Context, st *session.State) {
	st.RemoveLogo()
	s.log(ctx).InfoContext(ctx, "logo removed", "session_id", st.ID())
}

// Finalize composites the final post from the session's image and summary.
// Reachable only when both exist.
func (s *Service) Finalize(ctx context.Context, st *session.State) (entity.FinalPost, error) {
	if !st.CanFinalize() {
		return entity.FinalPost{}, fmt.Errorf("%w: both a summary and a generated image are required to finalize", entity.ErrStepNotReady)
	}
	bundle, _ := st.Bundle()
	img, _ := st.Image()

	date := s.now().Format("02/01/2006")
	start := time.Now()
	png, err := s.compositor.Compose(img.PNG, bundle, st.Logo(), date)
	metrics.RecordComposite(err == nil, time.Since(start))
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "compositing failed", "session_id", st.ID(), "error", err)
		return entity.FinalPost{}, err
	}

	post := entity.FinalPost{
		PNG:        png,
		Category:   bundle.NormalizeCategory(),
		ComposedAt: s.now(),
	}
	st.SetFinal(post)
	s.log(ctx).InfoContext(ctx, "post finalized", "session_id", st.ID(), "bytes", len(png))
	return post, nil
}

// log returns the service logger enriched with the request ID when the
// context carries one.
func (s *Service) log(ctx context.Context) *slog.Logger {
	return logging.WithRequestID(ctx, s.logger)
}

func (s *Service) mergeParams(override SummaryParams) SummaryParams {
	params := s.defaults
	if override.BulletWords > 0 {
		params.BulletWords = override.BulletWords
	}
	if override.DescriptionWords > 0 {
		params.DescriptionWords = override.DescriptionWords
	}
	if override.HashtagCount > 0 {
		params.HashtagCount = override.HashtagCount
	}
	if override.Language != "" {
		params.Language = override.Language
	}
	return params
}

// buildImagePrompt turns the summary into an image prompt. The constraints
// keep providers from rendering text or identifiable faces, which the
// overlay step would clash with.
func buildImagePrompt(bundle entity.SummaryBundle) string {
	var b strings.Builder
	b.WriteString("Professional editorial news photograph illustrating: ")
	b.WriteString(bundle.Description)
	if len(bundle.Bullets) > 0 {
		b.WriteString(" Key elements: ")
		b.WriteString(strings.Join(bundle.Bullets, "; "))
		b.WriteString(".")
	}
	b.WriteString(" Photorealistic, natural lighting, high detail.")
	b.WriteString(" Strictly no text, no letters, no words, no watermarks,")
	b.WriteString(" no captions, and no recognizable faces in the image.")
	return b.String()
}
