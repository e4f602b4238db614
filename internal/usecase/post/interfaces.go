// Package post implements the use cases of the article-to-post workflow:
// providing article content, generating the summary bundle, generating the
// background image, and compositing the final post. External capabilities
// are expressed as interfaces so either AI provider can be swapped without
// touching the workflow.
package post

import (
	"context"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

// ContentFetcher fetches and extracts the main article text from a URL.
//
// Implementations must validate URLs (SSRF prevention), enforce size limits
// and timeouts, and return clean text without HTML boilerplate. Errors wrap
// entity.ErrFetch.
type ContentFetcher interface {
	// FetchArticle fetches the page at url and extracts the article body.
	FetchArticle(ctx context.Context, url string) (entity.ArticleContent, error)
}

// SummaryParams controls one summary generation call.
type SummaryParams struct {
	// BulletWords is the approximate word budget per bullet.
	BulletWords int
	// DescriptionWords is the approximate word budget for the description.
	DescriptionWords int
	// HashtagCount is the exact number of hashtags requested.
	HashtagCount int
	// Language is the target content language code ("en", "fr").
	Language string
}

// Summarizer turns article text into a SummaryBundle with a single model
// call. Word budgets are best effort; the hashtag count is enforced by the
// implementation (fewer than requested is a generation error).
type Summarizer interface {
	Summarize(ctx context.Context, article string, params SummaryParams) (entity.SummaryBundle, error)

	// Provider returns the provider identifier for logging and metrics.
	Provider() string
}

// ImageGenerator produces a background image for the post. Implementations
// request the nearest resolution the provider supports and rescale to the
// target post size. Errors wrap entity.ErrGeneration.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (entity.GeneratedImage, error)

	// Provider returns the provider identifier for logging and metrics.
	Provider() string
}

// Compositor renders the final post from a background and the generated
// content. It must be deterministic: identical inputs produce byte-identical
// output.
type Compositor interface {
	Compose(background []byte, bundle entity.SummaryBundle, logoPNG []byte, date string) ([]byte, error)
}
