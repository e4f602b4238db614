package summarizer

import (
	"context"
	"strings"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
)

// Noop is a summarizer that derives a bundle from the article text without
// calling any provider. It exists for local development and tests.
type Noop struct{}

// Provider implements post.Summarizer.
func (Noop) Provider() string { return "noop" }

// Summarize builds a deterministic bundle from the first words of the
// article.
func (Noop) Summarize(_ context.Context, article string, params post.SummaryParams) (entity.SummaryBundle, error) {
	words := strings.Fields(article)
	n := params.BulletWords
	if n <= 0 || n > len(words) {
		n = len(words)
	}

	tags := make([]string, 0, params.HashtagCount)
	for i := 0; i < params.HashtagCount; i++ {
		tags = append(tags, "#placeholder")
	}

	return entity.SummaryBundle{
		Bullets:     []string{strings.Join(words[:n], " ")},
		Description: article,
		Hashtags:    tags,
		Category:    entity.DefaultCategory,
	}, nil
}
