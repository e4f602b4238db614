package summarizer

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
	"github.com/AicraftersLab/Article-To-Post/internal/utils/text"
)

// parseBundle extracts a SummaryBundle from raw model output. Models
// occasionally wrap JSON in markdown fences or prepend prose despite
// instructions, so extraction is tolerant: fences are stripped and the
// first JSON object in the output is used.
//
// The hashtag count is the one contractual field: more than requested is
// trimmed, fewer is a generation error. Word budgets are best effort.
func parseBundle(raw string, params post.SummaryParams) (entity.SummaryBundle, error) {
	doc := extractJSON(raw)
	if !gjson.Valid(doc) {
		return entity.SummaryBundle{}, fmt.Errorf("%w: model response is not valid JSON", entity.ErrGeneration)
	}

	var bundle entity.SummaryBundle

	for _, b := range gjson.Get(doc, "bullets").Array() {
		if s := strings.TrimSpace(b.String()); s != "" {
			bundle.Bullets = append(bundle.Bullets, s)
		}
	}
	bundle.Description = strings.TrimSpace(gjson.Get(doc, "description").String())
	bundle.Category = strings.TrimSpace(gjson.Get(doc, "category").String())

	hashtags := gjson.Get(doc, "hashtags")
	if hashtags.IsArray() {
		for _, h := range hashtags.Array() {
			if tag := text.NormalizeHashtag(h.String()); tag != "" {
				bundle.Hashtags = append(bundle.Hashtags, tag)
			}
		}
	} else {
		// Some models return hashtags as one space-separated string.
		bundle.Hashtags = text.ExtractHashtags(hashtags.String())
	}

	if len(bundle.Bullets) == 0 {
		return entity.SummaryBundle{}, fmt.Errorf("%w: model returned no bullets", entity.ErrGeneration)
	}
	if bundle.Description == "" {
		return entity.SummaryBundle{}, fmt.Errorf("%w: model returned no description", entity.ErrGeneration)
	}
	if len(bundle.Hashtags) < params.HashtagCount {
		return entity.SummaryBundle{}, fmt.Errorf("%w: requested %d hashtags, model returned %d",
			entity.ErrGeneration, params.HashtagCount, len(bundle.Hashtags))
	}
	bundle.Hashtags = bundle.Hashtags[:params.HashtagCount]
	bundle.Category = bundle.NormalizeCategory()

	return bundle, nil
}

// extractJSON strips markdown fences and trims to the outermost JSON object.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
