package summarizer

import (
	"fmt"
	"strings"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
	"github.com/AicraftersLab/Article-To-Post/internal/utils/text"
)

// maxArticleRunes bounds the article text included in a prompt so a long
// page never blows the provider's context window.
const maxArticleRunes = 10000

const systemPrompt = "You are a skilled social media content creator. " +
	"You always answer with a single JSON object and nothing else."

var languageNames = map[string]string{
	"en": "English",
	"fr": "French",
}

// buildPrompt constructs the single-call instruction that yields all three
// artifacts plus the category in one parseable JSON document.
func buildPrompt(article string, params post.SummaryParams) string {
	lang := languageNames[params.Language]
	if lang == "" {
		lang = languageNames["en"]
	}

	var sb strings.Builder
	sb.WriteString("Summarize the following article for a social media post. Respond with a JSON object with exactly these keys:\n")
	sb.WriteString(fmt.Sprintf("- \"bullets\": an array of 1 to 3 concise key points in %s, each approximately %d words, plain text without bullet markers.\n",
		lang, params.BulletWords))
	sb.WriteString(fmt.Sprintf("- \"description\": an engaging description in %s of approximately %d words, written as a compelling snippet from the article itself. Do NOT start with phrases like 'This article discusses'.\n",
		lang, params.DescriptionWords))
	sb.WriteString(fmt.Sprintf("- \"hashtags\": an array of exactly %d relevant hashtags for the %s audience, each starting with '#', no spaces inside a hashtag.\n",
		params.HashtagCount, lang))
	sb.WriteString(fmt.Sprintf("- \"category\": the single most relevant category key from this list: %s.\n",
		strings.Join(entity.AllowedCategories, ", ")))
	sb.WriteString("Return ONLY the JSON object, no markdown fences, no explanations.\n\nArticle:\n")
	sb.WriteString(text.Truncate(article, maxArticleRunes))
	return sb.String()
}
