// Package entity defines the domain model for the article-to-post pipeline:
// the article content fed into generation, the generated summary bundle, the
// AI background image, and the final composited post.
package entity

import (
	"strings"
	"time"
)

// Target canvas for the exported post. Every generated background is
// normalized to this resolution before compositing.
const (
	PostWidth  = 768
	PostHeight = 957
)

// Categories a post can be labeled with. The summarizer picks one; the user
// can override it before finalizing.
var AllowedCategories = []string{
	"Societe", "hi-tech", "sports", "nation", "economie",
	"regions", "culture", "monde", "Sante", "LifeStyle",
}

// DefaultCategory is used when the model returns a category outside
// AllowedCategories.
const DefaultCategory = "Societe"

// ArticleContent is the extracted plain text of an article. Immutable once
// fetched; regeneration replaces the whole value.
type ArticleContent struct {
	// SourceURL is empty when the text was pasted directly.
	SourceURL string `json:"source_url,omitempty"`
	// Title is the extracted headline, empty for pasted text.
	Title string `json:"title,omitempty"`
	Text  string `json:"text"`
	// FetchedAt records when the content entered the session.
	FetchedAt time.Time `json:"fetched_at"`
}

// Validate checks that the article content is usable for generation.
func (a *ArticleContent) Validate() error {
	if strings.TrimSpace(a.Text) == "" {
		return &ValidationError{Field: "text", Message: "article text cannot be empty"}
	}
	return nil
}

// SummaryBundle holds the three generated artifacts plus the editorial
// category recovered for the post label. Each field is independently
// user-editable before the post is finalized.
type SummaryBundle struct {
	Bullets     []string `json:"bullets"`
	Description string   `json:"description"`
	Hashtags    []string `json:"hashtags"`
	Category    string   `json:"category"`
}

// Empty reports whether the bundle carries no generated content.
func (s *SummaryBundle) Empty() bool {
	return s == nil || (len(s.Bullets) == 0 && s.Description == "" && len(s.Hashtags) == 0)
}

// Validate checks that the bundle is complete enough to drive the
// preview and final steps.
func (s *SummaryBundle) Validate() error {
	if len(s.Bullets) == 0 {
		return &ValidationError{Field: "bullets", Message: "at least one bullet is required"}
	}
	for _, b := range s.Bullets {
		if strings.TrimSpace(b) == "" {
			return &ValidationError{Field: "bullets", Message: "bullets cannot be blank"}
		}
	}
	if strings.TrimSpace(s.Description) == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}
	for _, h := range s.Hashtags {
		if !strings.HasPrefix(h, "#") {
			return &ValidationError{Field: "hashtags", Message: "hashtags must start with '#'"}
		}
	}
	return nil
}

// NormalizeCategory returns the bundle category if allowed, otherwise
// DefaultCategory.
func (s *SummaryBundle) NormalizeCategory() string {
	for _, c := range AllowedCategories {
		if strings.EqualFold(c, s.Category) {
			return c
		}
	}
	return DefaultCategory
}

// GeneratedImage is an AI-generated background, already normalized to the
// target post resolution and encoded as PNG.
type GeneratedImage struct {
	// Provider names the backend that produced the image ("openai", "gemini").
	Provider string
	// Prompt is the exact prompt sent to the provider, kept for regeneration.
	Prompt string
	// PNG holds the encoded image at PostWidth x PostHeight.
	PNG         []byte
	GeneratedAt time.Time
}

// Valid reports whether the image carries decodable data.
func (g *GeneratedImage) Valid() bool {
	return g != nil && len(g.PNG) > 0
}

// FinalPost is the terminal artifact: background plus text layer and optional
// logo, ready for download.
type FinalPost struct {
	PNG        []byte
	Category   string
	ComposedAt time.Time
}
