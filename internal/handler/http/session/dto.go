// Package session provides HTTP handlers for the workflow session API:
// creating sessions, providing article content, generating and editing the
// summary, generating the background image, managing the logo, and
// finalizing the post.
package session

import (
	"errors"
	"net/http"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	sess "github.com/AicraftersLab/Article-To-Post/internal/session"
)

// articleRequest selects exactly one input method: a URL to fetch or raw
// pasted text.
type articleRequest struct {
	URL  string `json:"url,omitempty"`
	Text string `json:"text,omitempty"`
}

// summaryRequest carries optional generation overrides. Zero values fall
// back to the configured defaults.
type summaryRequest struct {
	BulletWords      int    `json:"bullet_words,omitempty"`
	DescriptionWords int    `json:"description_words,omitempty"`
	HashtagCount     int    `json:"hashtag_count,omitempty"`
	Language         string `json:"language,omitempty"`
}

// finalDTO describes a finalized post without its pixels; the binary is
// served by the download endpoint.
type finalDTO struct {
	Category   string `json:"category"`
	Bytes      int    `json:"bytes"`
	ComposedAt string `json:"composed_at"`
	Download   string `json:"download"`
}

// imageDTO describes a generated background image.
type imageDTO struct {
	Provider    string `json:"provider"`
	Prompt      string `json:"prompt"`
	Bytes       int    `json:"bytes"`
	GeneratedAt string `json:"generated_at"`
	Preview     string `json:"preview"`
}

// statusFromError maps domain error families to HTTP status codes.
// Fetch problems are the caller's input (422), provider failures are a bad
// gateway (502), compositing is internal (500), and guard violations are a
// workflow conflict (409).
func statusFromError(err error) int {
	switch {
	case errors.Is(err, sess.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrStepNotReady):
		return http.StatusConflict
	case errors.Is(err, entity.ErrFetch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
