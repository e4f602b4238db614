// Package session holds the per-user workflow state for the three-tab
// flow (generate content, preview image, final output). Each session owns
// its state exclusively; a mutex guards against overlapping requests on
// the same session.
package session

import (
	"sync"
	"time"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

// Step identifies the furthest tab a session can currently open.
type Step string

const (
	StepContent Step = "generate_content"
	StepPreview Step = "preview_image"
	StepFinal   Step = "final_output"
)

// State is the mutable workflow state of one session. Artifacts are set as
// the user advances; editing an upstream artifact invalidates only what
// depends on it, and a finalized post stays until finalize runs again.
type State struct {
	id        string
	createdAt time.Time

	mu        sync.Mutex
	updatedAt time.Time
	article   *entity.ArticleContent
	bundle    *entity.SummaryBundle
	image     *entity.GeneratedImage
	logoPNG   []byte
	final     *entity.FinalPost
}

func newState(id string) *State {
	now := time.Now()
	return &State{id: id, createdAt: now, updatedAt: now}
}

// ID returns the session identifier.
func (s *State) ID() string { return s.id }

// CreatedAt returns the session creation time.
func (s *State) CreatedAt() time.Time { return s.createdAt }

// SetArticle stores fetched or pasted article content and invalidates the
// summary and generated image, which were derived from the old content.
func (s *State) SetArticle(article entity.ArticleContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.article = &article
	s.bundle = nil
	s.image = nil
	s.touch()
}

// Article returns the current article content, if any.
func (s *State) Article() (entity.ArticleContent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.article == nil {
		return entity.ArticleContent{}, false
	}
	return *s.article, true
}

// SetBundle stores a generated or edited summary bundle. The generated
// image is derived from the description, so it is invalidated only when
// the description actually changed.
func (s *State) SetBundle(bundle entity.SummaryBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bundle == nil || s.bundle.Description != bundle.Description {
		s.image = nil
	}
	s.bundle = &bundle
	s.touch()
}

// Bundle returns the current summary bundle, if any.
func (s *State) Bundle() (entity.SummaryBundle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bundle == nil {
		return entity.SummaryBundle{}, false
	}
	return *s.bundle, true
}

// SetImage stores a freshly generated background image. An existing final
// post stays untouched until finalize runs again.
func (s *State) SetImage(img entity.GeneratedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = &img
	s.touch()
}

// Image returns the current generated image, if any.
func (s *State) Image() (entity.GeneratedImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.image == nil {
		return entity.GeneratedImage{}, false
	}
	return *s.image, true
}

// SetLogo stores the logo to composite onto the final post.
func (s *State) SetLogo(png []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoPNG = append([]byte(nil), png...)
	s.touch()
}

// RemoveLogo drops the stored logo.
func (s *State) RemoveLogo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoPNG = nil
	s.touch()
}

// Logo returns a copy of the stored logo, or nil.
func (s *State) Logo() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.logoPNG == nil {
		return nil
	}
	return append([]byte(nil), s.logoPNG...)
}

// SetFinal stores the composited final post.
func (s *State) SetFinal(post entity.FinalPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.final = &post
	s.touch()
}

// Final returns the finalized post, if any.
func (s *State) Final() (entity.FinalPost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.final == nil {
		return entity.FinalPost{}, false
	}
	return *s.final, true
}

// CanPreview reports whether the preview tab is reachable: a summary with
// a description must exist.
func (s *State) CanPreview() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle != nil && s.bundle.Description != ""
}

// CanFinalize reports whether the final tab is reachable: both a non-empty
// summary bundle and a valid generated image must exist.
func (s *State) CanFinalize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canFinalizeLocked()
}

func (s *State) canFinalizeLocked() bool {
	return s.bundle != nil && !s.bundle.Empty() && s.image != nil && s.image.Valid()
}

// Step returns the furthest tab the session can open right now.
func (s *State) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.canFinalizeLocked():
		return StepFinal
	case s.bundle != nil && s.bundle.Description != "":
		return StepPreview
	default:
		return StepContent
	}
}

// Reset clears every artifact but keeps the logo, so a user starting over
// does not have to upload their branding again.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.article = nil
	s.bundle = nil
	s.image = nil
	s.final = nil
	s.touch()
}

// Snapshot is a read-only view of a session for API responses.
type Snapshot struct {
	ID         string                 `json:"id"`
	Step       Step                   `json:"step"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	HasArticle bool                   `json:"has_article"`
	HasImage   bool                   `json:"has_image"`
	HasLogo    bool                   `json:"has_logo"`
	HasFinal   bool                   `json:"has_final"`
	Article    *entity.ArticleContent `json:"article,omitempty"`
	Bundle     *entity.SummaryBundle  `json:"summary,omitempty"`
}

// Snapshot captures the current state for serialization.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
		HasArticle: s.article != nil,
		HasImage:   s.image != nil,
		HasLogo:    s.logoPNG != nil,
		HasFinal:   s.final != nil,
	}
	switch {
	case s.canFinalizeLocked():
		snap.Step = StepFinal
	case s.bundle != nil && s.bundle.Description != "":
		snap.Step = StepPreview
	default:
		snap.Step = StepContent
	}
	if s.article != nil {
		article := *s.article
		snap.Article = &article
	}
	if s.bundle != nil {
		bundle := *s.bundle
		snap.Bundle = &bundle
	}
	return snap
}

func (s *State) touch() { s.updatedAt = time.Now() }
