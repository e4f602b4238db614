package session

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/handler/http/respond"
	sess "github.com/AicraftersLab/Article-To-Post/internal/session"
	postUC "github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
)

type GenerateSummaryHandler struct {
	Store *sess.Store
	Svc   *postUC.Service
}

// ServeHTTP generates a summary bundle from the session's article. The body
// is optional; when present it overrides the configured word and hashtag
// budgets.
func (h GenerateSummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}

	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respond.SafeError(w, http.StatusBadRequest,
			&entity.ValidationError{Field: "body", Message: "request body must be valid JSON"})
		return
	}

	bundle, err := h.Svc.GenerateSummary(r.Context(), state, postUC.SummaryParams{
		BulletWords:      req.BulletWords,
		DescriptionWords: req.DescriptionWords,
		HashtagCount:     req.HashtagCount,
		Language:         req.Language,
	})
	if err != nil {
		respond.SafeError(w, statusFromError(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, bundle)
}

type EditSummaryHandler struct {
	Store *sess.Store
	Svc   *postUC.Service
}

// ServeHTTP replaces the session's summary bundle with user edits.
func (h EditSummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}

	var bundle entity.SummaryBundle
	if err := json.NewDecoder(r.Body).Decode(&bundle); err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			&entity.ValidationError{Field: "body", Message: "request body must be valid JSON"})
		return
	}

	edited, err := h.Svc.EditSummary(r.Context(), state, bundle)
	if err != nil {
		respond.SafeError(w, statusFromError(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, edited)
}
