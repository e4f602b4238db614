package session

import (
	"encoding/json"
	"net/http"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/handler/http/respond"
	sess "github.com/AicraftersLab/Article-To-Post/internal/session"
	postUC "github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
)

type ArticleHandler struct {
	Store *sess.Store
	Svc   *postUC.Service
}

// ServeHTTP accepts article input for a session. The request carries either
// a URL to fetch or raw text, never both.
func (h ArticleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}

	var req articleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest,
			&entity.ValidationError{Field: "body", Message: "request body must be valid JSON"})
		return
	}
	if (req.URL == "") == (req.Text == "") {
		respond.SafeError(w, http.StatusBadRequest,
			&entity.ValidationError{Field: "input", Message: "provide exactly one of url or text"})
		return
	}

	ctx := r.Context()
	if req.URL != "" {
		article, err := h.Svc.ProvideArticleURL(ctx, state, req.URL)
		if err != nil {
			respond.SafeError(w, statusFromError(err), err)
			return
		}
		respond.JSON(w, http.StatusOK, article)
		return
	}

	article, err := h.Svc.ProvideArticleText(ctx, state, req.Text)
	if err != nil {
		respond.SafeError(w, statusFromError(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, article)
}
