package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AicraftersLab/Article-To-Post/internal/handler/http/respond"
	sess "github.com/AicraftersLab/Article-To-Post/internal/session"
	postUC "github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
)

type FinalizeHandler struct {
	Store *sess.Store
	Svc   *postUC.Service
}

// ServeHTTP composites the final post. Requires both a summary and a
// generated image; otherwise the workflow guard rejects the request.
func (h FinalizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}

	post, err := h.Svc.Finalize(r.Context(), state)
	if err != nil {
		respond.SafeError(w, statusFromError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, finalDTO{
		Category:   post.Category,
		Bytes:      len(post.PNG),
		ComposedAt: post.ComposedAt.UTC().Format(time.RFC3339),
		Download:   fmt.Sprintf("/api/sessions/%s/post", state.ID()),
	})
}

type DownloadHandler struct{ Store *sess.Store }

// ServeHTTP serves the finalized post as a downloadable PNG.
func (h DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}

	post, ok := state.Final()
	if !ok {
		respond.Error(w, http.StatusNotFound, errors.New("no finalized post yet"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="post.png"`)
	_, _ = w.Write(post.PNG)
}
