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

type GenerateImageHandler struct {
	Store *sess.Store
	Svc   *postUC.Service
}

// ServeHTTP generates a background image from the session's summary.
// Clicking again replaces the previous image.
func (h GenerateImageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}

	img, err := h.Svc.GenerateImage(r.Context(), state)
	if err != nil {
		respond.SafeError(w, statusFromError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, imageDTO{
		Provider:    img.Provider,
		Prompt:      img.Prompt,
		Bytes:       len(img.PNG),
		GeneratedAt: img.GeneratedAt.UTC().Format(time.RFC3339),
		Preview:     fmt.Sprintf("/api/sessions/%s/image", state.ID()),
	})
}

type ImagePreviewHandler struct{ Store *sess.Store }

// ServeHTTP serves the generated background as PNG for the preview tab.
func (h ImagePreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}

	img, ok := state.Image()
	if !ok {
		respond.Error(w, http.StatusNotFound, errors.New("no generated image yet"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img.PNG)
}
