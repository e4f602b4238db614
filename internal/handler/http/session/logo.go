package session

import (
	"io"
	"net/http"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/handler/http/respond"
	sess "github.com/AicraftersLab/Article-To-Post/internal/session"
	postUC "github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
)

type SetLogoHandler struct {
	Store *sess.Store
	Svc   *postUC.Service
}

// ServeHTTP stores a logo for the session. The body is the raw image bytes
// (PNG or JPEG); the outer middleware caps the size.
func (h SetLogoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		respond.SafeError(w, http.StatusRequestEntityTooLarge,
			&entity.ValidationError{Field: "logo", Message: "logo upload failed or is too large"})
		return
	}
	if len(data) == 0 {
		respond.SafeError(w, http.StatusBadRequest,
			&entity.ValidationError{Field: "logo", Message: "logo body cannot be empty"})
		return
	}

	if err := h.Svc.SetLogo(r.Context(), state, data); err != nil {
		respond.SafeError(w, statusFromError(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, state.Snapshot())
}

type RemoveLogoHandler struct {
	Store *sess.Store
	Svc   *postUC.Service
}

func (h RemoveLogoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}
	h.Svc.RemoveLogo(r.Context(), state)
	w.WriteHeader(http.StatusNoContent)
}
