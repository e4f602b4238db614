package session

import (
	"net/http"

	"github.com/AicraftersLab/Article-To-Post/internal/handler/http/respond"
	sess "github.com/AicraftersLab/Article-To-Post/internal/session"
)

type CreateHandler struct{ Store *sess.Store }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	state := h.Store.Create()
	respond.JSON(w, http.StatusCreated, state.Snapshot())
}

type GetHandler struct{ Store *sess.Store }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}
	respond.JSON(w, http.StatusOK, state.Snapshot())
}

type DeleteHandler struct{ Store *sess.Store }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Store.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

type ResetHandler struct{ Store *sess.Store }

// ServeHTTP clears every artifact of the session but keeps the logo.
func (h ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, err)
		return
	}
	state.Reset()
	respond.JSON(w, http.StatusOK, state.Snapshot())
}
