package session

import (
	"net/http"

	sess "github.com/AicraftersLab/Article-To-Post/internal/session"
	postUC "github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
)

// Register registers all session workflow routes with the given mux.
func Register(mux *http.ServeMux, store *sess.Store, svc *postUC.Service) {
	mux.Handle("POST   /api/sessions", CreateHandler{store})
	mux.Handle("GET    /api/sessions/{id}", GetHandler{store})
	mux.Handle("DELETE /api/sessions/{id}", DeleteHandler{store})
	mux.Handle("POST   /api/sessions/{id}/reset", ResetHandler{store})

	mux.Handle("POST   /api/sessions/{id}/article", ArticleHandler{store, svc})
	mux.Handle("POST   /api/sessions/{id}/summary", GenerateSummaryHandler{store, svc})
	mux.Handle("PUT    /api/sessions/{id}/summary", EditSummaryHandler{store, svc})
	mux.Handle("POST   /api/sessions/{id}/image", GenerateImageHandler{store, svc})
	mux.Handle("GET    /api/sessions/{id}/image", ImagePreviewHandler{store})
	mux.Handle("PUT    /api/sessions/{id}/logo", SetLogoHandler{store, svc})
	mux.Handle("DELETE /api/sessions/{id}/logo", RemoveLogoHandler{store, svc})
	mux.Handle("POST   /api/sessions/{id}/finalize", FinalizeHandler{store, svc})
	mux.Handle("GET    /api/sessions/{id}/post", DownloadHandler{store})
}
