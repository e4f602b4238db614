package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AicraftersLab/Article-To-Post/internal/handler/http/requestid"
	sessionAPI "github.com/AicraftersLab/Article-To-Post/internal/handler/http/session"
	sess "github.com/AicraftersLab/Article-To-Post/internal/session"
	postUC "github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
)

// maxBodyBytes caps request bodies. Logo uploads are the largest payload.
const maxBodyBytes = 8 << 20

// RouterConfig carries the handler-level settings.
type RouterConfig struct {
	Version       string
	TextProvider  string
	ImageProvider string
}

// NewRouter assembles the full HTTP surface: workflow API, health check,
// Prometheus metrics, and the embedded web UI, wrapped in the standard
// middleware chain.
func NewRouter(cfg RouterConfig, store *sess.Store, svc *postUC.Service, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", HealthHandler{
		Version:       cfg.Version,
		TextProvider:  cfg.TextProvider,
		ImageProvider: cfg.ImageProvider,
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	sessionAPI.Register(mux, store, svc)
	registerStatic(mux)

	var handler http.Handler = mux
	handler = LimitRequestBody(maxBodyBytes)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	handler = requestid.Middleware(handler)
	return handler
}
