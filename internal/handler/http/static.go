package http

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed web
var webFS embed.FS

// registerStatic serves the embedded single-page UI at the root path.
func registerStatic(mux *http.ServeMux) {
	content, err := fs.Sub(webFS, "web")
	if err != nil {
		// The embedded tree is fixed at build time; this cannot fail at runtime.
		panic(err)
	}
	mux.Handle("GET /", http.FileServerFS(content))
}
