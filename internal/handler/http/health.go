// Package http provides the HTTP surface of the application: the session
// workflow API, health and metrics endpoints, middleware, and the embedded
// web UI.
package http

import (
	"net/http"
	"time"

	"github.com/AicraftersLab/Article-To-Post/internal/handler/http/respond"
)

// HealthResponse is the JSON body of the health check endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus reports one health check item.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler reports process health and which AI providers are wired.
// There is no database or persistent dependency to probe; the checks cover
// provider configuration so a misconfigured deployment is visible.
type HealthHandler struct {
	Version       string
	TextProvider  string
	ImageProvider string
}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	checks := map[string]CheckStatus{
		"text_provider":  providerCheck(h.TextProvider),
		"image_provider": providerCheck(h.ImageProvider),
	}

	status := "healthy"
	code := http.StatusOK
	for _, c := range checks {
		if c.Status != "healthy" {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
	}

	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func providerCheck(name string) CheckStatus {
	if name == "" {
		return CheckStatus{Status: "unhealthy", Message: "provider not configured"}
	}
	return CheckStatus{Status: "healthy", Message: name}
}
