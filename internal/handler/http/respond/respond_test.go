package respond

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, rec.Body.String())
}

func TestJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSafeErrorPassesDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"validation", &entity.ValidationError{Field: "url", Message: "scheme must be http or https"}, http.StatusBadRequest, "scheme must be http"},
		{"step guard", fmt.Errorf("%w: generate a summary first", entity.ErrStepNotReady), http.StatusConflict, "generate a summary first"},
		{"fetch", fmt.Errorf("%w: status 404", entity.ErrFetch), http.StatusUnprocessableEntity, "status 404"},
		{"generation", fmt.Errorf("%w: model timeout", entity.ErrGeneration), http.StatusBadGateway, "model timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			SafeError(rec, tt.code, tt.err)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestSafeErrorMasksInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusInternalServerError, errors.New("pipe burst at /etc/secrets"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "secrets")
}

func TestSafeErrorMasks5xxDomainErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusInternalServerError, fmt.Errorf("%w: draw failed", entity.ErrImage))

	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "draw failed")
}

func TestSafeErrorNilIsNoop(t *testing.T) {
	rec := httptest.NewRecorder()
	SafeError(rec, http.StatusBadRequest, nil)
	assert.Empty(t, rec.Body.String())
}
