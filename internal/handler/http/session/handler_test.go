package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	sess "github.com/AicraftersLab/Article-To-Post/internal/session"
	postUC "github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
)

type stubFetcher struct{ err error }

func (f stubFetcher) FetchArticle(_ context.Context, url string) (entity.ArticleContent, error) {
	if f.err != nil {
		return entity.ArticleContent{}, f.err
	}
	return entity.ArticleContent{SourceURL: url, Title: "Title", Text: "Extracted body.", FetchedAt: time.Now()}, nil
}

type stubSummarizer struct{ err error }

func (s stubSummarizer) Summarize(_ context.Context, _ string, _ postUC.SummaryParams) (entity.SummaryBundle, error) {
	if s.err != nil {
		return entity.SummaryBundle{}, s.err
	}
	return entity.SummaryBundle{
		Bullets:     []string{"Point one", "Point two"},
		Description: "A description.",
		Hashtags:    []string{"#a", "#b", "#c"},
		Category:    "sports",
	}, nil
}

func (stubSummarizer) Provider() string { return "stub" }

type stubImageGen struct{ err error }

func (g stubImageGen) GenerateImage(_ context.Context, prompt string) (entity.GeneratedImage, error) {
	if g.err != nil {
		return entity.GeneratedImage{}, g.err
	}
	return entity.GeneratedImage{Provider: "stub", Prompt: prompt, PNG: pngBytes(), GeneratedAt: time.Now()}, nil
}

func (stubImageGen) Provider() string { return "stub" }

type stubCompositor struct{}

func (stubCompositor) Compose(background []byte, _ entity.SummaryBundle, _ []byte, _ string) ([]byte, error) {
	return background, nil
}

func pngBytes() []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	return buf.Bytes()
}

type env struct {
	mux   *http.ServeMux
	store *sess.Store
}

func newEnv(t *testing.T, fetchErr, sumErr, imgErr error) *env {
	t.Helper()
	store := sess.NewStore()
	svc := postUC.NewService(
		slog.New(slog.DiscardHandler),
		stubFetcher{fetchErr}, stubSummarizer{sumErr}, stubImageGen{imgErr}, stubCompositor{},
		postUC.SummaryParams{BulletWords: 10, DescriptionWords: 50, HashtagCount: 5, Language: "en"},
	)
	mux := http.NewServeMux()
	Register(mux, store, svc)
	return &env{mux: mux, store: store}
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func (e *env) createSession(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var snap sess.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap.ID
}

func TestFullWorkflow(t *testing.T) {
	e := newEnv(t, nil, nil, nil)
	id := e.createSession(t)

	rec := e.do(t, http.MethodPost, "/api/sessions/"+id+"/article", articleRequest{Text: "Hello world."})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/sessions/"+id+"/summary", summaryRequest{BulletWords: 5})
	require.Equal(t, http.StatusOK, rec.Code)
	var bundle entity.SummaryBundle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bundle))
	assert.Equal(t, "A description.", bundle.Description)

	rec = e.do(t, http.MethodPost, "/api/sessions/"+id+"/image", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/sessions/"+id+"/image", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = e.do(t, http.MethodPost, "/api/sessions/"+id+"/finalize", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var final finalDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &final))
	assert.Equal(t, "sports", final.Category)

	rec = e.do(t, http.MethodGet, "/api/sessions/"+id+"/post", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "post.png")
}

func TestUnknownSessionIs404(t *testing.T) {
	e := newEnv(t, nil, nil, nil)
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/sessions/nope"},
		{http.MethodPost, "/api/sessions/nope/summary"},
		{http.MethodPost, "/api/sessions/nope/finalize"},
		{http.MethodGet, "/api/sessions/nope/post"},
	} {
		rec := e.do(t, route.method, route.path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestArticleInputExclusive(t *testing.T) {
	e := newEnv(t, nil, nil, nil)
	id := e.createSession(t)

	rec := e.do(t, http.MethodPost, "/api/sessions/"+id+"/article", articleRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/sessions/"+id+"/article",
		articleRequest{URL: "https://example.com", Text: "both"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/sessions/"+id+"/article", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFetchErrorIs422AndKeepsState(t *testing.T) {
	e := newEnv(t, fmt.Errorf("%w: host unreachable", entity.ErrFetch), nil, nil)
	id := e.createSession(t)

	rec := e.do(t, http.MethodPost, "/api/sessions/"+id+"/article",
		articleRequest{URL: "https://unreachable.example"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "host unreachable")

	state, err := e.store.Get(id)
	require.NoError(t, err)
	_, ok := state.Article()
	assert.False(t, ok)
}

func TestGenerationErrorIs502(t *testing.T) {
	e := newEnv(t, nil, fmt.Errorf("%w: model timeout", entity.ErrGeneration), nil)
	id := e.createSession(t)

	rec := e.do(t, http.MethodPost, "/api/sessions/"+id+"/article", articleRequest{Text: "Hello."})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/api/sessions/"+id+"/summary", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGuardViolationsAre409(t *testing.T) {
	e := newEnv(t, nil, nil, nil)
	id := e.createSession(t)

	rec := e.do(t, http.MethodPost, "/api/sessions/"+id+"/summary", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "summary before article")

	rec = e.do(t, http.MethodPost, "/api/sessions/"+id+"/image", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "image before summary")

	rec = e.do(t, http.MethodPost, "/api/sessions/"+id+"/finalize", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "finalize before image")
}

func TestEditSummary(t *testing.T) {
	e := newEnv(t, nil, nil, nil)
	id := e.createSession(t)
	e.do(t, http.MethodPost, "/api/sessions/"+id+"/article", articleRequest{Text: "Hello."})
	e.do(t, http.MethodPost, "/api/sessions/"+id+"/summary", nil)

	edited := entity.SummaryBundle{
		Bullets:     []string{"Edited"},
		Description: "Edited description.",
		Hashtags:    []string{"#x"},
		Category:    "CULTURE",
	}
	rec := e.do(t, http.MethodPut, "/api/sessions/"+id+"/summary", edited)
	require.Equal(t, http.StatusOK, rec.Code)

	var got entity.SummaryBundle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "culture", got.Category)

	edited.Description = ""
	rec = e.do(t, http.MethodPut, "/api/sessions/"+id+"/summary", edited)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoRoundTrip(t *testing.T) {
	e := newEnv(t, nil, nil, nil)
	id := e.createSession(t)

	rec := e.do(t, http.MethodPut, "/api/sessions/"+id+"/logo", pngBytes())
	require.Equal(t, http.StatusOK, rec.Code)
	var snap sess.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.True(t, snap.HasLogo)

	rec = e.do(t, http.MethodPut, "/api/sessions/"+id+"/logo", []byte("not an image"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/sessions/"+id+"/logo", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestResetKeepsLogo(t *testing.T) {
	e := newEnv(t, nil, nil, nil)
	id := e.createSession(t)
	e.do(t, http.MethodPut, "/api/sessions/"+id+"/logo", pngBytes())
	e.do(t, http.MethodPost, "/api/sessions/"+id+"/article", articleRequest{Text: "Hello."})

	rec := e.do(t, http.MethodPost, "/api/sessions/"+id+"/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap sess.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.False(t, snap.HasArticle)
	assert.True(t, snap.HasLogo)
	assert.Equal(t, sess.StepContent, snap.Step)
}

func TestDeleteSession(t *testing.T) {
	e := newEnv(t, nil, nil, nil)
	id := e.createSession(t)

	rec := e.do(t, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{sess.ErrNotFound, http.StatusNotFound},
		{&entity.ValidationError{Field: "x", Message: "y"}, http.StatusBadRequest},
		{fmt.Errorf("%w: wait", entity.ErrStepNotReady), http.StatusConflict},
		{fmt.Errorf("%w: boom", entity.ErrFetch), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: boom", entity.ErrGeneration), http.StatusBadGateway},
		{fmt.Errorf("%w: boom", entity.ErrImage), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromError(tt.err), tt.err.Error())
	}
}

func TestDownloadBeforeFinalizeIs404(t *testing.T) {
	e := newEnv(t, nil, nil, nil)
	id := e.createSession(t)

	rec := e.do(t, http.MethodGet, "/api/sessions/"+id+"/post", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "no finalized post"))
}
