package post

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/session"
)

type stubFetcher struct {
	article entity.ArticleContent
	err     error
	calls   int
}

func (f *stubFetcher) FetchArticle(_ context.Context, url string) (entity.ArticleContent, error) {
	f.calls++
	if f.err != nil {
		return entity.ArticleContent{}, f.err
	}
	article := f.article
	article.SourceURL = url
	return article, nil
}

type stubSummarizer struct {
	bundle entity.SummaryBundle
	err    error
	params SummaryParams
	calls  int
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string, params SummaryParams) (entity.SummaryBundle, error) {
	s.calls++
	s.params = params
	return s.bundle, s.err
}

func (s *stubSummarizer) Provider() string { return "stub" }

type stubImageGen struct {
	err    error
	prompt string
	calls  int
}

func (g *stubImageGen) GenerateImage(_ context.Context, prompt string) (entity.GeneratedImage, error) {
	g.calls++
	g.prompt = prompt
	if g.err != nil {
		return entity.GeneratedImage{}, g.err
	}
	return entity.GeneratedImage{
		Provider:    "stub",
		Prompt:      prompt,
		PNG:         []byte{1, 2, 3},
		GeneratedAt: time.Now(),
	}, nil
}

func (g *stubImageGen) Provider() string { return "stub" }

type stubCompositor struct {
	err  error
	date string
}

func (c *stubCompositor) Compose(background []byte, _ entity.SummaryBundle, logo []byte, date string) ([]byte, error) {
	c.date = date
	if c.err != nil {
		return nil, c.err
	}
	out := append([]byte("post:"), background...)
	if logo != nil {
		out = append(out, logo...)
	}
	return out, nil
}

type fixture struct {
	svc        *Service
	fetcher    *stubFetcher
	summarizer *stubSummarizer
	imageGen   *stubImageGen
	compositor *stubCompositor
	st         *session.State
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		fetcher: &stubFetcher{article: entity.ArticleContent{
			Title: "Title",
			Text:  "Extracted article body text.",
		}},
		summarizer: &stubSummarizer{bundle: entity.SummaryBundle{
			Bullets:     []string{"First point", "Second point"},
			Description: "A concise description.",
			Hashtags:    []string{"#a", "#b", "#c"},
			Category:    "economie",
		}},
		imageGen:   &stubImageGen{},
		compositor: &stubCompositor{},
		st:         session.NewStore().Create(),
	}
	f.svc = NewService(
		slog.New(slog.DiscardHandler),
		f.fetcher, f.summarizer, f.imageGen, f.compositor,
		SummaryParams{BulletWords: 10, DescriptionWords: 50, HashtagCount: 5, Language: "en"},
	)
	return f
}

func (f *fixture) advanceToImage(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.ProvideArticleText(ctx, f.st, "Some article text to summarize.")
	require.NoError(t, err)
	_, err = f.svc.GenerateSummary(ctx, f.st, SummaryParams{})
	require.NoError(t, err)
	_, err = f.svc.GenerateImage(ctx, f.st)
	require.NoError(t, err)
}

func TestProvideArticleURL(t *testing.T) {
	f := newFixture(t)

	article, err := f.svc.ProvideArticleURL(context.Background(), f.st, "https://example.com/article")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/article", article.SourceURL)
	assert.NotEmpty(t, article.Text)

	got, ok := f.st.Article()
	require.True(t, ok)
	assert.Equal(t, article, got)
}

func TestFetchErrorLeavesSessionUnchanged(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ProvideArticleText(context.Background(), f.st, "Existing content.")
	require.NoError(t, err)

	f.fetcher.err = fmt.Errorf("%w: connection refused", entity.ErrFetch)
	_, err = f.svc.ProvideArticleURL(context.Background(), f.st, "https://unreachable.example")
	assert.ErrorIs(t, err, entity.ErrFetch)

	article, ok := f.st.Article()
	require.True(t, ok, "prior article must survive a failed fetch")
	assert.Equal(t, "Existing content.", article.Text)
}

func TestRawTextNeverInvokesFetcher(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ProvideArticleText(context.Background(), f.st, "Hello world.")
	require.NoError(t, err)
	_, err = f.svc.GenerateSummary(context.Background(), f.st, SummaryParams{BulletWords: 5})
	require.NoError(t, err)

	assert.Equal(t, 0, f.fetcher.calls)
	assert.Equal(t, 5, f.summarizer.params.BulletWords)
	assert.Equal(t, 5, f.summarizer.params.HashtagCount, "unset overrides fall back to defaults")
}

func TestProvideArticleTextRejectsBlank(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ProvideArticleText(context.Background(), f.st, "   \n ")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestGenerateSummaryRequiresArticle(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GenerateSummary(context.Background(), f.st, SummaryParams{})
	assert.ErrorIs(t, err, entity.ErrStepNotReady)
	assert.Equal(t, 0, f.summarizer.calls)
}

func TestGenerateSummaryErrorLeavesBundle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.ProvideArticleText(ctx, f.st, "Some text.")
	require.NoError(t, err)
	_, err = f.svc.GenerateSummary(ctx, f.st, SummaryParams{})
	require.NoError(t, err)

	f.summarizer.err = fmt.Errorf("%w: model timeout", entity.ErrGeneration)
	_, err = f.svc.GenerateSummary(ctx, f.st, SummaryParams{})
	assert.ErrorIs(t, err, entity.ErrGeneration)

	bundle, ok := f.st.Bundle()
	require.True(t, ok)
	assert.Equal(t, "A concise description.", bundle.Description)
}

func TestEditSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.ProvideArticleText(ctx, f.st, "Some text.")
	require.NoError(t, err)
	_, err = f.svc.GenerateSummary(ctx, f.st, SummaryParams{})
	require.NoError(t, err)

	edited := entity.SummaryBundle{
		Bullets:     []string{"Edited point"},
		Description: "Edited description.",
		Hashtags:    []string{"#edited"},
		Category:    "SPORTS",
	}
	got, err := f.svc.EditSummary(ctx, f.st, edited)
	require.NoError(t, err)
	assert.Equal(t, "sports", got.Category, "category normalizes to the allowed set")

	bad := edited
	bad.Description = ""
	_, err = f.svc.EditSummary(ctx, f.st, bad)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestEditSummaryRequiresExistingBundle(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.EditSummary(context.Background(), f.st, entity.SummaryBundle{})
	assert.ErrorIs(t, err, entity.ErrStepNotReady)
}

func TestGenerateImageRequiresDescription(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GenerateImage(context.Background(), f.st)
	assert.ErrorIs(t, err, entity.ErrStepNotReady)
	assert.Equal(t, 0, f.imageGen.calls)
}

func TestGenerateImagePrompt(t *testing.T) {
	f := newFixture(t)
	f.advanceToImage(t)

	assert.Contains(t, f.imageGen.prompt, "A concise description.")
	assert.Contains(t, f.imageGen.prompt, "First point")
	assert.Contains(t, f.imageGen.prompt, "no text")
	assert.Contains(t, f.imageGen.prompt, "no recognizable faces")
}

func TestFinalizeUnreachableWithoutPrerequisites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Finalize(ctx, f.st)
	assert.ErrorIs(t, err, entity.ErrStepNotReady)

	_, err = f.svc.ProvideArticleText(ctx, f.st, "Some text.")
	require.NoError(t, err)
	_, err = f.svc.GenerateSummary(ctx, f.st, SummaryParams{})
	require.NoError(t, err)

	_, err = f.svc.Finalize(ctx, f.st)
	assert.ErrorIs(t, err, entity.ErrStepNotReady, "summary alone must not finalize")
}

func TestFinalize(t *testing.T) {
	f := newFixture(t)
	f.advanceToImage(t)
	f.svc.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

	post, err := f.svc.Finalize(context.Background(), f.st)
	require.NoError(t, err)
	assert.Equal(t, "economie", post.Category)
	assert.NotEmpty(t, post.PNG)
	assert.Equal(t, "30/08/2026", f.compositor.date)

	stored, ok := f.st.Final()
	require.True(t, ok)
	assert.Equal(t, post.PNG, stored.PNG)
}

func TestImageRegenerationLeavesFinalPost(t *testing.T) {
	f := newFixture(t)
	f.advanceToImage(t)
	ctx := context.Background()

	_, err := f.svc.Finalize(ctx, f.st)
	require.NoError(t, err)
	first, _ := f.st.Final()

	edited, _ := f.st.Bundle()
	edited.Description = "A different description."
	_, err = f.svc.EditSummary(ctx, f.st, edited)
	require.NoError(t, err)
	_, err = f.svc.GenerateImage(ctx, f.st)
	require.NoError(t, err)

	current, ok := f.st.Final()
	require.True(t, ok, "finalized post stays until finalize runs again")
	assert.Equal(t, first.PNG, current.PNG)

	_, err = f.svc.Finalize(ctx, f.st)
	require.NoError(t, err)
}

func TestCompositeErrorLeavesFinal(t *testing.T) {
	f := newFixture(t)
	f.advanceToImage(t)
	ctx := context.Background()

	_, err := f.svc.Finalize(ctx, f.st)
	require.NoError(t, err)

	f.compositor.err = fmt.Errorf("%w: bad dimensions", entity.ErrImage)
	_, err = f.svc.Finalize(ctx, f.st)
	assert.ErrorIs(t, err, entity.ErrImage)

	_, ok := f.st.Final()
	assert.True(t, ok, "a failed composite keeps the previous final post")
}

func TestSetLogoValidatesImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.SetLogo(ctx, f.st, []byte("not an image"))
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	assert.Nil(t, f.st.Logo())

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	require.NoError(t, f.svc.SetLogo(ctx, f.st, buf.Bytes()))
	assert.NotNil(t, f.st.Logo())

	f.svc.RemoveLogo(ctx, f.st)
	assert.Nil(t, f.st.Logo())
}

func TestFinalizePassesLogoToCompositor(t *testing.T) {
	f := newFixture(t)
	f.advanceToImage(t)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, f.svc.SetLogo(context.Background(), f.st, buf.Bytes()))

	withLogo, err := f.svc.Finalize(context.Background(), f.st)
	require.NoError(t, err)

	f.svc.RemoveLogo(context.Background(), f.st)
	withoutLogo, err := f.svc.Finalize(context.Background(), f.st)
	require.NoError(t, err)

	assert.Greater(t, len(withLogo.PNG), len(withoutLogo.PNG))
}

func TestMergeParams(t *testing.T) {
	f := newFixture(t)

	merged := f.svc.mergeParams(SummaryParams{HashtagCount: 8})
	assert.Equal(t, 10, merged.BulletWords)
	assert.Equal(t, 50, merged.DescriptionWords)
	assert.Equal(t, 8, merged.HashtagCount)
	assert.Equal(t, "en", merged.Language)

	assert.Equal(t, f.svc.defaults, f.svc.mergeParams(SummaryParams{}))
}
