package summarizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
	"github.com/AicraftersLab/Article-To-Post/internal/usecase/post"
)

func params(hashtags int) post.SummaryParams {
	return post.SummaryParams{
		BulletWords:      10,
		DescriptionWords: 50,
		HashtagCount:     hashtags,
		Language:         "en",
	}
}

const goodResponse = `{
	"bullets": ["Chip maker unveils new accelerator for data centers"],
	"description": "A new accelerator promises to double training throughput while cutting power draw.",
	"hashtags": ["#AI", "#Chips", "#DataCenter"],
	"category": "hi-tech"
}`

func TestParseBundleCleanJSON(t *testing.T) {
	bundle, err := parseBundle(goodResponse, params(3))

	require.NoError(t, err)
	want := entity.SummaryBundle{
		Bullets:     []string{"Chip maker unveils new accelerator for data centers"},
		Description: "A new accelerator promises to double training throughput while cutting power draw.",
		Hashtags:    []string{"#AI", "#Chips", "#DataCenter"},
		Category:    "hi-tech",
	}
	if diff := cmp.Diff(want, bundle); diff != "" {
		t.Errorf("parsed bundle mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBundleFencedJSON(t *testing.T) {
	fenced := "```json\n" + goodResponse + "\n```"

	bundle, err := parseBundle(fenced, params(3))

	require.NoError(t, err)
	assert.Len(t, bundle.Hashtags, 3)
}

func TestParseBundleWithLeadingProse(t *testing.T) {
	noisy := "Here is the JSON you asked for:\n" + goodResponse

	_, err := parseBundle(noisy, params(3))

	assert.NoError(t, err)
}

func TestParseBundleTrimsExtraHashtags(t *testing.T) {
	bundle, err := parseBundle(goodResponse, params(2))

	require.NoError(t, err)
	assert.Equal(t, []string{"#AI", "#Chips"}, bundle.Hashtags)
}

func TestParseBundleTooFewHashtags(t *testing.T) {
	_, err := parseBundle(goodResponse, params(5))

	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrGeneration))
	assert.Contains(t, err.Error(), "requested 5 hashtags")
}

func TestParseBundleZeroHashtags(t *testing.T) {
	bundle, err := parseBundle(goodResponse, params(0))

	require.NoError(t, err)
	assert.Empty(t, bundle.Hashtags)
}

func TestParseBundleHashtagsAsString(t *testing.T) {
	resp := `{
		"bullets": ["A point"],
		"description": "A description.",
		"hashtags": "#One #Two #Three",
		"category": "sports"
	}`

	bundle, err := parseBundle(resp, params(3))

	require.NoError(t, err)
	assert.Equal(t, []string{"#One", "#Two", "#Three"}, bundle.Hashtags)
}

func TestParseBundleNormalizesUnknownCategory(t *testing.T) {
	resp := strings.Replace(goodResponse, "hi-tech", "gossip", 1)

	bundle, err := parseBundle(resp, params(3))

	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCategory, bundle.Category)
}

func TestParseBundleInvalidJSON(t *testing.T) {
	_, err := parseBundle("the model refused to answer", params(3))

	assert.ErrorIs(t, err, entity.ErrGeneration)
}

func TestParseBundleMissingFields(t *testing.T) {
	tests := []struct {
		name string
		resp string
	}{
		{"no bullets", `{"description": "d", "hashtags": ["#a"], "category": "sports"}`},
		{"no description", `{"bullets": ["b"], "hashtags": ["#a"], "category": "sports"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseBundle(tt.resp, params(1))
			assert.ErrorIs(t, err, entity.ErrGeneration)
		})
	}
}

func TestBuildPromptMentionsBudgets(t *testing.T) {
	p := buildPrompt("Article body.", post.SummaryParams{
		BulletWords:      12,
		DescriptionWords: 40,
		HashtagCount:     4,
		Language:         "fr",
	})

	assert.Contains(t, p, "approximately 12 words")
	assert.Contains(t, p, "approximately 40 words")
	assert.Contains(t, p, "exactly 4 relevant hashtags")
	assert.Contains(t, p, "French")
	assert.Contains(t, p, "Article body.")
}
