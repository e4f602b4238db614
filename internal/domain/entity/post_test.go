package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticleContentValidate(t *testing.T) {
	tests := []struct {
		name    string
		content ArticleContent
		wantErr bool
	}{
		{"valid", ArticleContent{Text: "Some article body."}, false},
		{"empty", ArticleContent{Text: ""}, true},
		{"whitespace only", ArticleContent{Text: "   \n\t"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.content.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSummaryBundleValidate(t *testing.T) {
	valid := SummaryBundle{
		Bullets:     []string{"Key point about the story"},
		Description: "A short description.",
		Hashtags:    []string{"#News", "#Tech"},
		Category:    "hi-tech",
	}
	assert.NoError(t, valid.Validate())

	noBullets := valid
	noBullets.Bullets = nil
	assert.Error(t, noBullets.Validate())

	blankBullet := valid
	blankBullet.Bullets = []string{"ok", "  "}
	assert.Error(t, blankBullet.Validate())

	noDescription := valid
	noDescription.Description = " "
	assert.Error(t, noDescription.Validate())

	badHashtag := valid
	badHashtag.Hashtags = []string{"NoPrefix"}
	assert.Error(t, badHashtag.Validate())
}

func TestSummaryBundleEmpty(t *testing.T) {
	var nilBundle *SummaryBundle
	assert.True(t, nilBundle.Empty())
	assert.True(t, (&SummaryBundle{}).Empty())
	assert.False(t, (&SummaryBundle{Description: "x"}).Empty())
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hi-tech", "hi-tech"},
		{"HI-TECH", "hi-tech"},
		{"sports", "sports"},
		{"politics", DefaultCategory},
		{"", DefaultCategory},
	}
	for _, tt := range tests {
		b := SummaryBundle{Category: tt.in}
		assert.Equal(t, tt.want, b.NormalizeCategory(), "category %q", tt.in)
	}
}

func TestGeneratedImageValid(t *testing.T) {
	var nilImg *GeneratedImage
	assert.False(t, nilImg.Valid())
	assert.False(t, (&GeneratedImage{}).Valid())
	assert.True(t, (&GeneratedImage{PNG: []byte{1}}).Valid())
}
