package imagegen

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizePNGResizesToCanvas(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"square source", 1024, 1024},
		{"portrait source", 1024, 1792},
		{"landscape source", 1792, 1024},
		{"exact source", entity.PostWidth, entity.PostHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := normalizePNG(encodePNG(t, tt.w, tt.h))
			require.NoError(t, err)

			decoded, err := png.Decode(bytes.NewReader(out))
			require.NoError(t, err)
			bounds := decoded.Bounds()
			assert.Equal(t, entity.PostWidth, bounds.Dx())
			assert.Equal(t, entity.PostHeight, bounds.Dy())
		})
	}
}

func TestNormalizePNGRejectsGarbage(t *testing.T) {
	_, err := normalizePNG([]byte("not an image"))

	assert.ErrorIs(t, err, entity.ErrGeneration)
}
