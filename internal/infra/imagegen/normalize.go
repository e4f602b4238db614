// Package imagegen implements the ImageGenerator port for the two supported
// image providers: the OpenAI image API and Gemini. Providers return
// whatever resolution they support; the result is normalized to the post
// canvas before it enters the session.
package imagegen

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

// normalizePNG decodes provider image data, scales and center-crops it to
// the post canvas, and re-encodes it as PNG.
func normalizePNG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode provider image: %v", entity.ErrGeneration, err)
	}

	// Fill scales to cover the canvas and crops the overflow from the
	// center, preserving the subject framing.
	fitted := imaging.Fill(img, entity.PostWidth, entity.PostHeight, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, fitted); err != nil {
		return nil, fmt.Errorf("%w: cannot encode background: %v", entity.ErrGeneration, err)
	}
	return buf.Bytes(), nil
}
