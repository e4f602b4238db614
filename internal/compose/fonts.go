package compose

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

var (
	fontOnce    sync.Once
	fontErr     error
	boldFont    *truetype.Font
	regularFont *truetype.Font
)

func loadFonts() error {
	fontOnce.Do(func() {
		boldFont, fontErr = truetype.Parse(gobold.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("%w: parse bold font: %v", entity.ErrImage, fontErr)
			return
		}
		regularFont, fontErr = truetype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("%w: parse regular font: %v", entity.ErrImage, fontErr)
		}
	})
	return fontErr
}

// boldFace returns a bold face at the given point size. Faces are cheap to
// create; the underlying font is parsed once.
func boldFace(size float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return truetype.NewFace(boldFont, &truetype.Options{Size: size}), nil
}

func regularFace(size float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return truetype.NewFace(regularFont, &truetype.Options{Size: size}), nil
}
