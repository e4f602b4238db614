// Package compose renders the final social post: background image, bottom
// scrim, wrapped bullet text with accent highlights, category label, logo
// and date line. Rendering is deterministic so identical inputs produce a
// byte-identical PNG.
package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

const (
	textAreaPadding = 24
	paragraphGap    = 14
	fontSizeStep    = 2
	dateBaselineGap = 30
	scrimMaxAlpha   = 215
)

// Compositor draws final posts according to a fixed layout.
type Compositor struct {
	layout      Layout
	textColor   color.RGBA
	accentColor color.RGBA
}

// NewCompositor builds a compositor for a validated layout.
func NewCompositor(layout Layout) (*Compositor, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	textColor, _ := parseHexColor(layout.TextColor)
	accentColor, _ := parseHexColor(layout.AccentColor)
	return &Compositor{layout: layout, textColor: textColor, accentColor: accentColor}, nil
}

// Compose renders the post. The background may be any decodable raster
// image and is center-cropped to the post size if needed. The logo is
// optional; pass nil to omit it. The date string is drawn verbatim, which
// keeps output reproducible.
func (c *Compositor) Compose(background []byte, bundle entity.SummaryBundle, logoPNG []byte, date string) ([]byte, error) {
	bg, _, err := image.Decode(bytes.NewReader(background))
	if err != nil {
		return nil, fmt.Errorf("%w: decode background: %v", entity.ErrImage, err)
	}
	if bg.Bounds().Dx() != entity.PostWidth || bg.Bounds().Dy() != entity.PostHeight {
		bg = imaging.Fill(bg, entity.PostWidth, entity.PostHeight, imaging.Center, imaging.Lanczos)
	}

	dc := gg.NewContext(entity.PostWidth, entity.PostHeight)
	dc.DrawImage(bg, 0, 0)

	c.drawScrim(dc)

	if err := c.drawCategory(dc, bundle.Category); err != nil {
		return nil, err
	}
	if logoPNG != nil {
		if err := c.drawLogo(dc, logoPNG); err != nil {
			return nil, err
		}
	}

	dateTop, err := c.drawDate(dc, date)
	if err != nil {
		return nil, err
	}
	if err := c.drawBullets(dc, bundle.Bullets, dateTop); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("%w: encode post: %v", entity.ErrImage, err)
	}
	return buf.Bytes(), nil
}

// drawScrim paints a transparent-to-dark gradient over the bottom portion
// of the image so white text stays readable on any background.
func (c *Compositor) drawScrim(dc *gg.Context) {
	h := float64(entity.PostHeight)
	top := h * (1 - c.layout.ScrimRatio)

	grad := gg.NewLinearGradient(0, top, 0, h)
	grad.AddColorStop(0, color.NRGBA{A: 0})
	grad.AddColorStop(1, color.NRGBA{A: scrimMaxAlpha})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, top, float64(entity.PostWidth), h-top)
	dc.Fill()
}

// drawCategory draws the category pill at the top-left corner.
func (c *Compositor) drawCategory(dc *gg.Context, category string) error {
	face, err := boldFace(c.layout.CategoryFontSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	label := strings.ToUpper(category)
	w := measure(face, label)
	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64

	padX, padY := 18.0, 8.0
	x := c.layout.SideMargin
	y := float64(c.layout.LogoMarginTop)
	boxW := w + 2*padX
	boxH := ascent + descent + 2*padY

	dc.SetColor(c.accentColor)
	dc.DrawRoundedRectangle(x, y, boxW, boxH, boxH/2)
	dc.Fill()

	dc.SetColor(color.NRGBA{R: 12, G: 32, B: 20, A: 255})
	dc.DrawString(label, x+padX, y+padY+ascent)
	return nil
}

// drawLogo scales the logo into its box and places it at the top-right,
// preserving transparency.
func (c *Compositor) drawLogo(dc *gg.Context, logoPNG []byte) error {
	logo, _, err := image.Decode(bytes.NewReader(logoPNG))
	if err != nil {
		return fmt.Errorf("%w: decode logo: %v", entity.ErrImage, err)
	}
	fitted := imaging.Fit(logo, c.layout.LogoWidth, c.layout.LogoHeight, imaging.Lanczos)

	x := entity.PostWidth - int(c.layout.SideMargin) - fitted.Bounds().Dx()
	dc.DrawImage(fitted, x, c.layout.LogoMarginTop)
	return nil
}

// drawDate draws the date line centered near the bottom edge and returns
// the y coordinate above which the main text must stay.
func (c *Compositor) drawDate(dc *gg.Context, date string) (float64, error) {
	if date == "" {
		return float64(entity.PostHeight) - dateBaselineGap, nil
	}
	face, err := regularFace(c.layout.DateFontSize)
	if err != nil {
		return 0, err
	}
	dc.SetFontFace(face)
	dc.SetColor(c.textColor)

	baseline := float64(entity.PostHeight) - dateBaselineGap
	w := measure(face, date)
	dc.DrawString(date, (float64(entity.PostWidth)-w)/2, baseline)

	ascent := float64(face.Metrics().Ascent) / 64
	return baseline - ascent - textAreaPadding, nil
}

// drawBullets lays out the bullet paragraphs bottom-anchored above limitY,
// shrinking the font until the block fits. Words are centered per line and
// colored individually so numbers and quoted phrases pop.
func (c *Compositor) drawBullets(dc *gg.Context, bullets []string, limitY float64) error {
	if len(bullets) == 0 {
		return fmt.Errorf("%w: no bullet text to draw", entity.ErrImage)
	}

	maxWidth := float64(entity.PostWidth) - 2*c.layout.SideMargin
	areaTop := float64(entity.PostHeight)*(1-c.layout.ScrimRatio) + textAreaPadding
	maxHeight := limitY - areaTop

	face, paragraphs, blockHeight, err := c.fitText(bullets, maxWidth, maxHeight)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	lh := lineHeight(face, c.layout.LineSpacing)
	ascent := float64(face.Metrics().Ascent) / 64
	spaceW := measure(face, " ")

	y := limitY - blockHeight + ascent
	for pi, lines := range paragraphs {
		if pi > 0 {
			y += paragraphGap
		}
		var flat []string
		for _, line := range lines {
			flat = append(flat, line...)
		}
		flags := accentFlags(flat, c.layout.AccentKeywords)
		idx := 0
		for _, line := range lines {
			c.drawLine(dc, face, line, flags[idx:idx+len(line)], spaceW, y)
			idx += len(line)
			y += lh
		}
	}
	return nil
}

// fitText steps the font size down until every bullet fits in the text
// area. At the minimum size the text is used as is and may clip.
func (c *Compositor) fitText(bullets []string, maxWidth, maxHeight float64) (font.Face, [][][]string, float64, error) {
	for size := c.layout.InitialFontSize; ; size -= fontSizeStep {
		if size < c.layout.MinFontSize {
			size = c.layout.MinFontSize
		}
		face, err := boldFace(size)
		if err != nil {
			return nil, nil, 0, err
		}

		paragraphs := make([][][]string, 0, len(bullets))
		totalLines := 0
		for _, bullet := range bullets {
			lines := wrapWords(face, strings.Fields(bullet), maxWidth)
			paragraphs = append(paragraphs, lines)
			totalLines += len(lines)
		}

		height := float64(totalLines)*lineHeight(face, c.layout.LineSpacing) +
			float64(len(bullets)-1)*paragraphGap
		if height <= maxHeight || size == c.layout.MinFontSize {
			return face, paragraphs, height, nil
		}
	}
}

// drawLine centers one line and draws each word in its own color.
func (c *Compositor) drawLine(dc *gg.Context, face font.Face, words []string, flags []bool, spaceW, baseline float64) {
	total := 0.0
	widths := make([]float64, len(words))
	for i, word := range words {
		widths[i] = measure(face, word)
		total += widths[i]
	}
	total += spaceW * float64(len(words)-1)

	x := (float64(entity.PostWidth) - total) / 2
	for i, word := range words {
		if flags[i] {
			dc.SetColor(c.accentColor)
		} else {
			dc.SetColor(c.textColor)
		}
		dc.DrawString(word, x, baseline)
		x += widths[i] + spaceW
	}
}
