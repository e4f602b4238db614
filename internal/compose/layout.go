package compose

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AicraftersLab/Article-To-Post/internal/domain/entity"
)

// Layout holds every parameter the compositor uses to place text and
// overlays. Defaults match the house style; a YAML file can override any
// field for a different brand.
type Layout struct {
	// SideMargin is the horizontal margin in pixels on both sides of the
	// text block.
	SideMargin float64 `yaml:"side_margin"`

	// InitialFontSize is the starting point size for the main text. The
	// compositor steps down from here until the text fits.
	InitialFontSize float64 `yaml:"initial_font_size"`

	// MinFontSize is the smallest point size tried before the text is
	// drawn anyway and may clip.
	MinFontSize float64 `yaml:"min_font_size"`

	// LineSpacing is the multiplier applied to the font line height.
	LineSpacing float64 `yaml:"line_spacing"`

	// ScrimRatio is the fraction of the image height covered by the
	// bottom gradient scrim that keeps text legible.
	ScrimRatio float64 `yaml:"scrim_ratio"`

	// TextColor is the primary text color as a hex string ("#ffffff").
	TextColor string `yaml:"text_color"`

	// AccentColor is the highlight color for emphasized tokens.
	AccentColor string `yaml:"accent_color"`

	// AccentKeywords are extra tokens drawn in the accent color,
	// case-insensitive, in addition to the built-in number/percent rules.
	AccentKeywords []string `yaml:"accent_keywords"`

	// CategoryFontSize is the point size of the category label.
	CategoryFontSize float64 `yaml:"category_font_size"`

	// DateFontSize is the point size of the date line.
	DateFontSize float64 `yaml:"date_font_size"`

	// LogoWidth and LogoHeight define the box the logo is scaled into.
	LogoWidth  int `yaml:"logo_width"`
	LogoHeight int `yaml:"logo_height"`

	// LogoMarginTop is the distance from the top edge to the logo.
	LogoMarginTop int `yaml:"logo_margin_top"`
}

// DefaultLayout returns the house layout: white text with light-green
// accents over a bottom scrim.
func DefaultLayout() Layout {
	return Layout{
		SideMargin:       48,
		InitialFontSize:  44,
		MinFontSize:      24,
		LineSpacing:      1.25,
		ScrimRatio:       0.34,
		TextColor:        "#ffffff",
		AccentColor:      "#7ce8a4",
		CategoryFontSize: 28,
		DateFontSize:     19,
		LogoWidth:        150,
		LogoHeight:       70,
		LogoMarginTop:    28,
	}
}

// LoadLayout reads a YAML layout file and overlays it on the defaults.
// Fields absent from the file keep their default values.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()

	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("%w: cannot read layout file: %v", entity.ErrConfig, err)
	}
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("%w: cannot parse layout file: %v", entity.ErrConfig, err)
	}

	if err := layout.Validate(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// Validate checks that the layout values can produce a readable post.
func (l Layout) Validate() error {
	if l.SideMargin < 0 || l.SideMargin*2 >= entity.PostWidth {
		return fmt.Errorf("%w: side_margin %v leaves no room for text", entity.ErrConfig, l.SideMargin)
	}
	if l.MinFontSize <= 0 || l.InitialFontSize < l.MinFontSize {
		return fmt.Errorf("%w: font sizes must satisfy 0 < min (%v) <= initial (%v)",
			entity.ErrConfig, l.MinFontSize, l.InitialFontSize)
	}
	if l.LineSpacing < 1 {
		return fmt.Errorf("%w: line_spacing must be >= 1, got %v", entity.ErrConfig, l.LineSpacing)
	}
	if l.ScrimRatio <= 0 || l.ScrimRatio >= 1 {
		return fmt.Errorf("%w: scrim_ratio must be in (0, 1), got %v", entity.ErrConfig, l.ScrimRatio)
	}
	if _, err := parseHexColor(l.TextColor); err != nil {
		return fmt.Errorf("%w: text_color: %v", entity.ErrConfig, err)
	}
	if _, err := parseHexColor(l.AccentColor); err != nil {
		return fmt.Errorf("%w: accent_color: %v", entity.ErrConfig, err)
	}
	if l.LogoWidth <= 0 || l.LogoHeight <= 0 {
		return fmt.Errorf("%w: logo box must be positive, got %dx%d", entity.ErrConfig, l.LogoWidth, l.LogoHeight)
	}
	return nil
}

// parseHexColor parses "#rrggbb" into an opaque color.
func parseHexColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("expected #rrggbb, got %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("expected #rrggbb, got %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
