package compose

import (
	"strings"

	"golang.org/x/image/font"
)

// measure returns the advance width of s in pixels for the given face.
func measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// wrapWords breaks words into lines no wider than maxWidth. A single word
// wider than maxWidth gets its own line rather than being split.
func wrapWords(face font.Face, words []string, maxWidth float64) [][]string {
	var lines [][]string
	var current []string
	for _, word := range words {
		if len(current) == 0 {
			current = []string{word}
			continue
		}
		candidate := strings.Join(append(current[:len(current):len(current)], word), " ")
		if measure(face, candidate) <= maxWidth {
			current = append(current, word)
		} else {
			lines = append(lines, current)
			current = []string{word}
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	return lines
}

// lineHeight returns the vertical step between baselines for a face and a
// spacing multiplier.
func lineHeight(face font.Face, spacing float64) float64 {
	m := face.Metrics()
	return float64(m.Height) / 64 * spacing
}
