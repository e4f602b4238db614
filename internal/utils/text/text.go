// Package text provides small text-processing helpers shared by the
// summarizer providers and the compositor.
package text

import (
	"regexp"
	"strings"
)

var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// CountRunes counts Unicode characters (runes) instead of bytes so that
// accented and non-Latin text is measured correctly.
func CountRunes(s string) int {
	return len([]rune(s))
}

// CountWords counts whitespace-separated words.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// Truncate shortens s to at most max runes, appending a marker when content
// was cut. Used to keep prompts under provider token limits.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// ExtractHashtags pulls #-prefixed tokens out of free-form model output.
// Order is preserved and duplicates are dropped case-insensitively.
func ExtractHashtags(s string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, m := range hashtagPattern.FindAllString(s, -1) {
		key := strings.ToLower(m)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, m)
	}
	return tags
}

// NormalizeHashtag turns a free-form tag ("go lang", "#GoLang") into a single
// #-prefixed token without inner whitespace.
func NormalizeHashtag(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return ""
	}
	return "#" + s
}
