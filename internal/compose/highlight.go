package compose

import (
	"strings"
	"unicode"
)

// accentFlags returns, for each word, whether it should be drawn in the
// accent color. Numbers, percentages and currency amounts stand out, as do
// whole quoted spans and any extra keywords from the layout. Quote state
// carries across the slice so a phrase split over several lines stays
// highlighted.
func accentFlags(words []string, keywords []string) []bool {
	flags := make([]bool, len(words))
	inQuote := false
	for i, word := range words {
		opens := strings.IndexFunc(word, isQuoteRune) >= 0
		if inQuote || opens || isAccentToken(word, keywords) {
			flags[i] = true
		}
		inQuote = quoteStateAfter(word, inQuote)
	}
	return flags
}

func isAccentToken(word string, keywords []string) bool {
	trimmed := strings.TrimFunc(word, unicode.IsPunct)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if unicode.IsDigit(r) || r == '%' || r == '$' || r == '€' {
			return true
		}
	}
	lower := strings.ToLower(trimmed)
	for _, kw := range keywords {
		if lower == strings.ToLower(kw) {
			return true
		}
	}
	return false
}

// quoteStateAfter toggles the open-quote state for every quote rune in the
// word. Paired quotes inside one word cancel out.
func quoteStateAfter(word string, inQuote bool) bool {
	for _, r := range word {
		if isQuoteRune(r) {
			inQuote = !inQuote
		}
	}
	return inQuote
}

func isQuoteRune(r rune) bool {
	switch r {
	case '"', '«', '»', '“', '”':
		return true
	}
	return false
}
