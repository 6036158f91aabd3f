package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// zero-width and BOM code points that survive unicode.IsSpace checks
var zeroWidth = map[rune]struct{}{
	'\u200b': {},
	'\u200c': {},
	'\u200d': {},
	'\ufeff': {},
}

func stripControl(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if _, ok := zeroWidth[r]; ok {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

func collapseWhitespace(s string) string {
	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// TrimAndNormalize cleans a free-text field: control characters removed,
// runs of whitespace collapsed to single spaces, ends trimmed.
func TrimAndNormalize(s string) string {
	p := Pipeline{
		stripControl,
		collapseWhitespace,
		strings.TrimSpace,
	}
	return p.Apply(s)
}

// NormalizeText is the strategy for display fields (brand, model,
// category, description).
func NormalizeText(s string) string {
	return TrimAndNormalize(s)
}

// NormalizeLocation lowers the cleaned value so location filters compare
// case-insensitively.
func NormalizeLocation(s string) string {
	return strings.ToLower(TrimAndNormalize(s))
}
