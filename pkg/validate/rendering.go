package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Rendering thresholds.
const (
	MinLines        = 2
	MaxLines        = 50
	MaxLineWidth    = 100
	MaxLengthSpread = 20
)

// Rendering runs display-safety heuristics over a block of art. Each check
// fires independently; the art is split on "\n" and line length is counted
// in grapheme clusters.
func Rendering(art string) Advisory {
	var a Advisory
	lines := strings.Split(art, "\n")

	switch {
	case len(lines) < MinLines:
		a.Warnings = append(a.Warnings, "ASCII art is very short (< 2 lines)")
	case len(lines) > MaxLines:
		a.Warnings = append(a.Warnings, "ASCII art is very tall (> 50 lines) - may not display well")
	}

	minLen, maxLen := -1, 0
	trailing := false
	for _, line := range lines {
		n := uniseg.GraphemeClusterCount(line)
		if n > maxLen {
			maxLen = n
		}
		if minLen < 0 || n < minLen {
			minLen = n
		}
		if hasTrailingSpace(line) {
			trailing = true
		}
	}

	if maxLen > MaxLineWidth {
		a.Warnings = append(a.Warnings, fmt.Sprintf("ASCII art is very wide (%d chars) - may not display well", maxLen))
	}
	if maxLen-minLen > MaxLengthSpread {
		a.Warnings = append(a.Warnings, "Inconsistent line lengths - may appear misaligned")
	}
	if trailing {
		a.Warnings = append(a.Warnings, "Some lines have trailing spaces - be careful with rendering")
	}

	return a
}

func hasTrailingSpace(line string) bool {
	r, size := utf8.DecodeLastRuneInString(line)
	return size > 0 && unicode.IsSpace(r)
}
