package validate

import (
	"fmt"

	"github.com/dyluth/fathom/pkg/catalog"
)

// ZoomVariants checks a piece's alternate detail levels. A piece without a
// zoom block is trivially valid. A zoom block with no content warns, and
// every level with content is run through Rendering with its warnings
// prefixed by "<id> [<level>]".
func ZoomVariants(p catalog.Piece) Advisory {
	a := Advisory{Warnings: []string{}}
	if p.Zoom == nil {
		return a
	}

	if p.Zoom.IsEmpty() {
		a.Warnings = append(a.Warnings, fmt.Sprintf("%s: zoom object exists but no variants defined", p.ID))
	}

	for level, art := range p.Zoom.Levels() {
		if art == "" {
			continue
		}
		for _, w := range Rendering(art).Warnings {
			a.Warnings = append(a.Warnings, fmt.Sprintf("%s [%s]: %s", p.ID, level, w))
		}
	}

	return a
}
