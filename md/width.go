package md

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// stringWidth returns s's rendered column width, used by MarkdownRenderer's
// optional reflow. The teacher computes this itself (pkg/wcwidth), but that
// package's implementation did not survive retrieval into this pack (only
// its test file did — see DESIGN.md); go-runewidth plus uniseg's grapheme
// segmentation is the real-dependency replacement.
func stringWidth(s string) int {
	width := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Runes()
		w := runewidth.RuneWidth(cluster[0])
		for _, r := range cluster[1:] {
			if rw := runewidth.RuneWidth(r); rw > w {
				w = rw
			}
		}
		width += w
	}
	return width
}
