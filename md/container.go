package md

import "regexp"

// containerFrame is one entry of the block scanner's open-container stack,
// either a block quote or a single list item. It mirrors the teacher's
// `container` struct (src.elv.sh/pkg/md), generalized to build a retained
// tree node instead of emitting markup as it goes.
type containerFrame struct {
	quote *Quote    // non-nil for a block-quote frame
	list  *List     // non-nil for a list-item frame: the owning List
	item  *ListItem // non-nil for a list-item frame: the current item

	// width is, for a list item, the number of columns of indentation that
	// continue it on every line after the one that opened it (the
	// marker-plus-following-whitespace width). A quote frame leaves it
	// zero: its continuation re-matches the '>' marker on each line.
	width int

	// sawBlankLine records whether a blank line has been seen anywhere in
	// this list item yet. Nothing reads it: the tight/loose computation
	// (finalizeListTightness) inspects the items' BlankLine children.
	sawBlankLine bool
}

// continuation reports whether line continues this frame, returning the
// remainder of the line past the frame's marker. ok is false if the marker
// is absent on this line, in which case the caller decides whether that
// means "close this container" or "lazy continuation of a paragraph."
func (f *containerFrame) continuation(line string) (rest string, ok bool) {
	if f.quote != nil {
		indent, offset := indentWidth(line)
		if indent > 3 {
			return line, false
		}
		trimmed := line[offset:]
		if len(trimmed) == 0 || trimmed[0] != '>' {
			return line, false
		}
		trimmed = trimmed[1:]
		if len(trimmed) > 0 && trimmed[0] == ' ' {
			trimmed = trimmed[1:]
		}
		return trimmed, true
	}
	// list item
	if isBlankLine(line) {
		return "", true
	}
	rest, consumed := consumeIndent(line, f.width)
	if consumed < f.width {
		return line, false
	}
	return rest, true
}

var (
	bulletMarkerRegexp    = regexp.MustCompile(`^([-*+])( {1,4}|\t|$)`)
	orderedMarkerRegexp   = regexp.MustCompile(`^(\d{1,9})([.)])( {1,4}|\t|$)`)
	atxHeadingRegexp      = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?[ \t]*$`)
	codeFenceRegexp       = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})[ \t]*([^`]*)$")
	setextUnderlineRegexp = regexp.MustCompile(`^ {0,3}(=+|-+) *$`)
)

// isThematicBreakLine reports whether line (already de-indented of any
// enclosing container prefixes) is a thematic break: three or more
// matching `*`, `-` or `_` characters, optionally space-separated.
func isThematicBreakLine(line string) bool {
	indent, offset := indentWidth(line)
	if indent > 3 {
		return false
	}
	rest := line[offset:]
	if len(rest) < 3 {
		return false
	}
	var marker byte
	count := 0
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if c != '-' && c != '*' && c != '_' {
			return false
		}
		if marker == 0 {
			marker = c
		} else if c != marker {
			return false
		}
		count++
	}
	return count >= 3
}

func matchBulletMarker(line string) (marker byte, widthAfterMarker int, rest string, ok bool) {
	m := bulletMarkerRegexp.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, "", false
	}
	return m[1][0], len(m[0]), line[len(m[0]):], true
}

func matchOrderedMarker(line string) (start int, delim byte, rest string, ok bool) {
	m := orderedMarkerRegexp.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, "", false
	}
	n := 0
	for _, c := range m[1] {
		n = n*10 + int(c-'0')
	}
	return n, m[2][0], line[len(m[0]):], true
}
