package md

import "strings"

// cursor walks a document's lines one at a time, with save/restore
// checkpoints. The block scanner itself only moves forward: it decides lazy
// continuation by probing a line (BlockKind.Peek) before anything consumes
// it, and uses save only to tell whether any line has been consumed yet
// (AtStart). Ported from the line-at-a-time style of the teacher's
// lineSplitter.
type cursor struct {
	lines []string
	pos   int
}

func newCursor(text string) *cursor {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline produces one trailing empty element from
	// strings.Split; a document with no trailing newline still behaves
	// correctly as CommonMark treats the last line as present either way.
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	return &cursor{lines: lines}
}

func (c *cursor) more() bool { return c.pos < len(c.lines) }

func (c *cursor) peek() (string, bool) {
	if !c.more() {
		return "", false
	}
	return c.lines[c.pos], true
}

func (c *cursor) peekAt(offset int) (string, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.lines) {
		return "", false
	}
	return c.lines[i], true
}

func (c *cursor) take() (string, bool) {
	line, ok := c.peek()
	if ok {
		c.pos++
	}
	return line, ok
}

func (c *cursor) save() int { return c.pos }

func (c *cursor) restore(mark int) { c.pos = mark }

const tabStop = 4

// indentWidth returns the column width of s's leading whitespace, expanding
// tabs to the next multiple of tabStop, and the byte offset in s where the
// non-whitespace content (or end of string) begins.
func indentWidth(s string) (width, offset int) {
	col := 0
	for offset < len(s) {
		switch s[offset] {
		case ' ':
			col++
		case '\t':
			col += tabStop - col%tabStop
		default:
			return col, offset
		}
		offset++
	}
	return col, offset
}

// consumeIndent removes up to n columns of leading whitespace from s,
// expanding tabs as indentWidth does, and returns the remainder together
// with however many columns were actually consumed (less than n only if s
// ran out of leading whitespace first).
func consumeIndent(s string, n int) (rest string, consumed int) {
	col := 0
	i := 0
	for i < len(s) && col < n {
		switch s[i] {
		case ' ':
			col++
			i++
		case '\t':
			step := tabStop - col%tabStop
			if col+step > n {
				// Partial tab: leave the remaining columns as spaces.
				extra := col + step - n
				return strings.Repeat(" ", extra) + s[i+1:], n
			}
			col += step
			i++
		default:
			return s[i:], col
		}
	}
	return s[i:], col
}

func isBlankLine(s string) bool {
	return strings.TrimSpace(s) == ""
}
