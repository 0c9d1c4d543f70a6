package md

import (
	"html"
	"strings"
)

// parseLinkTail parses a `(dest "title")` or `[label]` tail starting at
// s[0] (immediately after a matched `]`). It returns the number of bytes
// consumed from s, or -1 if s does not begin with a valid link tail.
// Ported from the teacher's linkTailParser (src.elv.sh/pkg/md).
func parseLinkTail(s string, refs map[string]*LinkRefDef) (n int, dest, title string, ok bool) {
	if len(s) > 0 && s[0] == '(' {
		return parseInlineLinkTail(s)
	}
	// Reference-style: [text][label], [text][], or shortcut [text].
	if len(s) > 0 && s[0] == '[' {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return -1, "", "", false
		}
		label := s[1:end]
		if label == "" {
			return -1, "", "", false // caller falls back to shortcut using the link text itself
		}
		if def, found := refs[normalizeLabel(label)]; found {
			return end + 1, def.Dest, def.Title, true
		}
		return -1, "", "", false
	}
	return -1, "", "", false
}

func parseInlineLinkTail(s string) (n int, dest, title string, ok bool) {
	i := 1 // past '('
	i += skipWhitespace(s[i:])
	destEnd, dest, ok := parseLinkDestination(s[i:])
	if !ok {
		return -1, "", "", false
	}
	i += destEnd
	afterDestWS := skipWhitespace(s[i:])
	if afterDestWS > 0 {
		i += afterDestWS
	}
	if i < len(s) && (s[i] == '"' || s[i] == '\'' || s[i] == '(') {
		titleEnd, t, ok := parseLinkTitle(s[i:])
		if !ok {
			return -1, "", "", false
		}
		title = t
		i += titleEnd
		i += skipWhitespace(s[i:])
	}
	if i >= len(s) || s[i] != ')' {
		return -1, "", "", false
	}
	return i + 1, unescapeLinkDest(dest), unescapeLinkTitle(title), true
}

func skipWhitespace(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t' || s[n] == '\n') {
		n++
	}
	return n
}

// parseLinkDestination parses either an angle-bracketed `<...>` destination
// or a bare destination run of balanced, non-whitespace-containing
// parentheses.
func parseLinkDestination(s string) (n int, dest string, ok bool) {
	if len(s) > 0 && s[0] == '<' {
		for i := 1; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
			case '>':
				return i + 1, s[1:i], true
			case '<', '\n':
				return -1, "", false
			}
		}
		return -1, "", false
	}
	depth := 0
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i += 2
			continue
		}
		if c == ' ' || c == '\t' || c == '\n' {
			break
		}
		if c == '(' {
			depth++
		} else if c == ')' {
			if depth == 0 {
				break
			}
			depth--
		}
		i++
	}
	if i == 0 || depth != 0 {
		return -1, "", false
	}
	return i, s[:i], true
}

func parseLinkTitle(s string) (n int, title string, ok bool) {
	close := byte('"')
	switch s[0] {
	case '"':
		close = '"'
	case '\'':
		close = '\''
	case '(':
		close = ')'
	default:
		return -1, "", false
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case close:
			return i + 1, s[1:i], true
		}
	}
	return -1, "", false
}

func unescapeLinkDest(s string) string {
	s = strings.TrimSpace(s)
	return html.UnescapeString(unescapeBackslashes(s))
}

func unescapeLinkTitle(s string) string {
	return html.UnescapeString(unescapeBackslashes(s))
}

func unescapeBackslashes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	switch {
	case c >= '!' && c <= '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '`':
		return true
	case c >= '{' && c <= '~':
		return true
	}
	return false
}
