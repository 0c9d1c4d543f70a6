package md

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// inlineParser drives Phase A of inline parsing: a single left-to-right
// pass over the text that appends leaf nodes (and live delimiter runs) to
// a content chain, interleaved with the bracket/link resolution that Phase
// B (processEmphasis, plus the `]` handling below) needs to run as brackets
// close rather than afterward. Ported from the teacher's inlineParser
// (src.elv.sh/pkg/md).
//
// Because this is a single consuming pass where each match advances pos
// past its own span, two inline kinds can never PRECEDE, CONTAIN or
// INTERSECT the same source range: whichever kind's match starts earliest
// at the current position wins, and nothing re-scans text already
// consumed. That resolves the overlap relation spec.md describes without
// needing to compute it explicitly.
type inlineParser struct {
	text string
	pos  int
	refs map[string]*LinkRefDef

	registry *Registry

	head, tail *seg
	dBottom    *delim
}

// ParseInline tokenizes a run of raw text (already joined from one or more
// source lines) into a tree of Inline nodes, resolving emphasis, links and
// images against refs.
func ParseInline(text string, reg *Registry, refs map[string]*LinkRefDef) []Inline {
	p := &inlineParser{text: text, refs: refs, registry: reg}
	p.head = &seg{}
	p.tail = &seg{}
	p.head.next, p.tail.prev = p.tail, p.head
	p.dBottom = &delim{}

	for p.pos < len(p.text) {
		if p.tryExtensions() {
			continue
		}
		c := p.text[p.pos]
		switch {
		case c == '\\':
			p.scanBackslash()
		case c == '`':
			p.scanCodeSpan()
		case c == '<':
			p.scanAngle()
		case c == '&':
			p.scanEntity()
		case c == '*' || c == '_':
			p.scanDelimiterRun(c)
		case c == '[':
			p.scanOpenBracket('[')
		case c == '!' && p.pos+1 < len(p.text) && p.text[p.pos+1] == '[':
			p.scanOpenBracket('!')
		case c == ']':
			p.scanCloseBracket()
		case c == '\n':
			p.scanNewline()
		default:
			p.scanText()
		}
	}
	processEmphasis(p.dBottom)
	return p.flatten()
}

func (p *inlineParser) tryExtensions() bool {
	for _, k := range p.registry.inlines {
		if k.Virtual || k.Try == nil {
			continue
		}
		if k.Try(p) {
			return true
		}
	}
	return false
}

func (p *inlineParser) flatten() []Inline {
	var out []Inline
	for s := p.head.next; s != p.tail; s = s.next {
		out = append(out, s.node)
	}
	return out
}

func (p *inlineParser) append(n Inline) *seg {
	s := &seg{node: n}
	insertBetween(p.tail.prev, p.tail, s)
	return s
}

func (p *inlineParser) pushDelim(typ byte, s *seg, n int, canOpen, canClose bool) *delim {
	d := &delim{typ: typ, seg: s, n: n, canOpen: canOpen, canClose: canClose}
	s.d = d
	prev := p.dTop()
	d.prevD, d.nextD = prev, nil
	prev.nextD = d
	return d
}

func (p *inlineParser) dTop() *delim {
	d := p.dBottom
	for d.nextD != nil {
		d = d.nextD
	}
	return d
}

func (p *inlineParser) scanBackslash() {
	if p.pos+1 < len(p.text) && p.text[p.pos+1] == '\n' {
		p.append(&LineBreak{Hard: true})
		p.pos += 2
		p.skipLeadingSpaces()
		return
	}
	if p.pos+1 < len(p.text) && isASCIIPunct(p.text[p.pos+1]) {
		p.append(&Literal{Char: p.text[p.pos+1 : p.pos+2]})
		p.pos += 2
		return
	}
	p.append(&RawText{Text: "\\", Escape: true})
	p.pos++
}

func (p *inlineParser) scanCodeSpan() {
	start := p.pos
	n := 0
	for p.pos < len(p.text) && p.text[p.pos] == '`' {
		n++
		p.pos++
	}
	contentStart := p.pos
	for p.pos < len(p.text) {
		if p.text[p.pos] == '`' {
			runStart := p.pos
			m := 0
			for p.pos < len(p.text) && p.text[p.pos] == '`' {
				m++
				p.pos++
			}
			if m == n {
				content := p.text[contentStart:runStart]
				content = normalizeCodeSpanContent(content)
				p.append(&CodeSpan{Text: content})
				return
			}
			continue
		}
		p.pos++
	}
	// No closing run found: the opening backticks are literal text.
	p.pos = start
	p.append(&RawText{Text: p.text[start:contentStart], Escape: true})
	p.pos = contentStart
}

func normalizeCodeSpanContent(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.HasPrefix(s, " ") && strings.HasSuffix(s, " ") && strings.TrimSpace(s) != "" {
		s = s[1 : len(s)-1]
	}
	return s
}

func (p *inlineParser) scanAngle() {
	rest := p.text[p.pos:]
	if n, dest, ok := matchAutoLink(rest); ok {
		p.append(&AutoLink{Dest: dest, Text: dest})
		p.pos += n
		return
	}
	if n, raw, ok := matchInlineHTML(rest); ok {
		p.append(&InlineHTML{Raw: raw})
		p.pos += n
		return
	}
	p.append(&RawText{Text: "<", Escape: true})
	p.pos++
}

func (p *inlineParser) scanEntity() {
	if n, decoded, ok := matchEntity(p.text[p.pos:]); ok {
		p.append(&RawText{Text: decoded, Escape: true})
		p.pos += n
		return
	}
	p.append(&RawText{Text: "&", Escape: true})
	p.pos++
}

func (p *inlineParser) scanDelimiterRun(c byte) {
	start := p.pos
	for p.pos < len(p.text) && p.text[p.pos] == c {
		p.pos++
	}
	run := p.text[start:p.pos]

	next, lNext := utf8.DecodeRuneInString(p.text[p.pos:])
	prev, lPrev := utf8.DecodeLastRuneInString(p.text[:start])
	canOpen, canClose := flanking(c, prev, lPrev, next, lNext)

	s := p.append(&RawText{Text: run, Escape: true})
	p.pushDelim(c, s, len(run), canOpen, canClose)
}

// flanking reports whether a delimiter run can open/close emphasis, per
// CommonMark's left-/right-flanking rules. Decodes full runes (rather than
// bytes) and classifies them with unicode.IsSpace/unicode.IsPunct so
// non-ASCII whitespace and punctuation flank correctly, matching the
// teacher's rune-level treatment (src.elv.sh/pkg/md).
func flanking(c byte, prev rune, lPrev int, next rune, lNext int) (canOpen, canClose bool) {
	leftFlanking := lNext > 0 && !unicode.IsSpace(next) &&
		(!unicode.IsPunct(next) ||
			lPrev == 0 || unicode.IsSpace(prev) || unicode.IsPunct(prev))
	rightFlanking := lPrev > 0 && !unicode.IsSpace(prev) &&
		(!unicode.IsPunct(prev) ||
			lNext == 0 || unicode.IsSpace(next) || unicode.IsPunct(next))

	if c == '_' {
		canOpen = leftFlanking && (!rightFlanking || (lPrev > 0 && unicode.IsPunct(prev)))
		canClose = rightFlanking && (!leftFlanking || (lNext > 0 && unicode.IsPunct(next)))
	} else {
		canOpen = leftFlanking
		canClose = rightFlanking
	}
	return canOpen, canClose
}

func (p *inlineParser) scanOpenBracket(c byte) {
	if c == '!' {
		s := p.append(&RawText{Text: "![", Escape: true})
		p.pushDelim('!', s, 0, true, false)
		p.pos += 2
		return
	}
	s := p.append(&RawText{Text: "[", Escape: true})
	p.pushDelim('[', s, 0, true, false)
	p.pos++
}

func (p *inlineParser) scanCloseBracket() {
	p.pos++ // consume ']'

	var opener *delim
	for d := p.dTop(); d != p.dBottom; d = d.prevD {
		if d.typ == '[' || d.typ == '!' {
			opener = d
			break
		}
	}
	if opener == nil || opener.inactive {
		if opener != nil {
			removeDelimFromStack(opener)
		}
		p.append(&RawText{Text: "]", Escape: true})
		return
	}

	n, dest, title, ok := parseLinkTail(p.text[p.pos:], p.refs)
	if !ok && opener.typ == '[' {
		// Shortcut reference [label], or collapsed reference [label][]:
		// the label is the link text itself.
		label := plainText(collectBetween(opener.seg.next, p.tail))
		if def, found := p.refs[normalizeLabel(label)]; found {
			n, dest, title, ok = 0, def.Dest, def.Title, true
			if strings.HasPrefix(p.text[p.pos:], "[]") {
				n = 2
			}
		}
	}
	if !ok {
		removeDelimFromStack(opener)
		p.append(&RawText{Text: "]", Escape: true})
		return
	}
	p.pos += n

	processEmphasis(opener)

	children := collectBetween(opener.seg.next, p.tail)
	unlinkRange(opener.seg.next, p.tail)

	var newNode Inline
	if opener.typ == '[' {
		for d := opener.prevD; d != p.dBottom; d = d.prevD {
			if d.typ == '[' {
				d.inactive = true
			}
		}
		newNode = &Link{Dest: dest, Title: title, Children: children}
	} else {
		newNode = &Image{Dest: dest, Title: title, Children: children}
	}
	opener.seg.node = newNode
	opener.seg.d = nil
	// Drop the opener together with every delimiter still above it: their
	// runs now sit inside newNode and can no longer pair with anything.
	opener.prevD.nextD = nil
}

func (p *inlineParser) scanNewline() {
	hard := false
	if s := p.tail.prev; s != p.head {
		if rt, ok := s.node.(*RawText); ok {
			trimmed := strings.TrimRight(rt.Text, " ")
			if len(rt.Text)-len(trimmed) >= 2 {
				hard = true
				rt.Text = strings.TrimRight(trimmed, " ")
			}
		}
	}
	p.append(&LineBreak{Hard: hard})
	p.pos++
	p.skipLeadingSpaces()
}

func (p *inlineParser) skipLeadingSpaces() {
	for p.pos < len(p.text) && (p.text[p.pos] == ' ' || p.text[p.pos] == '\t') {
		p.pos++
	}
}

var inlineMetaBytes = [256]bool{
	'\\': true, '`': true, '<': true, '&': true, '*': true, '_': true,
	'[': true, '!': true, ']': true, '\n': true,
}

func (p *inlineParser) scanText() {
	start := p.pos
	p.pos++
	for p.pos < len(p.text) && !inlineMetaBytes[p.text[p.pos]] {
		p.pos++
	}
	p.append(&RawText{Text: p.text[start:p.pos], Escape: true})
}

func registerBuiltinInlines(r *Registry) {
	// The built-in CommonMark inline kinds (code span, autolink, raw HTML,
	// entity, backslash escape, line break, emphasis/strong, link, image)
	// are implemented as a single hand-coded byte-dispatch scan in
	// inline.go rather than as Registry entries: their Phase-A/Phase-B
	// interaction (the delimiter stack) is a single piece of shared mutable
	// state that doesn't decompose cleanly into independent per-kind Try
	// closures the way block kinds do. Registry.inlines exists for
	// extensions layered on top (see extension/frontmatter for a parser
	// mixin example, and DESIGN.md for the discussion of this split).
}
