package md

import (
	"regexp"
	"strings"
)

// BlockParser drives the block scanner: a container stack plus a
// registry-ordered search, at every line, for the highest-priority kind
// willing to claim it. Structured after the teacher's blockParser
// (src.elv.sh/pkg/md), generalized from "write output as each line is
// recognized" to "build a retained tree."
type BlockParser struct {
	registry *Registry
	cur      *cursor
	doc      *Document

	containers []*containerFrame
	paragraph  []string

	// contRemainder is set by a container-starting BlockKind's Try just
	// before it returns true; dispatch re-enters the registry search with
	// this text, one container deeper, on the same source line.
	contRemainder string

	// freshLine is true only for the first dispatch iteration on a given
	// source line (before this call has pushed any new container). It lets
	// list_start distinguish "new sibling item of the list already open
	// here" from "a genuinely nested sub-list opened earlier in this same
	// line."
	freshLine bool

	// pending holds every span of raw text whose inline parsing was put
	// off until the whole document has been scanned, because a link
	// reference definition is allowed to appear after the text that uses
	// it. See DeferInline.
	pending []pendingInline
}

// pendingInline is one span of raw inline text collected during block
// scanning, plus the callback that installs its parsed form once every
// link reference definition in the document is known.
type pendingInline struct {
	text string
	set  func([]Inline)
}

// DeferInline schedules text for inline parsing once the entire document
// has been scanned, rather than immediately: link reference definitions
// may be declared anywhere in a document, including after the paragraph
// or heading that references them, so no paragraph or heading can be
// safely inline-parsed against p.doc.LinkRefDefs until scanning is done.
// set is called exactly once, during ParseBlocks' final resolution pass,
// with the resulting Inline tree.
func (p *BlockParser) DeferInline(text string, set func([]Inline)) {
	p.pending = append(p.pending, pendingInline{text: text, set: set})
}

// ParseBlocks scans text into a Document using reg's registered block
// kinds. It never fails: unrecognized input always falls through to the
// paragraph kind.
func ParseBlocks(text string, reg *Registry) *Document {
	p := &BlockParser{
		registry: reg,
		cur:      newCursor(text),
		doc:      &Document{LinkRefDefs: map[string]*LinkRefDef{}},
	}
	for p.cur.more() {
		line, _ := p.cur.peek()
		matched, remainder := p.peelContainers(line)
		if matched < len(p.containers) {
			if p.paragraph != nil && !isBlankLine(remainder) && !p.lineInterruptsParagraph(remainder) {
				p.paragraph = append(p.paragraph, strings.TrimLeft(remainder, " \t"))
				p.cur.take()
				continue
			}
			p.closeContainers(matched)
		}
		p.dispatch(remainder)
	}
	p.finalizeParagraph()
	p.closeContainers(0)
	p.resolvePending()
	return p.doc
}

// Take consumes and returns the current source line, advancing the cursor.
// Extensions' Try functions use this instead of reaching into the cursor
// directly (which they cannot do: cursor is unexported).
func (p *BlockParser) Take() (string, bool) { return p.cur.take() }

// Peek returns the current source line without consuming it.
func (p *BlockParser) Peek() (string, bool) { return p.cur.peek() }

// PeekAt returns the source line offset lines ahead of the current one
// (offset 0 is equivalent to Peek), without consuming anything.
func (p *BlockParser) PeekAt(offset int) (string, bool) { return p.cur.peekAt(offset) }

// AppendChild attaches b as a child of whichever container is innermost
// open right now (or of the Document itself, if none is).
func (p *BlockParser) AppendChild(b Block) { p.appendChild(b) }

// Document returns the in-progress Document being built. A Try function
// may set fields on it directly (as the front-matter extension does with
// FrontMatter) rather than appending a Block.
func (p *BlockParser) Document() *Document { return p.doc }

// AtStart reports whether this call is the very first thing being
// dispatched for the whole document: no containers open, nothing in the
// paragraph buffer, no children yet, and the cursor still at line zero.
// Front matter and similar document-preamble kinds use this to refuse
// everywhere except the top of the file.
func (p *BlockParser) AtStart() bool {
	return len(p.containers) == 0 && len(p.doc.Children) == 0 &&
		p.paragraph == nil && p.cur.save() == 0
}

func (p *BlockParser) appendChild(b Block) {
	if len(p.containers) == 0 {
		p.doc.Children = append(p.doc.Children, b)
		return
	}
	f := p.containers[len(p.containers)-1]
	if f.quote != nil {
		f.quote.Children = append(f.quote.Children, b)
	} else {
		f.item.Children = append(f.item.Children, b)
	}
}

func (p *BlockParser) peelContainers(line string) (matched int, remainder string) {
	remainder = line
	for i, f := range p.containers {
		rest, ok := f.continuation(remainder)
		if !ok {
			return i, remainder
		}
		remainder = rest
		matched = i + 1
	}
	return matched, remainder
}

func (p *BlockParser) lineInterruptsParagraph(line string) bool {
	if isBlankLine(line) {
		return true
	}
	if setextUnderlineRegexp.MatchString(line) && !isThematicBreakLine(line) {
		return false // a lazy line never underlines the paragraph: it is plain continuation text
	}
	for _, k := range p.registry.blocks {
		if k.Virtual || !k.CanInterrupt || k.Peek == nil {
			continue
		}
		if k.Peek(line) {
			return true
		}
	}
	return false
}

// closeContainers pops every container at index `down` and above, leaving
// the first `down` open, finalizing any open paragraph first and
// recomputing the tightness of the list owning each closed item.
func (p *BlockParser) closeContainers(down int) {
	p.finalizeParagraph()
	for len(p.containers) > down {
		last := len(p.containers) - 1
		f := p.containers[last]
		p.containers = p.containers[:last]
		if f.list != nil && (last == 0 || p.containers[last-1].list != f.list) {
			finalizeListTightness(f.list)
		}
	}
}

func finalizeListTightness(l *List) {
	// A blank line trailing the very last item, with nothing in that item
	// after it, is just the separator before the list closes (end of
	// input, or a dedented block that ends the list) — it never
	// participates in the tight/loose decision. A blank line anywhere else
	// (between two block children of one item, or between two items) does.
	// This runs each time an item of l closes, so it skips that trailing
	// run without removing it: the item may yet be followed by a sibling.
	l.Tight = true
	for i, child := range l.Children {
		children := child.(*ListItem).Children
		if i == len(l.Children)-1 {
			for len(children) > 0 {
				if _, ok := children[len(children)-1].(*BlankLine); !ok {
					break
				}
				children = children[:len(children)-1]
			}
		}
		for _, c := range children {
			if _, ok := c.(*BlankLine); ok {
				l.Tight = false
				return
			}
		}
	}
}

func (p *BlockParser) dispatch(line string) {
	p.freshLine = true
	for {
		if p.paragraph != nil && setextUnderlineRegexp.MatchString(line) {
			level := 1
			if strings.TrimLeft(line, " ")[0] == '-' {
				level = 2
			}
			p.finalizeParagraphAs(func(children []Inline) Block {
				return &SetextHeading{Level: level, Children: children}
			})
			p.cur.take()
			return
		}
		if isBlankLine(line) {
			p.finalizeParagraph()
			p.markBlankInCurrentItem()
			p.cur.take()
			return
		}
		var matched *BlockKind
		for _, k := range p.registry.blocks {
			if k.Virtual {
				continue
			}
			// A kind that is about to interrupt an in-progress paragraph
			// must not be appended before that paragraph is: doc order
			// would come out wrong (the interrupting block first, the
			// paragraph it interrupted second) since the paragraph buffer
			// isn't itself a tree node until finalizeParagraph appends it.
			// Peek lets us find out whether this kind will claim the line
			// without it actually consuming anything, so the paragraph can
			// be finalized first when it will.
			if p.paragraph != nil && k.CanInterrupt && k.Peek != nil && k.Peek(line) {
				p.finalizeParagraph()
			}
			if k.Try(p, line, p.paragraph == nil) {
				matched = k
				break
			}
		}
		if matched == nil {
			p.cur.take()
			return
		}
		if matched.IsContainer {
			line = p.contRemainder
			p.freshLine = false
			continue
		}
		return
	}
}

func (p *BlockParser) markBlankInCurrentItem() {
	for _, f := range p.containers {
		if f.item != nil {
			f.sawBlankLine = true
			if len(f.item.Children) > 0 {
				f.item.Children = append(f.item.Children, &BlankLine{})
			}
		}
	}
}

func (p *BlockParser) finalizeParagraph() {
	p.finalizeParagraphAs(func(children []Inline) Block {
		return &Paragraph{Children: children}
	})
}

func (p *BlockParser) finalizeParagraphAs(wrap func([]Inline) Block) {
	if p.paragraph == nil {
		return
	}
	text := strings.Join(p.paragraph, "\n")
	p.paragraph = nil
	block := wrap(nil)
	p.appendChild(block)
	p.DeferInline(text, func(children []Inline) { setInlineChildren(block, children) })
}

// setInlineChildren installs a resolved Inline tree on whichever block
// kind DeferInline was scheduled for.
func setInlineChildren(b Block, children []Inline) {
	switch n := b.(type) {
	case *Paragraph:
		n.Children = children
	case *Heading:
		n.Children = children
	case *SetextHeading:
		n.Children = children
	}
}

// resolvePending runs ParseInline over every span DeferInline collected,
// now that every link reference definition in the document (wherever it
// appeared) is in p.doc.LinkRefDefs.
func (p *BlockParser) resolvePending() {
	for _, pi := range p.pending {
		pi.set(ParseInline(pi.text, p.registry, p.doc.LinkRefDefs))
	}
	p.pending = nil
}

func registerBuiltinBlocks(r *Registry) {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(r.AddBlock(&BlockKind{
		Name: "thematic_break", Priority: 100, CanInterrupt: true,
		Peek: isThematicBreakLine,
		Try: func(b *BlockParser, line string, newParagraph bool) bool {
			if !isThematicBreakLine(line) {
				return false
			}
			b.appendChild(&ThematicBreak{})
			b.cur.take()
			return true
		},
	}))

	must(r.AddBlock(&BlockKind{
		Name: "heading", Priority: 95, CanInterrupt: true,
		Peek: func(line string) bool { return atxHeadingRegexp.MatchString(line) },
		Try: func(b *BlockParser, line string, newParagraph bool) bool {
			m := atxHeadingRegexp.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			level := len(m[1])
			text := strings.TrimRight(m[2], " \t")
			text = trimATXClosingSequence(text)
			h := &Heading{Level: level}
			b.appendChild(h)
			b.DeferInline(text, func(children []Inline) { h.Children = children })
			b.cur.take()
			return true
		},
	}))

	must(r.AddBlock(&BlockKind{
		Name: "fenced_code", Priority: 90, CanInterrupt: true,
		Peek: func(line string) bool { return codeFenceRegexp.MatchString(line) },
		Try: func(b *BlockParser, line string, newParagraph bool) bool {
			m := codeFenceRegexp.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			indent, _ := indentWidth(line)
			fenceChar := m[1][0]
			fenceLen := len(m[1])
			lang := strings.Fields(m[2])
			langName := ""
			if len(lang) > 0 {
				langName = lang[0]
			}
			b.cur.take()
			var buf []string
			for {
				raw, ok := b.cur.peek()
				if !ok {
					break
				}
				matched, remainder := b.peelContainers(raw)
				if matched < len(b.containers) {
					break
				}
				if isClosingFence(remainder, fenceChar, fenceLen) {
					b.cur.take()
					break
				}
				rest, _ := consumeIndent(remainder, indent)
				buf = append(buf, rest)
				b.cur.take()
			}
			text := strings.Join(buf, "\n")
			if len(buf) > 0 {
				text += "\n"
			}
			b.appendChild(&FencedCode{Lang: langName, Children: []Inline{&RawText{Text: text, Escape: false}}})
			return true
		},
	}))

	must(r.AddBlock(&BlockKind{
		Name: "html_block", Priority: 85, CanInterrupt: true,
		Peek: func(line string) bool { return htmlBlockStartRegexp.MatchString(strings.TrimLeft(line, " ")) },
		Try: func(b *BlockParser, line string, newParagraph bool) bool {
			if !htmlBlockStartRegexp.MatchString(strings.TrimLeft(line, " ")) {
				return false
			}
			var buf []string
			for {
				raw, ok := b.cur.peek()
				if !ok {
					break
				}
				matched, remainder := b.peelContainers(raw)
				if matched < len(b.containers) {
					break
				}
				if len(buf) > 0 && isBlankLine(remainder) {
					break
				}
				buf = append(buf, remainder)
				b.cur.take()
			}
			b.appendChild(&HTMLBlock{Raw: strings.Join(buf, "\n")})
			return true
		},
	}))

	must(r.AddBlock(&BlockKind{
		Name: "html_block_bare_tag", Priority: 84, CanInterrupt: false,
		Try: func(b *BlockParser, line string, newParagraph bool) bool {
			if !newParagraph || !htmlBareTagLineRegexp.MatchString(strings.TrimSpace(line)) {
				return false
			}
			var buf []string
			for {
				raw, ok := b.cur.peek()
				if !ok {
					break
				}
				matched, remainder := b.peelContainers(raw)
				if matched < len(b.containers) || isBlankLine(remainder) {
					break
				}
				buf = append(buf, remainder)
				b.cur.take()
			}
			b.appendChild(&HTMLBlock{Raw: strings.Join(buf, "\n")})
			return true
		},
	}))

	must(r.AddBlock(&BlockKind{
		Name: "block_quote_start", Priority: 80, CanInterrupt: true, IsContainer: true,
		Peek: func(line string) bool {
			indent, offset := indentWidth(line)
			return indent <= 3 && offset < len(line) && line[offset] == '>'
		},
		Try: func(b *BlockParser, line string, newParagraph bool) bool {
			indent, offset := indentWidth(line)
			if indent > 3 || offset >= len(line) || line[offset] != '>' {
				return false
			}
			rest := line[offset+1:]
			if len(rest) > 0 && rest[0] == ' ' {
				rest = rest[1:]
			}
			q := &Quote{}
			b.appendChild(q)
			b.containers = append(b.containers, &containerFrame{quote: q})
			b.contRemainder = rest
			return true
		},
	}))

	must(r.AddBlock(&BlockKind{
		Name: "list_start", Priority: 75, CanInterrupt: true, IsContainer: true,
		Peek: func(line string) bool {
			indent, offset := indentWidth(line)
			if indent > 3 {
				return false
			}
			rest := line[offset:]
			if _, _, _, ok := matchBulletMarker(rest); ok {
				return true
			}
			_, _, _, ok := matchOrderedMarker(rest)
			return ok
		},
		Try: func(b *BlockParser, line string, newParagraph bool) bool {
			indent, offset := indentWidth(line)
			if indent > 3 {
				return false
			}
			rest := line[offset:]
			var ordered bool
			var marker byte
			var start int
			var afterMarker string
			if m, w, r, ok := matchBulletMarker(rest); ok {
				marker, afterMarker = m, r
				_ = w
			} else if n, d, r, ok := matchOrderedMarker(rest); ok {
				ordered, marker, start, afterMarker = true, d, n, r
			} else {
				return false
			}
			// A bullet line can also be a setext underline or a thematic
			// break: dispatch checks for a setext underline before trying
			// any kind, and thematic_break has a higher Priority than this
			// kind, so reaching here already means this wins.
			width := offset + (len(rest) - len(afterMarker))
			if strings.TrimSpace(afterMarker) == "" && afterMarker != "" {
				// Marker followed only by trailing whitespace to end of
				// line: per CommonMark the content column is one space
				// past the marker, not the full run of trailing spaces.
				width = offset + (len(rest) - len(afterMarker)) - (len(afterMarker) - 1)
			}

			if b.freshLine && len(b.containers) > 0 {
				if top := b.containers[len(b.containers)-1]; top.item != nil {
					// A fresh marker at the current item's own content
					// column is always a new item, whether of the same
					// list (reused below by matching Ordered/Marker) or of
					// a fresh sibling list (a new List node, appended at
					// this same, now-current, nesting level).
					b.closeContainers(len(b.containers) - 1)
				}
			}

			var list *List
			if len(b.containers) > 0 {
				if top := b.containers[len(b.containers)-1]; top.list != nil &&
					top.list.Ordered == ordered && top.list.Marker == marker {
					list = top.list
				}
			} else if len(b.doc.Children) > 0 {
				if l, ok := b.doc.Children[len(b.doc.Children)-1].(*List); ok &&
					l.Ordered == ordered && l.Marker == marker {
					list = l
				}
			}
			if list == nil {
				list = &List{Ordered: ordered, Marker: marker, Start: start}
				b.appendChild(list)
			}
			item := &ListItem{}
			list.Children = append(list.Children, item)
			b.containers = append(b.containers, &containerFrame{list: list, item: item, width: width})
			b.contRemainder = afterMarker
			return true
		},
	}))

	must(r.AddBlock(&BlockKind{
		Name: "link_ref_def", Priority: 70, CanInterrupt: false,
		Try: func(b *BlockParser, line string, newParagraph bool) bool {
			if !newParagraph {
				return false
			}
			m := linkRefDefRegexp.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			label := normalizeLabel(m[1])
			dest := m[2]
			if dest == "" {
				dest = m[3]
			}
			title := m[4]
			if title == "" {
				title = m[5]
			}
			if title == "" {
				title = m[6]
			}
			if _, exists := b.doc.LinkRefDefs[label]; !exists {
				b.doc.LinkRefDefs[label] = &LinkRefDef{Label: label, Dest: unescapeLinkDest(dest), Title: unescapeLinkTitle(title)}
			}
			b.cur.take()
			return true
		},
	}))

	must(r.AddBlock(&BlockKind{
		Name: "indented_code", Priority: 60, CanInterrupt: false,
		Try: func(b *BlockParser, line string, newParagraph bool) bool {
			if !newParagraph {
				return false
			}
			if w, _ := indentWidth(line); w < 4 {
				return false
			}
			var buf []string
			for {
				raw, ok := b.cur.peek()
				if !ok {
					break
				}
				matched, remainder := b.peelContainers(raw)
				if matched < len(b.containers) {
					break
				}
				if isBlankLine(remainder) {
					buf = append(buf, "")
					b.cur.take()
					continue
				}
				w, _ := indentWidth(remainder)
				if w < 4 {
					break
				}
				rest, _ := consumeIndent(remainder, 4)
				buf = append(buf, rest)
				b.cur.take()
			}
			for len(buf) > 0 && buf[len(buf)-1] == "" {
				buf = buf[:len(buf)-1]
			}
			text := strings.Join(buf, "\n")
			if len(buf) > 0 {
				text += "\n"
			}
			b.appendChild(&CodeBlock{Children: []Inline{&RawText{Text: text, Escape: false}}})
			return true
		},
	}))

	must(r.AddBlock(&BlockKind{
		Name: "paragraph", Priority: 0, CanInterrupt: false,
		Try: func(b *BlockParser, line string, newParagraph bool) bool {
			b.paragraph = append(b.paragraph, strings.TrimLeft(line, " \t"))
			b.cur.take()
			return true
		},
	}))
}

func trimATXClosingSequence(s string) string {
	trimmed := strings.TrimRight(s, " \t")
	i := len(trimmed)
	for i > 0 && trimmed[i-1] == '#' {
		i--
	}
	if i == len(trimmed) {
		return trimmed
	}
	if i == 0 || trimmed[i-1] == ' ' || trimmed[i-1] == '\t' {
		return strings.TrimRight(trimmed[:i], " \t")
	}
	return trimmed
}

func isClosingFence(line string, fenceChar byte, minLen int) bool {
	indent, offset := indentWidth(line)
	if indent > 3 {
		return false
	}
	rest := line[offset:]
	n := 0
	for n < len(rest) && rest[n] == fenceChar {
		n++
	}
	if n < minLen {
		return false
	}
	return strings.TrimSpace(rest[n:]) == ""
}

var (
	htmlBlockStartRegexp = regexp.MustCompile(`(?i)^<(script|pre|style|textarea|!--|\?|!|/?(address|article|aside|base|basefont|blockquote|body|caption|center|col|colgroup|dd|details|dialog|dir|div|dl|dt|fieldset|figcaption|figure|footer|form|frame|frameset|h[1-6]|head|header|hr|html|iframe|legend|li|link|main|menu|menuitem|nav|noframes|ol|optgroup|option|p|param|section|summary|table|tbody|td|tfoot|th|thead|title|tr|track|ul)(\s|/?>|$))`)
	htmlBareTagLineRegexp = regexp.MustCompile(`^</?[a-zA-Z][a-zA-Z0-9-]*(\s[^<>]*)?/?>$`)
	linkRefDefRegexp      = regexp.MustCompile(`^ {0,3}\[([^\]]+)\]:\s*(?:<([^<>]*)>|(\S+))\s*(?:"([^"]*)"|'([^']*)'|\(([^()]*)\))?\s*$`)
)

func normalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
