package md

// Element is the common interface satisfied by every node in a parsed
// document tree, block or inline.
type Element interface {
	// Kind is the dispatch name used by Registry and Renderer, e.g.
	// "paragraph" or "strong_emphasis". It is always the snake_case form of
	// the Go type name.
	Kind() string
}

// Block is an Element that can appear directly under Document, ListItem or
// Quote.
type Block interface {
	Element
	blockNode()
}

// Inline is an Element that can appear inside a Paragraph, Heading or any
// other inline-bearing block.
type Inline interface {
	Element
	inlineNode()
}

// Document is the root of every parsed tree.
type Document struct {
	Children []Block

	// LinkRefDefs holds link reference definitions collected while
	// scanning, keyed by their normalized label. They are never rendered
	// directly; inline Link/Image nodes that resolve against a reference
	// carry the resolved Dest/Title at parse time instead of a pointer back
	// here.
	LinkRefDefs map[string]*LinkRefDef

	// FrontMatter is populated only when a front-matter parser_mixin is in
	// use; nil otherwise.
	FrontMatter map[string]any
}

func (*Document) Kind() string { return "document" }
func (*Document) blockNode()   {}

// BlankLine is kept in the tree (rather than discarded) only where the
// CommonMark spec gives it structural significance, such as terminating a
// list's tightness; most parsing paths simply skip over blank lines without
// emitting this node.
type BlankLine struct{}

func (*BlankLine) Kind() string { return "blank_line" }
func (*BlankLine) blockNode()   {}

// Heading is an ATX heading (`#` through `######`).
type Heading struct {
	Level    int
	Children []Inline
}

func (*Heading) Kind() string { return "heading" }
func (*Heading) blockNode()   {}

// SetextHeading is produced only as a byproduct of a paragraph followed by a
// `=`/`-` underline; it is never matched directly by the block scanner.
type SetextHeading struct {
	Level    int
	Children []Inline
}

func (*SetextHeading) Kind() string { return "setext_heading" }
func (*SetextHeading) blockNode()   {}

// CodeBlock is an indented code block. Its sole child is a RawText with
// Escape set to false, since its content is never subject to Markdown
// re-escaping on reformat.
type CodeBlock struct {
	Children []Inline
}

func (*CodeBlock) Kind() string { return "code_block" }
func (*CodeBlock) blockNode()   {}

// FencedCode is a fenced (``` or ~~~) code block.
type FencedCode struct {
	Lang     string
	Children []Inline
}

func (*FencedCode) Kind() string { return "fenced_code" }
func (*FencedCode) blockNode()   {}

// ThematicBreak is a `***`/`---`/`___` rule.
type ThematicBreak struct{}

func (*ThematicBreak) Kind() string { return "thematic_break" }
func (*ThematicBreak) blockNode()   {}

// HTMLBlock is a raw HTML block (CommonMark types 1-7), stored verbatim.
type HTMLBlock struct {
	Raw string
}

func (*HTMLBlock) Kind() string { return "html_block" }
func (*HTMLBlock) blockNode()   {}

// LinkRefDef is a link reference definition. It is lifted onto
// Document.LinkRefDefs during scanning and never appears as a child of any
// other block.
type LinkRefDef struct {
	Label string // normalized label
	Dest  string
	Title string
}

func (*LinkRefDef) Kind() string { return "link_ref_def" }
func (*LinkRefDef) blockNode()   {}

// Paragraph holds the inline content between blank lines or block
// boundaries.
type Paragraph struct {
	Children []Inline
}

func (*Paragraph) Kind() string { return "paragraph" }
func (*Paragraph) blockNode()   {}

// Quote is a block quote container.
type Quote struct {
	Children []Block
}

func (*Quote) Kind() string { return "quote" }
func (*Quote) blockNode()   {}

// List is a bullet or ordered list container.
type List struct {
	Ordered bool
	Start   int  // first item number, ordered lists only
	Tight   bool // computed once the list closes
	Marker  byte // '-', '*', '+', '.', or ')'
	Children []Block // ListItem only
}

func (*List) Kind() string { return "list" }
func (*List) blockNode()   {}

// ListItem is a single item of a List.
type ListItem struct {
	Children []Block
}

func (*ListItem) Kind() string { return "list_item" }
func (*ListItem) blockNode()   {}

// RawText is a run of literal text. Escape controls whether the Markdown
// renderer re-escapes it on reformat; it is always true for ordinary inline
// prose and false for verbatim content such as code.
type RawText struct {
	Text   string
	Escape bool
}

func (*RawText) Kind() string { return "raw_text" }
func (*RawText) inlineNode()  {}

// Literal is a single backslash-escaped character, preserved verbatim and
// never re-interpreted as Markdown syntax.
type Literal struct {
	Char string
}

func (*Literal) Kind() string { return "literal" }
func (*Literal) inlineNode()  {}

// LineBreak is either a soft (ordinary newline) or hard (trailing backslash
// or two-or-more trailing spaces) line break inside inline content.
type LineBreak struct {
	Hard bool
}

func (*LineBreak) Kind() string { return "line_break" }
func (*LineBreak) inlineNode()  {}

// CodeSpan is inline code delimited by one or more backticks.
type CodeSpan struct {
	Text string
}

func (*CodeSpan) Kind() string { return "code_span" }
func (*CodeSpan) inlineNode()  {}

// Emphasis is produced only by the delimiter-stack resolution pass; it is
// virtual with respect to the block/inline kind registry (never matched
// directly).
type Emphasis struct {
	Children []Inline
}

func (*Emphasis) Kind() string { return "emphasis" }
func (*Emphasis) inlineNode()  {}

// StrongEmphasis is Emphasis's two-delimiter sibling, likewise virtual.
type StrongEmphasis struct {
	Children []Inline
}

func (*StrongEmphasis) Kind() string { return "strong_emphasis" }
func (*StrongEmphasis) inlineNode()  {}

// Link is an inline link, resolved either from an inline `(dest "title")`
// tail or from a matching LinkRefDef.
type Link struct {
	Dest     string
	Title    string
	Children []Inline
}

func (*Link) Kind() string { return "link" }
func (*Link) inlineNode()  {}

// Image mirrors Link; its Children hold the same label content a Link
// would, and it is the renderer's job (not the parser's) to flatten that
// content to plain text for an `alt` attribute.
type Image struct {
	Dest     string
	Title    string
	Children []Inline
}

func (*Image) Kind() string { return "image" }
func (*Image) inlineNode()  {}

// AutoLink is a `<scheme:...>` or bare-email autolink.
type AutoLink struct {
	Dest string
	Text string
}

func (*AutoLink) Kind() string { return "auto_link" }
func (*AutoLink) inlineNode()  {}

// InlineHTML is a raw inline HTML tag or comment, stored verbatim.
type InlineHTML struct {
	Raw string
}

func (*InlineHTML) Kind() string { return "inline_html" }
func (*InlineHTML) inlineNode()  {}

// plainText flattens a run of inline content to its visible text, stripping
// all markup. Used by renderers computing an image's alt attribute, by the
// Markdown renderer to size a setext underline, and by the inline tokenizer
// to read a shortcut reference's label.
func plainText(nodes []Inline) string {
	var b []byte
	for _, n := range nodes {
		b = appendPlainText(b, n)
	}
	return string(b)
}

func appendPlainText(b []byte, n Inline) []byte {
	switch v := n.(type) {
	case *RawText:
		return append(b, v.Text...)
	case *Literal:
		return append(b, v.Char...)
	case *CodeSpan:
		return append(b, v.Text...)
	case *LineBreak:
		return append(b, '\n')
	case *AutoLink:
		return append(b, v.Text...)
	case *InlineHTML:
		return b
	case *Emphasis:
		return appendChildrenPlainText(b, v.Children)
	case *StrongEmphasis:
		return appendChildrenPlainText(b, v.Children)
	case *Link:
		return appendChildrenPlainText(b, v.Children)
	case *Image:
		return appendChildrenPlainText(b, v.Children)
	default:
		return b
	}
}

func appendChildrenPlainText(b []byte, children []Inline) []byte {
	for _, c := range children {
		b = appendPlainText(b, c)
	}
	return b
}
