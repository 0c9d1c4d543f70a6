package md

import (
	"fmt"
	"strings"
)

// HTMLRenderer renders a Document to an HTML fragment. It is a thin
// consumer of the Renderer dispatch contract: every render_<kind> method
// below writes directly into sb and recurses through renderBlocks/
// renderInlines, which go through the same dispatch table so a
// RendererMixin-supplied override for any kind is honored uniformly.
type HTMLRenderer struct {
	base      *Renderer
	sb        strings.Builder
	tightList []bool
}

// NewHTMLRenderer returns an HTMLRenderer with the built-in CommonMark
// kinds registered, followed by mixins in order.
func NewHTMLRenderer(mixins ...RendererMixin) *HTMLRenderer {
	h := &HTMLRenderer{base: newRenderer("html")}
	h.registerDefaults()
	applyRendererMixins(h.base, mixins)
	return h
}

// RenderToString renders doc and returns the resulting HTML.
func (h *HTMLRenderer) RenderToString(doc *Document) (string, error) {
	h.sb.Reset()
	h.base.resetVisiting()
	err := h.base.dispatch(doc)
	return h.sb.String(), err
}

func (h *HTMLRenderer) renderBlocks(bs []Block) error {
	for _, b := range bs {
		if err := h.base.dispatch(b); err != nil {
			return err
		}
	}
	return nil
}

func (h *HTMLRenderer) renderInlines(is []Inline) error {
	for _, i := range is {
		if err := h.base.dispatch(i); err != nil {
			return err
		}
	}
	return nil
}

func (h *HTMLRenderer) inTightList() bool {
	return len(h.tightList) > 0 && h.tightList[len(h.tightList)-1]
}

func (h *HTMLRenderer) registerDefaults() {
	r := h.base

	r.Register("document", func(e Element) error {
		return h.renderBlocks(e.(*Document).Children)
	})
	r.Register("blank_line", func(Element) error { return nil })
	r.Register("heading", func(e Element) error {
		n := e.(*Heading)
		fmt.Fprintf(&h.sb, "<h%d>", n.Level)
		if err := h.renderInlines(n.Children); err != nil {
			return err
		}
		fmt.Fprintf(&h.sb, "</h%d>\n", n.Level)
		return nil
	})
	r.Register("setext_heading", func(e Element) error {
		n := e.(*SetextHeading)
		fmt.Fprintf(&h.sb, "<h%d>", n.Level)
		if err := h.renderInlines(n.Children); err != nil {
			return err
		}
		fmt.Fprintf(&h.sb, "</h%d>\n", n.Level)
		return nil
	})
	r.Register("code_block", func(e Element) error {
		n := e.(*CodeBlock)
		h.sb.WriteString("<pre><code>")
		h.sb.WriteString(escapeHTML(rawTextOf(n.Children)))
		h.sb.WriteString("</code></pre>\n")
		return nil
	})
	r.Register("fenced_code", func(e Element) error {
		n := e.(*FencedCode)
		h.sb.WriteString("<pre><code")
		if n.Lang != "" {
			h.sb.WriteString(" class=\"language-")
			h.sb.WriteString(escapeHTML(n.Lang))
			h.sb.WriteByte('"')
		}
		h.sb.WriteByte('>')
		h.sb.WriteString(escapeHTML(rawTextOf(n.Children)))
		h.sb.WriteString("</code></pre>\n")
		return nil
	})
	r.Register("thematic_break", func(Element) error {
		h.sb.WriteString("<hr />\n")
		return nil
	})
	r.Register("html_block", func(e Element) error {
		h.sb.WriteString(e.(*HTMLBlock).Raw)
		h.sb.WriteByte('\n')
		return nil
	})
	r.Register("link_ref_def", func(Element) error { return nil })
	r.Register("paragraph", func(e Element) error {
		n := e.(*Paragraph)
		if h.inTightList() {
			return h.renderInlines(n.Children)
		}
		h.sb.WriteString("<p>")
		if err := h.renderInlines(n.Children); err != nil {
			return err
		}
		h.sb.WriteString("</p>\n")
		return nil
	})
	r.Register("quote", func(e Element) error {
		h.sb.WriteString("<blockquote>\n")
		if err := h.renderBlocks(e.(*Quote).Children); err != nil {
			return err
		}
		h.sb.WriteString("</blockquote>\n")
		return nil
	})
	r.Register("list", func(e Element) error {
		n := e.(*List)
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		h.sb.WriteByte('<')
		h.sb.WriteString(tag)
		if n.Ordered && n.Start != 1 {
			fmt.Fprintf(&h.sb, " start=\"%d\"", n.Start)
		}
		h.sb.WriteString(">\n")
		h.tightList = append(h.tightList, n.Tight)
		err := h.renderBlocks(n.Children)
		h.tightList = h.tightList[:len(h.tightList)-1]
		if err != nil {
			return err
		}
		h.sb.WriteString("</")
		h.sb.WriteString(tag)
		h.sb.WriteString(">\n")
		return nil
	})
	r.Register("list_item", func(e Element) error {
		h.sb.WriteString("<li>")
		for _, c := range e.(*ListItem).Children {
			// Every child block except an unwrapped tight-list paragraph
			// starts on a line of its own.
			_, para := c.(*Paragraph)
			_, blank := c.(*BlankLine)
			if out := h.sb.String(); !blank && !(para && h.inTightList()) && out[len(out)-1] != '\n' {
				h.sb.WriteByte('\n')
			}
			if err := h.base.dispatch(c); err != nil {
				return err
			}
		}
		h.sb.WriteString("</li>\n")
		return nil
	})

	r.Register("raw_text", func(e Element) error {
		h.sb.WriteString(escapeHTML(e.(*RawText).Text))
		return nil
	})
	r.Register("literal", func(e Element) error {
		h.sb.WriteString(escapeHTML(e.(*Literal).Char))
		return nil
	})
	r.Register("line_break", func(e Element) error {
		if e.(*LineBreak).Hard {
			h.sb.WriteString("<br />\n")
		} else {
			h.sb.WriteByte('\n')
		}
		return nil
	})
	r.Register("code_span", func(e Element) error {
		h.sb.WriteString("<code>")
		h.sb.WriteString(escapeHTML(e.(*CodeSpan).Text))
		h.sb.WriteString("</code>")
		return nil
	})
	r.Register("emphasis", func(e Element) error {
		h.sb.WriteString("<em>")
		if err := h.renderInlines(e.(*Emphasis).Children); err != nil {
			return err
		}
		h.sb.WriteString("</em>")
		return nil
	})
	r.Register("strong_emphasis", func(e Element) error {
		h.sb.WriteString("<strong>")
		if err := h.renderInlines(e.(*StrongEmphasis).Children); err != nil {
			return err
		}
		h.sb.WriteString("</strong>")
		return nil
	})
	r.Register("link", func(e Element) error {
		n := e.(*Link)
		h.sb.WriteString("<a href=\"")
		h.sb.WriteString(escapeURL(n.Dest))
		h.sb.WriteByte('"')
		if n.Title != "" {
			h.sb.WriteString(" title=\"")
			h.sb.WriteString(escapeHTML(n.Title))
			h.sb.WriteByte('"')
		}
		h.sb.WriteByte('>')
		if err := h.renderInlines(n.Children); err != nil {
			return err
		}
		h.sb.WriteString("</a>")
		return nil
	})
	r.Register("image", func(e Element) error {
		n := e.(*Image)
		h.sb.WriteString("<img src=\"")
		h.sb.WriteString(escapeURL(n.Dest))
		h.sb.WriteString("\" alt=\"")
		h.sb.WriteString(escapeHTML(plainText(n.Children)))
		h.sb.WriteByte('"')
		if n.Title != "" {
			h.sb.WriteString(" title=\"")
			h.sb.WriteString(escapeHTML(n.Title))
			h.sb.WriteByte('"')
		}
		h.sb.WriteString(" />")
		return nil
	})
	r.Register("auto_link", func(e Element) error {
		n := e.(*AutoLink)
		h.sb.WriteString("<a href=\"")
		h.sb.WriteString(escapeURL(n.Dest))
		h.sb.WriteString("\">")
		h.sb.WriteString(escapeHTML(n.Text))
		h.sb.WriteString("</a>")
		return nil
	})
	r.Register("inline_html", func(e Element) error {
		h.sb.WriteString(e.(*InlineHTML).Raw)
		return nil
	})
}

func rawTextOf(children []Inline) string {
	if len(children) == 1 {
		if rt, ok := children[0].(*RawText); ok {
			return rt.Text
		}
	}
	var b strings.Builder
	for _, c := range children {
		if rt, ok := c.(*RawText); ok {
			b.WriteString(rt.Text)
		}
	}
	return b.String()
}
