package md

import (
	"fmt"
	"strconv"
	"strings"
)

// MarkdownRenderer re-serializes a Document back to Markdown, escaping any
// RawText/Literal whose Escape flag demands it so the output reparses to
// an equivalent tree (the fixed-point property in spec.md section 8).
// Ported from the escaping and stanza-separation style of the teacher's
// FmtCodec (src.elv.sh/pkg/md/fmt.go), with its width-aware paragraph
// reflow kept as an optional feature driven by Width.
type MarkdownRenderer struct {
	base   *Renderer
	sb     strings.Builder
	Width  int
	prefix string
	tight  []bool
}

func NewMarkdownRenderer(mixins ...RendererMixin) *MarkdownRenderer {
	m := &MarkdownRenderer{base: newRenderer("markdown")}
	m.registerDefaults()
	applyRendererMixins(m.base, mixins)
	return m
}

func (m *MarkdownRenderer) RenderToString(doc *Document) (string, error) {
	m.sb.Reset()
	m.prefix = ""
	m.tight = nil
	m.base.resetVisiting()
	err := m.base.dispatch(doc)
	return m.sb.String(), err
}

func (m *MarkdownRenderer) write(s string) {
	m.sb.WriteString(strings.ReplaceAll(s, "\n", "\n"+m.prefix))
}

func (m *MarkdownRenderer) writeLinePrefix() {
	m.sb.WriteString(m.prefix)
}

func (m *MarkdownRenderer) inTight() bool {
	return len(m.tight) > 0 && m.tight[len(m.tight)-1]
}

func (m *MarkdownRenderer) renderBlocks(bs []Block) error {
	for i, b := range bs {
		if _, blank := b.(*BlankLine); blank {
			continue
		}
		if i > 0 {
			m.sb.WriteByte('\n')
			m.writeLinePrefix()
			m.sb.WriteByte('\n')
		}
		m.writeLinePrefix()
		if err := m.base.dispatch(b); err != nil {
			return err
		}
	}
	return nil
}

func (m *MarkdownRenderer) renderInlines(is []Inline) error {
	for _, i := range is {
		if err := m.base.dispatch(i); err != nil {
			return err
		}
	}
	return nil
}

func (m *MarkdownRenderer) registerDefaults() {
	r := m.base

	r.Register("document", func(e Element) error {
		return m.renderBlocks(e.(*Document).Children)
	})
	r.Register("blank_line", func(Element) error { return nil })
	r.Register("heading", func(e Element) error {
		n := e.(*Heading)
		m.write(strings.Repeat("#", n.Level) + " ")
		return m.renderInlines(n.Children)
	})
	r.Register("setext_heading", func(e Element) error {
		n := e.(*SetextHeading)
		under := "="
		if n.Level == 2 {
			under = "-"
		}
		text := plainText(n.Children)
		if err := m.renderInlines(n.Children); err != nil {
			return err
		}
		m.sb.WriteByte('\n')
		m.writeLinePrefix()
		m.sb.WriteString(strings.Repeat(under, max(1, stringWidth(text))))
		return nil
	})
	r.Register("code_block", func(e Element) error {
		n := e.(*CodeBlock)
		for _, line := range strings.Split(strings.TrimSuffix(rawTextOf(n.Children), "\n"), "\n") {
			m.write("    " + line + "\n")
		}
		return nil
	})
	r.Register("fenced_code", func(e Element) error {
		n := e.(*FencedCode)
		m.write("```" + n.Lang + "\n")
		m.write(rawTextOf(n.Children))
		m.write("```")
		return nil
	})
	r.Register("thematic_break", func(Element) error {
		m.write("---")
		return nil
	})
	r.Register("html_block", func(e Element) error {
		m.write(e.(*HTMLBlock).Raw)
		return nil
	})
	r.Register("link_ref_def", func(e Element) error {
		n := e.(*LinkRefDef)
		m.write(fmt.Sprintf("[%s]: %s", n.Label, n.Dest))
		if n.Title != "" {
			m.write(fmt.Sprintf(" %q", n.Title))
		}
		return nil
	})
	r.Register("paragraph", func(e Element) error {
		if m.Width <= 0 {
			return m.renderInlines(e.(*Paragraph).Children)
		}
		saved := m.sb
		m.sb = strings.Builder{}
		err := m.renderInlines(e.(*Paragraph).Children)
		rendered := m.sb.String()
		m.sb = saved
		m.write(reflow(rendered, m.Width))
		return err
	})
	r.Register("quote", func(e Element) error {
		outerPrefix := m.prefix
		m.prefix += "> "
		err := m.renderBlocks(e.(*Quote).Children)
		m.prefix = outerPrefix
		return err
	})
	r.Register("list", func(e Element) error {
		n := e.(*List)
		m.tight = append(m.tight, n.Tight)
		num := n.Start
		for i, child := range n.Children {
			item := child.(*ListItem)
			var marker string
			if n.Ordered {
				marker = strconv.Itoa(num) + string(n.Marker) + " "
				num++
			} else {
				marker = string(n.Marker) + " "
			}
			if i > 0 {
				m.sb.WriteByte('\n')
				if !n.Tight {
					m.writeLinePrefix()
					m.sb.WriteByte('\n')
				}
				m.writeLinePrefix()
			}
			m.sb.WriteString(marker)
			outerPrefix := m.prefix
			m.prefix += strings.Repeat(" ", len(marker))
			err := m.renderBlocks(item.Children)
			m.prefix = outerPrefix
			if err != nil {
				m.tight = m.tight[:len(m.tight)-1]
				return err
			}
		}
		m.tight = m.tight[:len(m.tight)-1]
		return nil
	})
	r.Register("list_item", func(e Element) error {
		return m.renderBlocks(e.(*ListItem).Children)
	})

	r.Register("raw_text", func(e Element) error {
		n := e.(*RawText)
		if n.Escape {
			m.write(escapeMarkdownText(n.Text))
		} else {
			m.write(n.Text)
		}
		return nil
	})
	r.Register("literal", func(e Element) error {
		m.write("\\" + e.(*Literal).Char)
		return nil
	})
	r.Register("line_break", func(e Element) error {
		if e.(*LineBreak).Hard {
			m.write("\\\n")
		} else {
			m.write("\n")
		}
		return nil
	})
	r.Register("code_span", func(e Element) error {
		text := e.(*CodeSpan).Text
		fence := "`"
		for strings.Contains(text, fence) {
			fence += "`"
		}
		pad := ""
		if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
			pad = " "
		}
		m.write(fence + pad + text + pad + fence)
		return nil
	})
	r.Register("emphasis", func(e Element) error {
		m.write("*")
		if err := m.renderInlines(e.(*Emphasis).Children); err != nil {
			return err
		}
		m.write("*")
		return nil
	})
	r.Register("strong_emphasis", func(e Element) error {
		m.write("**")
		if err := m.renderInlines(e.(*StrongEmphasis).Children); err != nil {
			return err
		}
		m.write("**")
		return nil
	})
	r.Register("link", func(e Element) error {
		n := e.(*Link)
		m.write("[")
		if err := m.renderInlines(n.Children); err != nil {
			return err
		}
		m.write("](" + n.Dest)
		if n.Title != "" {
			m.write(fmt.Sprintf(" %q", n.Title))
		}
		m.write(")")
		return nil
	})
	r.Register("image", func(e Element) error {
		n := e.(*Image)
		m.write("![" + escapeMarkdownText(plainText(n.Children)) + "](" + n.Dest)
		if n.Title != "" {
			m.write(fmt.Sprintf(" %q", n.Title))
		}
		m.write(")")
		return nil
	})
	r.Register("auto_link", func(e Element) error {
		m.write("<" + e.(*AutoLink).Dest + ">")
		return nil
	})
	r.Register("inline_html", func(e Element) error {
		m.write(e.(*InlineHTML).Raw)
		return nil
	})
}

// reflow word-wraps already-rendered Markdown inline content to width
// columns, breaking only at existing space boundaries so it never splits
// markup sequences such as "**bold**".
func reflow(s string, width int) string {
	var out strings.Builder
	for _, line := range strings.Split(s, "\n") {
		words := strings.Fields(line)
		col := 0
		for i, w := range words {
			ww := stringWidth(w)
			if i > 0 {
				if col+1+ww > width {
					out.WriteByte('\n')
					col = 0
				} else {
					out.WriteByte(' ')
					col++
				}
			}
			out.WriteString(w)
			col += ww
		}
		out.WriteByte('\n')
	}
	result := out.String()
	return strings.TrimSuffix(result, "\n")
}

var markdownEscapeSet = "\\`*_{}[]()#+-.!<>&"

func escapeMarkdownText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 128 && strings.IndexByte(markdownEscapeSet, byte(r)) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
