package md

// ASTRenderer serializes a Document to a tree of map[string]any values —
// `{"element": <kind>, ...fields, "children": [...]}` — suitable for
// json.Marshal. Grounded on the teacher's TraceCodec (src.elv.sh/pkg/md/
// trace.go), generalized from a flat structural dump to real nesting.
//
// ASTRenderer is non-delegating: every render_<kind> method below builds
// and returns its own map directly rather than calling another kind's
// method, so a RendererMixin overriding one kind's output shape never
// perturbs how its children are serialized.
type ASTRenderer struct {
	base *Renderer
	out  any
}

func NewASTRenderer(mixins ...RendererMixin) *ASTRenderer {
	a := &ASTRenderer{base: newRenderer("ast")}
	a.registerDefaults()
	applyRendererMixins(a.base, mixins)
	return a
}

// RenderToTree renders doc to its generic map/slice representation.
func (a *ASTRenderer) RenderToTree(doc *Document) (any, error) {
	a.base.resetVisiting()
	a.out = nil
	if err := a.base.dispatch(doc); err != nil {
		return nil, err
	}
	return a.out, nil
}

func (a *ASTRenderer) renderBlocks(bs []Block) ([]any, error) {
	out := make([]any, 0, len(bs))
	for _, b := range bs {
		a.out = nil
		if err := a.base.dispatch(b); err != nil {
			return nil, err
		}
		out = append(out, a.out)
	}
	return out, nil
}

func (a *ASTRenderer) renderInlines(is []Inline) ([]any, error) {
	out := make([]any, 0, len(is))
	for _, i := range is {
		a.out = nil
		if err := a.base.dispatch(i); err != nil {
			return nil, err
		}
		out = append(out, a.out)
	}
	return out, nil
}

func (a *ASTRenderer) registerDefaults() {
	r := a.base

	r.Register("document", func(e Element) error {
		n := e.(*Document)
		children, err := a.renderBlocks(n.Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{"element": "document", "children": children}
		return nil
	})
	r.Register("blank_line", func(Element) error {
		a.out = map[string]any{"element": "blank_line"}
		return nil
	})
	r.Register("heading", func(e Element) error {
		n := e.(*Heading)
		children, err := a.renderInlines(n.Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{"element": "heading", "level": n.Level, "children": children}
		return nil
	})
	r.Register("setext_heading", func(e Element) error {
		n := e.(*SetextHeading)
		children, err := a.renderInlines(n.Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{"element": "setext_heading", "level": n.Level, "children": children}
		return nil
	})
	r.Register("code_block", func(e Element) error {
		a.out = map[string]any{"element": "code_block", "text": rawTextOf(e.(*CodeBlock).Children)}
		return nil
	})
	r.Register("fenced_code", func(e Element) error {
		n := e.(*FencedCode)
		a.out = map[string]any{"element": "fenced_code", "lang": n.Lang, "text": rawTextOf(n.Children)}
		return nil
	})
	r.Register("thematic_break", func(Element) error {
		a.out = map[string]any{"element": "thematic_break"}
		return nil
	})
	r.Register("html_block", func(e Element) error {
		a.out = map[string]any{"element": "html_block", "raw": e.(*HTMLBlock).Raw}
		return nil
	})
	r.Register("link_ref_def", func(e Element) error {
		n := e.(*LinkRefDef)
		a.out = map[string]any{"element": "link_ref_def", "label": n.Label, "dest": n.Dest, "title": n.Title}
		return nil
	})
	r.Register("paragraph", func(e Element) error {
		children, err := a.renderInlines(e.(*Paragraph).Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{"element": "paragraph", "children": children}
		return nil
	})
	r.Register("quote", func(e Element) error {
		children, err := a.renderBlocks(e.(*Quote).Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{"element": "quote", "children": children}
		return nil
	})
	r.Register("list", func(e Element) error {
		n := e.(*List)
		children, err := a.renderBlocks(n.Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{
			"element": "list", "ordered": n.Ordered, "start": n.Start,
			"tight": n.Tight, "children": children,
		}
		return nil
	})
	r.Register("list_item", func(e Element) error {
		children, err := a.renderBlocks(e.(*ListItem).Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{"element": "list_item", "children": children}
		return nil
	})
	r.Register("raw_text", func(e Element) error {
		a.out = map[string]any{"element": "raw_text", "text": e.(*RawText).Text}
		return nil
	})
	r.Register("literal", func(e Element) error {
		a.out = map[string]any{"element": "literal", "char": e.(*Literal).Char}
		return nil
	})
	r.Register("line_break", func(e Element) error {
		a.out = map[string]any{"element": "line_break", "hard": e.(*LineBreak).Hard}
		return nil
	})
	r.Register("code_span", func(e Element) error {
		a.out = map[string]any{"element": "code_span", "text": e.(*CodeSpan).Text}
		return nil
	})
	r.Register("emphasis", func(e Element) error {
		children, err := a.renderInlines(e.(*Emphasis).Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{"element": "emphasis", "children": children}
		return nil
	})
	r.Register("strong_emphasis", func(e Element) error {
		children, err := a.renderInlines(e.(*StrongEmphasis).Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{"element": "strong_emphasis", "children": children}
		return nil
	})
	r.Register("link", func(e Element) error {
		n := e.(*Link)
		children, err := a.renderInlines(n.Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{"element": "link", "dest": n.Dest, "title": n.Title, "children": children}
		return nil
	})
	r.Register("image", func(e Element) error {
		n := e.(*Image)
		children, err := a.renderInlines(n.Children)
		if err != nil {
			return err
		}
		a.out = map[string]any{"element": "image", "dest": n.Dest, "title": n.Title, "children": children}
		return nil
	})
	r.Register("auto_link", func(e Element) error {
		n := e.(*AutoLink)
		a.out = map[string]any{"element": "auto_link", "dest": n.Dest, "text": n.Text}
		return nil
	})
	r.Register("inline_html", func(e Element) error {
		a.out = map[string]any{"element": "inline_html", "raw": e.(*InlineHTML).Raw}
		return nil
	})
}
