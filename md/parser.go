package md

// Parser owns a Registry and accumulates renderer mixins contributed by
// extensions via Use, so that a later (*Parser).Render call picks them up
// too. Every field is receiver-owned; DefaultParser always
// allocates a fresh instance, so distinct Parsers never share mutable
// state and can be used concurrently from different goroutines.
type Parser struct {
	registry       *Registry
	rendererMixins []RendererMixin
}

// DefaultParser returns a Parser with the built-in CommonMark block and
// inline kinds registered and no extensions applied.
func DefaultParser() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

// Parse scans text into a Document. It never fails on Markdown input; the
// one documented exception is a genuine internal invariant violation
// (InlineInvariantError), recovered here and returned rather than left to
// panic out of the call.
func (p *Parser) Parse(text string) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ierr, ok := r.(*InlineInvariantError); ok {
				err = ierr
				return
			}
			panic(r)
		}
	}()
	doc = ParseBlocks(text, p.registry)
	return doc, nil
}

// RendererKind names a concrete renderer Render can build.
type RendererKind string

const (
	HTML     RendererKind = "html"
	AST      RendererKind = "ast"
	Markdown RendererKind = "markdown"
)

// Render builds the requested concrete renderer (with p's accumulated
// renderer mixins applied) and renders doc with it. The AST renderer's
// result is returned as a Go value (map[string]any / []any / string);
// HTML and Markdown return strings.
func (p *Parser) Render(doc *Document, kind RendererKind) (any, error) {
	switch kind {
	case HTML:
		return NewHTMLRenderer(p.rendererMixins...).RenderToString(doc)
	case Markdown:
		return NewMarkdownRenderer(p.rendererMixins...).RenderToString(doc)
	case AST:
		return NewASTRenderer(p.rendererMixins...).RenderToTree(doc)
	default:
		return nil, &ExtensionResolutionError{Name: string(kind), Err: errUnknownRendererKind}
	}
}

var errUnknownRendererKind = rendererKindError{}

type rendererKindError struct{}

func (rendererKindError) Error() string { return "unknown renderer kind" }

// Convert is the one-shot convenience entry point: parse text with a fresh
// DefaultParser, apply exts in order, and render with the named kind.
func Convert(text string, kind RendererKind, exts ...Extension) (any, error) {
	p := DefaultParser()
	for _, ext := range exts {
		if err := p.Use(ext); err != nil {
			return nil, err
		}
	}
	doc, err := p.Parse(text)
	if err != nil {
		return nil, err
	}
	return p.Render(doc, kind)
}
