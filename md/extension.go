package md

// ParserMixin extends a Parser's Registry, e.g. to add a new block or
// inline kind, or override a built-in one. Applied in registration order;
// later mixins can see and override what earlier ones registered.
type ParserMixin func(*Registry) error

// RendererMixin extends a Renderer's dispatch table, e.g. to add a
// render_<kind> method for a new element kind an extension introduces.
// Applied in registration order; the last mixin to set a given kind's
// method wins, matching the teacher's documented (if debatable) current
// renderer-mixin composition behavior.
type RendererMixin func(*Renderer)

// Extension bundles everything a named extension contributes: new parser
// mixins and new renderer mixins. There is no Go equivalent of Python
// multiple inheritance, so marko's "mix a class into the parser" becomes
// "apply this func to the Registry/Renderer being built."
type Extension struct {
	ParserMixins   []ParserMixin
	RendererMixins []RendererMixin
}

// Use applies ext's parser mixins to p's Registry (cloned first, so other
// Parsers sharing the same base Registry are unaffected) and records its
// renderer mixins so a later (*Parser).Render call can apply them too.
func (p *Parser) Use(ext Extension) error {
	p.registry = p.registry.Clone()
	for _, mixin := range ext.ParserMixins {
		if err := mixin(p.registry); err != nil {
			return err
		}
	}
	p.rendererMixins = append(p.rendererMixins, ext.RendererMixins...)
	return nil
}
