package md

// Renderer is the base dispatch mechanism every concrete renderer
// (HTMLRenderer, ASTRenderer, MarkdownRenderer) builds on: a
// kind-name-keyed method table, populated from built-in defaults and then
// folded with renderer_mixins in registration order (last registration for
// a given kind wins). Concrete renderers embed one of these and register
// their own render_<kind> methods as closures over their own state, since
// what "writing output" means differs per renderer (bytes for HTML/
// Markdown, tree nodes for AST).
type Renderer struct {
	typeName string
	methods  map[string]func(Element) error
	visiting map[Element]bool
	reported map[string]bool
}

func newRenderer(typeName string) *Renderer {
	return &Renderer{
		typeName: typeName,
		methods:  map[string]func(Element) error{},
		visiting: map[Element]bool{},
		reported: map[string]bool{},
	}
}

// Register installs (or overrides) the render method for kind. Used both
// by a concrete renderer's own defaults and by RendererMixin funcs an
// extension supplies.
func (r *Renderer) Register(kind string, fn func(Element) error) {
	r.methods[kind] = fn
}

// dispatch looks up and calls the render method for e.Kind(), guarding
// against unbounded recursion and reporting a missing method at most once
// per kind for this Renderer's lifetime.
//
// The recursion guard keys on e itself (element identity), not on kind: a
// document's tree legitimately contains many elements of the same kind
// nested inside one another (a nested list, a nested block quote, nested
// same-character emphasis), and none of that is a cycle. Only a node that
// appears as its own descendant on the current call path is.
func (r *Renderer) dispatch(e Element) error {
	if r.visiting[e] {
		return &InlineInvariantError{Reason: "render cycle detected at kind " + e.Kind()}
	}
	fn, ok := r.methods[e.Kind()]
	if !ok {
		if r.reported[e.Kind()] {
			// Already surfaced once for this Renderer's lifetime (see
			// RendererDispatchError): a renderer instance reused across
			// several Render calls does not re-abort every later document
			// over a miss it already told its caller about.
			return nil
		}
		r.reported[e.Kind()] = true
		return &RendererDispatchError{Kind: e.Kind()}
	}
	r.visiting[e] = true
	defer delete(r.visiting, e)
	return fn(e)
}

// resetVisiting clears the recursion guard; called once per top-level
// Render/RenderToString call, never mid-tree.
func (r *Renderer) resetVisiting() {
	for k := range r.visiting {
		delete(r.visiting, k)
	}
}

func applyRendererMixins(r *Renderer, mixins []RendererMixin) {
	for _, m := range mixins {
		m(r)
	}
}
