package md

import "fmt"

// ExtensionResolutionError is returned when a named extension cannot be
// resolved, either because no extension registered that name or because its
// factory rejected the supplied options.
type ExtensionResolutionError struct {
	Name string
	Err  error
}

func (e *ExtensionResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("md: resolve extension %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("md: unknown extension %q", e.Name)
}

func (e *ExtensionResolutionError) Unwrap() error { return e.Err }

// RendererDispatchError is returned the first time a Renderer encounters an
// element kind for which it has no render method. It is reported at most
// once per kind name per Renderer, since a missing method always produces
// the same failure for the lifetime of one Renderer instance.
type RendererDispatchError struct {
	Kind string
}

func (e *RendererDispatchError) Error() string {
	return fmt.Sprintf("md: renderer has no method for kind %q", e.Kind)
}

// InlineInvariantError reports an internal state that processing
// well-formed input never reaches (a "demonstrable bug" in the sense of
// spec section 7, not a malformed-input condition). Renderer.dispatch
// returns one, with Offset 0, when an element is reached again while it is
// still being rendered (a cycle). The tokenizer does not raise it. If one
// is panicked during parsing, the top-level Parse entry point recovers it
// and returns it as an error.
type InlineInvariantError struct {
	Offset int
	Reason string
}

func (e *InlineInvariantError) Error() string {
	return fmt.Sprintf("md: inline invariant violated at offset %d: %s", e.Offset, e.Reason)
}
