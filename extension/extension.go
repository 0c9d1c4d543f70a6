// Package extension is the named-extension resolver: a small indirection
// that lets a CLI or config file refer to an extension by string ("-e
// frontmatter") without importing every concrete extension package into
// md itself, which would make md depend on each extension's own
// dependencies (yaml.v3, and whatever future extensions add) whether or
// not a given program uses them. Concrete extensions live in their own
// packages (extension/frontmatter) and call Register from an init func;
// importing such a package for its side effect is what makes it
// resolvable by name.
package extension

import "github.com/inkwell-md/inkwell/md"

// Factory builds an md.Extension from a set of options decoded from a
// config file or CLI flag (e.g. TOML [options.frontmatter] table).
type Factory func(opts map[string]any) (md.Extension, error)

var factories = map[string]Factory{}

// Register makes an extension resolvable by name. Called from the
// concrete extension package's init function.
func Register(name string, f Factory) {
	factories[name] = f
}

// Resolve builds the named extension, or returns an
// *md.ExtensionResolutionError if no extension package registered that
// name (most likely because it was never imported).
func Resolve(name string, opts map[string]any) (md.Extension, error) {
	f, ok := factories[name]
	if !ok {
		return md.Extension{}, &md.ExtensionResolutionError{Name: name, Err: errUnknownExtension}
	}
	ext, err := f(opts)
	if err != nil {
		return md.Extension{}, &md.ExtensionResolutionError{Name: name, Err: err}
	}
	return ext, nil
}

var errUnknownExtension = unknownExtensionError{}

type unknownExtensionError struct{}

func (unknownExtensionError) Error() string { return "no extension registered under this name" }
