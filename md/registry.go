package md

import (
	"fmt"
	"sort"
)

// BlockKind describes one block-level element kind known to a Registry.
//
// Try is invoked by the block scanner at the start of a line, inside
// whichever containers are currently open, with their prefixes already
// peeled off that line. It must not consume anything from b if it declines
// (returns false). newParagraph reports whether there is no paragraph
// currently being accumulated in the innermost open container — some kinds
// (thematic break, ATX heading, fenced code, block quote, list) are allowed
// to interrupt a paragraph; others (indented code, HTML block type 7) are
// not, and must check this themselves.
type BlockKind struct {
	Name     string
	Priority int
	Virtual  bool
	Override bool

	Try func(b *BlockParser, line string, newParagraph bool) bool

	// CanInterrupt reports whether this kind is allowed to interrupt an
	// in-progress paragraph (CommonMark's paragraph-interruption rules —
	// e.g. a thematic break can, an indented code block cannot). Consulted
	// by the block scanner's lazy-continuation check, independent of Try.
	CanInterrupt bool

	// Peek is a non-destructive probe: "would some kind other than
	// paragraph start here." The lazy-continuation check uses it, and so
	// does dispatch, to finalize an open paragraph before an interrupting
	// kind's Try runs. It must not consume input. Kinds that can never
	// interrupt a paragraph may leave this nil.
	Peek func(line string) bool

	// IsContainer marks a kind that, on success, pushes a new containerFrame
	// (block quote or list item) rather than finishing a leaf block. Try
	// must set (*BlockParser).contRemainder instead of advancing the
	// cursor; the scanner re-dispatches the remainder one container deeper.
	IsContainer bool

	seq int
}

// InlineKind describes one inline element kind known to a Registry.
//
// Try is invoked at every position the inline tokenizer's Phase A visits,
// before the built-in byte-dispatch switch runs, in descending priority
// order. It must not advance the tokenizer's position if it declines.
type InlineKind struct {
	Name     string
	Priority int
	Virtual  bool
	Override bool

	Try func(p *inlineParser) bool

	seq int
}

// Registry holds the set of block and inline kinds a Parser recognizes.
// Each Parser owns its own Registry instance (see DefaultParser); there is
// no package-level mutable registry, so concurrent Parsers never share
// state.
type Registry struct {
	blocks  []*BlockKind
	inlines []*InlineKind
	nextSeq int
}

// NewRegistry returns an empty Registry with none of the built-in
// CommonMark kinds registered. Most callers want DefaultRegistry instead.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a Registry populated with the built-in
// CommonMark block and inline kinds, ready for extensions to be layered on
// top via AddBlock/AddInline.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerBuiltinBlocks(r)
	registerBuiltinInlines(r)
	return r
}

// AddBlock registers a block kind. If a kind with the same Name is already
// registered, k.Override must be true, or AddBlock returns an error; the
// existing entry is then replaced in place (keeping its original priority
// ordering slot is not guaranteed — the new entry is (re-)inserted at its
// own Priority).
func (r *Registry) AddBlock(k *BlockKind) error {
	for i, existing := range r.blocks {
		if existing.Name == k.Name {
			if !k.Override {
				return fmt.Errorf("md: block kind %q already registered (set Override to replace it)", k.Name)
			}
			r.blocks = append(r.blocks[:i], r.blocks[i+1:]...)
			break
		}
	}
	k.seq = r.nextSeq
	r.nextSeq++
	r.blocks = append(r.blocks, k)
	sortBlocks(r.blocks)
	return nil
}

// AddInline registers an inline kind with the same override semantics as
// AddBlock.
func (r *Registry) AddInline(k *InlineKind) error {
	for i, existing := range r.inlines {
		if existing.Name == k.Name {
			if !k.Override {
				return fmt.Errorf("md: inline kind %q already registered (set Override to replace it)", k.Name)
			}
			r.inlines = append(r.inlines[:i], r.inlines[i+1:]...)
			break
		}
	}
	k.seq = r.nextSeq
	r.nextSeq++
	r.inlines = append(r.inlines, k)
	sortInlines(r.inlines)
	return nil
}

// Clone returns a Registry with the same kinds, safe to mutate
// independently of r. Used by (*Parser).Use so that applying an extension
// to one Parser never affects another Parser that shares the same base
// registry snapshot.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		blocks:  append([]*BlockKind(nil), r.blocks...),
		inlines: append([]*InlineKind(nil), r.inlines...),
		nextSeq: r.nextSeq,
	}
	return c
}

// sortBlocks orders by descending priority, then by ascending registration
// sequence — the tie-break decided in DESIGN.md: declaration order within
// one registration call, then registration order across calls.
func sortBlocks(ks []*BlockKind) {
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].Priority != ks[j].Priority {
			return ks[i].Priority > ks[j].Priority
		}
		return ks[i].seq < ks[j].seq
	})
}

func sortInlines(ks []*InlineKind) {
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].Priority != ks[j].Priority {
			return ks[i].Priority > ks[j].Priority
		}
		return ks[i].seq < ks[j].seq
	})
}
