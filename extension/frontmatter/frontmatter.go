// Package frontmatter is a demonstration extension: a parser mixin that
// recognizes a leading `---`-delimited YAML block and lifts its decoded
// content onto Document.FrontMatter, the way Jekyll/Hugo-style static-site
// generators do. It exists to exercise the extension mechanism (md.Use,
// named resolution via extension.Register/Resolve) end to end with a real
// third-party dependency (gopkg.in/yaml.v3), deliberately staying off the
// list of extensions the specification excludes (footnotes, table of
// contents, GFM tables/strikethrough/task lists, code highlighting).
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inkwell-md/inkwell/extension"
	"github.com/inkwell-md/inkwell/md"
)

func init() {
	extension.Register("frontmatter", func(opts map[string]any) (md.Extension, error) {
		return New(), nil
	})
}

// New returns the front-matter Extension. It takes no options.
func New() md.Extension {
	return md.Extension{
		ParserMixins: []md.ParserMixin{mixin},
	}
}

func mixin(r *md.Registry) error {
	return r.AddBlock(&md.BlockKind{
		Name:     "front_matter",
		Priority: 1000,
		Try:      tryFrontMatter,
	})
}

const fence = "---"

// tryFrontMatter recognizes a fence-delimited YAML block, but only when it
// opens the document: elsewhere "---" is either a thematic break or a
// setext underline, both of which front matter must never shadow.
func tryFrontMatter(b *md.BlockParser, line string, newParagraph bool) bool {
	if !b.AtStart() || strings.TrimRight(line, " \t") != fence {
		return false
	}
	b.Take()
	var body []string
	for {
		raw, ok := b.Take()
		if !ok {
			// Unterminated fence: reached EOF without a closing "---".
			// Whatever was collected becomes the YAML document; if it
			// does not unmarshal, FrontMatter is simply left nil.
			break
		}
		if strings.TrimRight(raw, " \t") == fence {
			break
		}
		body = append(body, raw)
	}

	data := map[string]any{}
	if err := yaml.Unmarshal([]byte(strings.Join(body, "\n")), &data); err == nil {
		b.Document().FrontMatter = data
	}
	return true
}
