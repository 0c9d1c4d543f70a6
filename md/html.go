package md

import (
	"html"
	"regexp"
	"strings"
)

var (
	autoLinkRegexp    = regexp.MustCompile(`^<([a-zA-Z][a-zA-Z0-9+.-]{1,31}:[^<>\x00-\x20]*)>`)
	autoLinkMailRegexp = regexp.MustCompile(`^<([a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+)>`)
	inlineHTMLRegexp = regexp.MustCompile(`^(?i)<(/?[a-zA-Z][a-zA-Z0-9-]*(?:\s+[a-zA-Z_:][a-zA-Z0-9_.:-]*(?:\s*=\s*(?:[^\s"'=<>` + "`" + `]+|'[^']*'|"[^"]*"))?)*\s*/?>|!--(?:[^-]|-[^-])*-->|\?[^>]*\?>|![A-Z]+\s+[^>]*>|!\[CDATA\[.*?\]\]>)`)
	entityRegexp     = regexp.MustCompile(`^&(?:[a-zA-Z0-9]+|#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6});`)
)

// matchAutoLink recognizes a `<scheme:...>` or bare-email autolink at the
// start of s, per CommonMark's autolink grammar.
func matchAutoLink(s string) (n int, dest string, ok bool) {
	if m := autoLinkRegexp.FindStringSubmatch(s); m != nil {
		return len(m[0]), m[1], true
	}
	if m := autoLinkMailRegexp.FindStringSubmatch(s); m != nil {
		return len(m[0]), "mailto:" + m[1], true
	}
	return -1, "", false
}

// matchInlineHTML recognizes one raw inline HTML construct (tag, comment,
// processing instruction, declaration, or CDATA section) at the start of
// s.
func matchInlineHTML(s string) (n int, raw string, ok bool) {
	if m := inlineHTMLRegexp.FindString(s); m != "" {
		return len(m), m, true
	}
	return -1, "", false
}

// matchEntity recognizes a named or numeric HTML entity reference at the
// start of s and decodes it to its literal character(s), via
// html.UnescapeString's full HTML5 entity table rather than a hand-kept
// subset, matching the teacher (src.elv.sh/pkg/md).
func matchEntity(s string) (n int, decoded string, ok bool) {
	m := entityRegexp.FindString(s)
	if m == "" {
		return -1, "", false
	}
	return len(m), html.UnescapeString(m), true
}

// escapeHTML and escapeURL mirror the teacher's replacer-based escaping
// (src.elv.sh/pkg/md/html.go), used by HTMLRenderer.
var (
	escapeHTML = strings.NewReplacer(
		"&", "&amp;", "\"", "&quot;", "<", "&lt;", ">", "&gt;",
	).Replace

	escapeURL = strings.NewReplacer(
		"\"", "%22", "\\", "%5C", " ", "%20", "`", "%60",
		"[", "%5B", "]", "%5D", "<", "%3C", ">", "%3E",
	).Replace
)
