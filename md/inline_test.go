package md_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/inkwell-md/inkwell/md"
)

func renderHTML(t *testing.T, src string) string {
	t.Helper()
	out, err := md.Convert(src, md.HTML)
	if err != nil {
		t.Fatalf("Convert(%q, HTML): %v", src, err)
	}
	return out.(string)
}

func TestInlineEmphasis(t *testing.T) {
	cases := []struct{ src, want string }{
		{"*foo*", "<p><em>foo</em></p>\n"},
		{"**foo**", "<p><strong>foo</strong></p>\n"},
		{"***foo***", "<p><em><strong>foo</strong></em></p>\n"},
		{"foo_bar_baz", "<p>foo_bar_baz</p>\n"},
		{"_foo_", "<p><em>foo</em></p>\n"},
		{"**foo *bar* baz**", "<p><strong>foo <em>bar</em> baz</strong></p>\n"},
		{"a * b", "<p>a * b</p>\n"},
	}
	for _, c := range cases {
		got := renderHTML(t, c.src)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("input %q\ndiff (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestInlineCodeSpan(t *testing.T) {
	cases := []struct{ src, want string }{
		{"`foo`", "<p><code>foo</code></p>\n"},
		{"``foo ` bar``", "<p><code>foo ` bar</code></p>\n"},
		{"` `` `", "<p><code>``</code></p>\n"},
	}
	for _, c := range cases {
		got := renderHTML(t, c.src)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("input %q\ndiff (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestInlineBackslashEscape(t *testing.T) {
	cases := []struct{ src, want string }{
		{`\*foo\*`, "<p>*foo*</p>\n"},
		{`\\`, "<p>\\</p>\n"},
		{`\a`, "<p>\\a</p>\n"}, // not ASCII punctuation: backslash is literal
	}
	for _, c := range cases {
		got := renderHTML(t, c.src)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("input %q\ndiff (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestInlineLinkAndImage(t *testing.T) {
	cases := []struct{ src, want string }{
		{"[foo](/bar)", `<p><a href="/bar">foo</a></p>` + "\n"},
		{`[foo](/bar "title")`, `<p><a href="/bar" title="title">foo</a></p>` + "\n"},
		{"![alt](/img.png)", `<p><img src="/img.png" alt="alt" /></p>` + "\n"},
		{"![*alt*](/img.png)", `<p><img src="/img.png" alt="alt" /></p>` + "\n"},
	}
	for _, c := range cases {
		got := renderHTML(t, c.src)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("input %q\ndiff (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestInlineReferenceLink(t *testing.T) {
	src := "[foo]\n\n[foo]: /bar \"title\"\n"
	want := `<p><a href="/bar" title="title">foo</a></p>` + "\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestInlineAutoLink(t *testing.T) {
	src := "<https://example.com>"
	want := `<p><a href="https://example.com">https://example.com</a></p>` + "\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestInlineHardLineBreak(t *testing.T) {
	src := "foo  \nbar"
	want := "<p>foo<br />\nbar</p>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestInlineEntity(t *testing.T) {
	src := "&amp; &copy;"
	want := "<p>&amp; ©</p>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestInlineBracketNoMatchingLink(t *testing.T) {
	src := "[foo"
	want := "<p>[foo</p>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestInlineEmphasisOpenerCloserRule(t *testing.T) {
	// A 2-length opener and a 1-length closer still pair: the
	// (opener.n + closer.n) % 3 == 0 rule only applies when one of the
	// runs can both open and close, and neither run here can. One '*' of
	// the opener is consumed and the other stays literal.
	src := "**foo*"
	want := "<p>*<em>foo</em></p>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestInlineNestedLinkInImageAltIsFlattened(t *testing.T) {
	src := "![a [link](/x) b](/img.png)"
	want := `<p><img src="/img.png" alt="a link b" /></p>` + "\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

// TestInlinePropertyBackslashEscapeRoundTrip exercises every ASCII
// punctuation character: \p always renders as a literal p, never as
// markup, regardless of what p is.
func TestInlinePropertyBackslashEscapeRoundTrip(t *testing.T) {
	punctuation := "!\"#$%&'()*+,-./:;<=>?@[]^_`{|}~\\"
	htmlEscape := map[byte]string{
		'<': "&lt;", '>': "&gt;", '&': "&amp;", '"': "&quot;",
	}
	for i := 0; i < len(punctuation); i++ {
		p := punctuation[i]
		src := "\\" + string(p)
		want := string(p)
		if esc, ok := htmlEscape[p]; ok {
			want = esc
		}
		want = "<p>" + want + "</p>\n"
		got := renderHTML(t, src)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
		}
	}
}

// TestInlinePropertyEmphasisMod3NonPairing exercises the CommonMark rule
// that a closer cannot pair with an opener of the same character when
// their lengths sum to a multiple of 3, unless both lengths are
// themselves multiples of 3. "*foo**bar*" has a 1-length opener, a
// 2-length run that can neither open against it (1+2=3) nor close
// against it, and a 1-length closer that pairs with the original
// 1-length opener instead, leaving the unpaired "**" as literal text.
func TestInlinePropertyEmphasisMod3NonPairing(t *testing.T) {
	src := "*foo**bar*"
	want := "<p><em>foo**bar</em></p>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}
