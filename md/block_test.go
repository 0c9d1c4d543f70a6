package md_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBlockHeadingATX(t *testing.T) {
	cases := []struct{ src, want string }{
		{"# foo", "<h1>foo</h1>\n"},
		{"## foo ##", "<h2>foo</h2>\n"},
		{"###### foo", "<h6>foo</h6>\n"},
		{"####### foo", "<p>####### foo</p>\n"}, // seven #s is not a heading
	}
	for _, c := range cases {
		got := renderHTML(t, c.src)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("input %q\ndiff (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestBlockSetextHeading(t *testing.T) {
	cases := []struct{ src, want string }{
		{"foo\n===\n", "<h1>foo</h1>\n"},
		{"foo\n---\n", "<h2>foo</h2>\n"},
		{"foo\nbar\n===\n", "<h1>foo\nbar</h1>\n"},
	}
	for _, c := range cases {
		got := renderHTML(t, c.src)
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("input %q\ndiff (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestBlockThematicBreak(t *testing.T) {
	for _, src := range []string{"***", "---", "___", "- - -", "* * *"} {
		want := "<hr />\n"
		got := renderHTML(t, src)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
		}
	}
}

func TestBlockFencedCode(t *testing.T) {
	src := "```go\nfmt.Println(1)\n```\n"
	want := "<pre><code class=\"language-go\">fmt.Println(1)\n</code></pre>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockIndentedCode(t *testing.T) {
	src := "    foo\n    bar\n"
	want := "<pre><code>foo\nbar\n</code></pre>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockQuote(t *testing.T) {
	src := "> quote\n> more\n"
	want := "<blockquote>\n<p>quote\nmore</p>\n</blockquote>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockListTight(t *testing.T) {
	src := "- a\n- b\n"
	want := "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockListLoose(t *testing.T) {
	src := "- a\n\n- b\n"
	want := "<ul>\n<li>\n<p>a</p>\n</li>\n<li>\n<p>b</p>\n</li>\n</ul>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockOrderedList(t *testing.T) {
	src := "1. a\n2. b\n"
	want := "<ol>\n<li>a</li>\n<li>b</li>\n</ol>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockOrderedListStart(t *testing.T) {
	src := "3. a\n4. b\n"
	want := "<ol start=\"3\">\n<li>a</li>\n<li>b</li>\n</ol>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockNestedList(t *testing.T) {
	src := "- a\n  - b\n"
	want := "<ul>\n<li>a\n<ul>\n<li>b</li>\n</ul>\n</li>\n</ul>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockListMarkerChangeStartsNewList(t *testing.T) {
	src := "- a\n* b\n"
	want := "<ul>\n<li>a</li>\n</ul>\n<ul>\n<li>b</li>\n</ul>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockLinkRefDefForwardReference(t *testing.T) {
	src := "[foo]\n\n[foo]: /bar \"title\"\n"
	want := `<p><a href="/bar" title="title">foo</a></p>` + "\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockLinkRefDefBackwardReference(t *testing.T) {
	src := "[foo]: /bar \"title\"\n\n[foo]\n"
	want := `<p><a href="/bar" title="title">foo</a></p>` + "\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockParagraphsSeparatedByBlankLine(t *testing.T) {
	src := "foo\n\nbar\n"
	want := "<p>foo</p>\n<p>bar</p>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockLazyContinuationInBlockquote(t *testing.T) {
	src := "> foo\nbar\n"
	want := "<blockquote>\n<p>foo\nbar</p>\n</blockquote>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockThematicBreakInterruptsParagraph(t *testing.T) {
	src := "foo\n***\nbar\n"
	want := "<p>foo</p>\n<hr />\n<p>bar</p>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockIndentedCodeCannotInterruptParagraph(t *testing.T) {
	src := "foo\n    bar\n"
	want := "<p>foo\nbar</p>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}

func TestBlockTrailingBlankLineAfterLastItemStaysTight(t *testing.T) {
	src := "- a\n- b\n\n"
	want := "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"
	got := renderHTML(t, src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("input %q\ndiff (-want +got):\n%s", src, diff)
	}
}
