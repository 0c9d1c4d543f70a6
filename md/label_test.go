package md

import "testing"

func TestNormalizeLabelEquivalence(t *testing.T) {
	// Label normalization: Unicode case fold, internal whitespace runs
	// collapsed to one space, leading/trailing whitespace trimmed.
	equivalent := [][]string{
		{"foo", "Foo", "FOO", "fOo"},
		{"foo bar", "foo  bar", "foo\tbar", "  foo bar  "},
		{"Straße", "straße"},
	}
	for _, group := range equivalent {
		want := normalizeLabel(group[0])
		for _, s := range group[1:] {
			if got := normalizeLabel(s); got != want {
				t.Errorf("normalizeLabel(%q) = %q, want %q (equivalent to normalizeLabel(%q))", s, got, want, group[0])
			}
		}
	}
}

func TestNormalizeLabelDistinguishesDifferentLabels(t *testing.T) {
	if normalizeLabel("foo") == normalizeLabel("bar") {
		t.Errorf("normalizeLabel(%q) and normalizeLabel(%q) collided", "foo", "bar")
	}
}
