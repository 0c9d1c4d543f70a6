package md

import (
	"testing"

	"github.com/inkwell-md/inkwell/internal/tt"
)

func TestIndentWidth(t *testing.T) {
	tt.Test(t, tt.Fn("indentWidth", indentWidth), tt.Table{
		Args("").Rets(0, 0),
		Args("abc").Rets(0, 0),
		Args("  abc").Rets(2, 2),
		Args("\tabc").Rets(4, 1),
		Args(" \tabc").Rets(4, 2),
		Args("    ").Rets(4, 4),
	})
}

func TestConsumeIndent(t *testing.T) {
	tt.Test(t, tt.Fn("consumeIndent", consumeIndent), tt.Table{
		Args("abc", 0).Rets("abc", 0),
		Args("  abc", 2).Rets("abc", 2),
		Args("  abc", 4).Rets("abc", 2),
		Args("\tabc", 4).Rets("abc", 4),
		Args("\tabc", 2).Rets("  abc", 2),
	})
}

func TestCursorTakeAndRestore(t *testing.T) {
	c := newCursor("one\ntwo\nthree")
	mark := c.save()
	line, ok := c.take()
	if !ok || line != "one" {
		t.Fatalf("take() = %q, %v; want %q, true", line, ok, "one")
	}
	line, ok = c.take()
	if !ok || line != "two" {
		t.Fatalf("take() = %q, %v; want %q, true", line, ok, "two")
	}
	c.restore(mark)
	line, ok = c.take()
	if !ok || line != "one" {
		t.Fatalf("after restore, take() = %q, %v; want %q, true", line, ok, "one")
	}
}

func TestCursorTrailingNewline(t *testing.T) {
	withNL := newCursor("a\nb\n")
	withoutNL := newCursor("a\nb")
	if len(withNL.lines) != len(withoutNL.lines) {
		t.Fatalf("trailing newline changed line count: %d vs %d", len(withNL.lines), len(withoutNL.lines))
	}
}

func TestIsBlankLine(t *testing.T) {
	tt.Test(t, tt.Fn("isBlankLine", isBlankLine), tt.Table{
		Args("").Rets(true),
		Args("   ").Rets(true),
		Args("\t").Rets(true),
		Args("a").Rets(false),
		Args(" a ").Rets(false),
	})
}
