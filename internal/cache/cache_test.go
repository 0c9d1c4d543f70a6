package cache

import (
	"path/filepath"
	"testing"
)

func openTest(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetMiss(t *testing.T) {
	c := openTest(t)
	_, ok, err := c.Get(Key{Renderer: "html", Input: []byte("# hi")})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("Get on empty cache reported a hit")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c := openTest(t)
	key := Key{Renderer: "html", Extensions: []string{"frontmatter"}, Input: []byte("# hi")}
	if err := c.Put(key, "<h1>hi</h1>\n"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("Get reported a miss after Put")
	}
	if got != "<h1>hi</h1>\n" {
		t.Fatalf("Get = %q, want %q", got, "<h1>hi</h1>\n")
	}
}

func TestKeyOrderIndependentOnExtensions(t *testing.T) {
	c := openTest(t)
	a := Key{Renderer: "html", Extensions: []string{"a", "b"}, Input: []byte("x")}
	b := Key{Renderer: "html", Extensions: []string{"b", "a"}, Input: []byte("x")}
	if err := c.Put(a, "result"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get(b)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || got != "result" {
		t.Fatalf("Get(b) = %q, %v; want a hit sharing a's entry", got, ok)
	}
}

func TestStats(t *testing.T) {
	c := openTest(t)
	if n, err := c.Stats(); err != nil || n != 0 {
		t.Fatalf("Stats on empty cache = %d, %v; want 0, nil", n, err)
	}
	c.Put(Key{Renderer: "html", Input: []byte("a")}, "1")
	c.Put(Key{Renderer: "html", Input: []byte("b")}, "2")
	if n, err := c.Stats(); err != nil || n != 2 {
		t.Fatalf("Stats after two Puts = %d, %v; want 2, nil", n, err)
	}
}
