package docs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePage(t *testing.T, root, anchor string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(anchor)+".html")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestBrowser_ShowReference(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "Reference/DigitalWrite")

	var opened []string
	b := &Browser{Root: root, Open: func(url string) error {
		opened = append(opened, url)
		return nil
	}}

	b.ShowReference("Reference/DigitalWrite")
	if len(opened) != 1 {
		t.Fatalf("opened: got %d pages, want 1", len(opened))
	}
	if !strings.HasPrefix(opened[0], "file://") || !strings.HasSuffix(opened[0], "/Reference/DigitalWrite.html") {
		t.Fatalf("url: got %q", opened[0])
	}

	b.ShowReference("Reference/nope")
	b.ShowReference("")
	if len(opened) != 1 {
		t.Fatalf("missing pages should not be opened: %v", opened)
	}
}

func TestBrowser_OpenerFailureIsSwallowed(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "Reference/Void")

	calls := 0
	b := &Browser{Root: root, Open: func(string) error {
		calls++
		return errors.New("no display")
	}}
	b.ShowReference("Reference/Void")
	if calls != 1 {
		t.Fatalf("opener calls: got %d, want 1", calls)
	}
}

func TestBrowser_Resolve(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "Reference/Int")
	b := NewBrowser(root)

	got, ok := b.Resolve("Reference/Int")
	if want := filepath.Join(root, "Reference", "Int.html"); !ok || got != want {
		t.Fatalf("Resolve: got (%q,%v), want (%q,true)", got, ok, want)
	}
	if _, ok := b.Resolve("Reference/Missing"); ok {
		t.Fatalf("missing page resolved")
	}
}

func TestBrowser_ResolveStaysUnderRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "lib")
	writePage(t, root, "Reference/Int")
	writePage(t, parent, "secret")
	b := NewBrowser(root)

	for _, anchor := range []string{"../secret", "Reference/../../secret", filepath.ToSlash(filepath.Join(parent, "secret"))} {
		if got, ok := b.Resolve(anchor); ok {
			t.Fatalf("Resolve(%q) escaped the root: %q", anchor, got)
		}
	}
	if _, ok := b.Resolve("Reference/../Reference/Int"); !ok {
		t.Fatalf("anchor inside the root was rejected")
	}
}
