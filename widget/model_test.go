package widget

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/sketcharea/buffer"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func newDoc(text string) *buffer.Buffer { return buffer.New(text, buffer.Options{}) }

func TestModel_SetSizeAffectsViewHeight(t *testing.T) {
	m := New(Config{Document: newDoc("a\nb\nc")})
	m.Blur()

	m.SetSize(20, 2)
	if got := lipgloss.Height(m.View()); got != 2 {
		t.Fatalf("height after SetSize(20,2): got %d, want %d", got, 2)
	}

	m.SetSize(20, 4)
	if got := lipgloss.Height(m.View()); got != 4 {
		t.Fatalf("height after SetSize(20,4): got %d, want %d", got, 4)
	}
}

func TestView_SnapshotFixedSize(t *testing.T) {
	m := New(Config{
		Document:     newDoc("one\ntwo\nthree\nfour\nfive"),
		ShowLineNums: true,
	})
	m.Blur()
	m.SetSize(10, 3)

	got := strings.Split(m.View(), "\n")
	if len(got) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(got))
	}
	for i := range got {
		got[i] = strings.TrimRight(stripANSI(got[i]), " ")
	}

	want := []string{
		"1 one",
		"2 two",
		"3 three",
	}
	if fmt.Sprintf("%q", got) != fmt.Sprintf("%q", want) {
		t.Fatalf("unexpected view:\n got: %q\nwant: %q", got, want)
	}
}

func TestModel_NewWithoutDocument(t *testing.T) {
	m := New(Config{})
	if m.Document() == nil || m.Document().Text() != "" {
		t.Fatalf("expected an empty document")
	}
	if m.UndoHistory() != nil {
		t.Fatalf("expected no history")
	}
}

func TestModel_SetDocument_RecordsReplacementIntoAttachedHistory(t *testing.T) {
	a := newDoc("void setup() {}")
	b := newDoc("void loop() {}")
	h := buffer.NewHistory(0)

	m := New(Config{Document: a, History: h})
	m.SetDocument(b)

	if m.Document() != b {
		t.Fatalf("document not attached")
	}
	if got := h.Len(); got != 1 {
		t.Fatalf("history len after swap: got %d, want 1", got)
	}
	if a.Recorder() != nil {
		t.Fatalf("old document still bound to the history")
	}
	if b.Recorder() != buffer.Recorder(h) {
		t.Fatalf("history not bound to the new document")
	}
}

func TestModel_SetDocument_DetachedHistoryStaysClean(t *testing.T) {
	a, b := newDoc("a"), newDoc("b")
	ha, hb := buffer.NewHistory(0), buffer.NewHistory(0)

	m := New(Config{Document: a, History: ha})
	m.SetUndoHistory(nil)
	m.SetDocument(b)
	m.SetUndoHistory(hb)

	if ha.Len() != 0 || hb.Len() != 0 {
		t.Fatalf("histories polluted by swap: a=%d b=%d", ha.Len(), hb.Len())
	}

	m.ReplaceSelection("x")
	if ha.Len() != 0 || hb.Len() != 1 {
		t.Fatalf("edit recorded in wrong history: a=%d b=%d", ha.Len(), hb.Len())
	}
	if a.Recorder() != nil {
		t.Fatalf("old document still has a recorder")
	}
}

func TestModel_SetDocument_ResetsViewState(t *testing.T) {
	long := newDoc(strings.Repeat("x\n", 9) + "x")
	m := New(Config{Document: long})
	m.SetSize(10, 2)
	long.SetCursor(buffer.Pos{Row: 9})
	m.Sync()
	if m.viewport.YOffset == 0 {
		t.Fatalf("expected viewport to follow the cursor")
	}
	m.OpenContextMenu(0, 0)

	m.SetDocument(newDoc("y"))
	if m.viewport.YOffset != 0 {
		t.Fatalf("y offset after swap: got %d, want 0", m.viewport.YOffset)
	}
	if m.ContextMenuOpen() {
		t.Fatalf("menu should close on swap")
	}
}

func TestModel_SetDocument_SameDocumentIsNoop(t *testing.T) {
	a := newDoc("a")
	h := buffer.NewHistory(0)
	m := New(Config{Document: a, History: h})
	m.SetDocument(a)
	if h.Len() != 0 {
		t.Fatalf("re-attaching the same document recorded a change")
	}
}
