package buffer

import "testing"

func TestBuffer_NewAndText(t *testing.T) {
	b := New("a\nbc\n", Options{Name: "sketch.ino"})
	if got, want := b.Text(), "a\nbc\n"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.LineCount(), 3; got != want {
		t.Fatalf("line count=%d, want %d", got, want)
	}
	if got, want := b.Name(), "sketch.ino"; got != want {
		t.Fatalf("name=%q, want %q", got, want)
	}

	empty := New("", Options{})
	if got := empty.LineCount(); got != 1 {
		t.Fatalf("empty line count=%d, want 1", got)
	}
}

func TestBuffer_SetCursorClamps(t *testing.T) {
	b := New("ab\nc", Options{})
	b.SetCursor(Pos{Row: 9, Col: 9})
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	b.SetCursor(Pos{Row: -1, Col: -4})
	if got, want := b.Cursor(), (Pos{}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_SelectionKeepsAnchor(t *testing.T) {
	b := New("hello", Options{})
	b.SetSelection(Range{Start: Pos{Col: 4}, End: Pos{Col: 1}})

	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected active selection")
	}
	if want := (Range{Start: Pos{Col: 1}, End: Pos{Col: 4}}); r != want {
		t.Fatalf("selection=%v, want %v", r, want)
	}
	raw, _ := b.SelectionRaw()
	if raw.Start != (Pos{Col: 4}) {
		t.Fatalf("raw anchor=%v, want (0,4)", raw.Start)
	}

	v := b.Version()
	b.SetSelection(Range{Start: Pos{Col: 4}, End: Pos{Col: 1}})
	if b.Version() != v {
		t.Fatalf("reselecting the same range bumped version")
	}

	b.SetSelection(Range{Start: Pos{Col: 2}, End: Pos{Col: 2}})
	if _, ok := b.Selection(); ok {
		t.Fatalf("empty range should clear selection")
	}
}

func TestBuffer_SelectAll(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SelectAll()
	got, ok := b.SelectedText()
	if !ok || got != "ab\ncd" {
		t.Fatalf("selected text=%q ok=%v, want %q", got, ok, "ab\ncd")
	}
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

type recorderFunc func(b *Buffer, c Change)

func (f recorderFunc) Record(b *Buffer, c Change) { f(b, c) }

func TestBuffer_RecorderSeesEditsOnly(t *testing.T) {
	b := New("ab", Options{})
	var got []Change
	b.SetRecorder(recorderFunc(func(_ *Buffer, c Change) { got = append(got, c) }))

	b.SetCursor(Pos{Col: 1})
	b.Move(Move{Unit: MoveRune, Dir: DirRight, Extend: true})
	if len(got) != 0 {
		t.Fatalf("caret changes recorded: %d", len(got))
	}

	b.InsertText("X")
	if len(got) != 1 {
		t.Fatalf("records=%d, want 1", len(got))
	}
	e := got[0].AppliedEdits[0]
	if e.DeletedText != "b" || e.InsertText != "X" {
		t.Fatalf("applied edit=%+v", e)
	}

	b.SetRecorder(nil)
	b.InsertText("Y")
	if len(got) != 1 {
		t.Fatalf("detached recorder still recording")
	}
}
