package widget

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/sketcharea/buffer"
)

type memClipboard struct {
	s   string
	err error
}

func (c *memClipboard) ReadText() (string, error) { return c.s, c.err }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return c.err }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newModel(text string) *Model {
	return New(Config{
		Document: newDoc(text),
		History:  buffer.NewHistory(0),
		KeyMap:   DefaultKeyMap(),
	})
}

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := newModel("ab")

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(runes("X"))
	if got := m.Document().Text(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := m.Document().Cursor(); got != (buffer.Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor after insert: got %v, want %v", got, buffer.Pos{Row: 0, Col: 2})
	}

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Document().Text(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}
	if got := m.Document().Cursor(); got != (buffer.Pos{Row: 0, Col: 1}) {
		t.Fatalf("cursor after backspace: got %v, want %v", got, buffer.Pos{Row: 0, Col: 1})
	}
}

func TestUpdate_ReadOnly_IgnoresMutations(t *testing.T) {
	m := New(Config{Document: newDoc("ab"), KeyMap: DefaultKeyMap(), ReadOnly: true})

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Document().Cursor(); got != (buffer.Pos{Row: 0, Col: 1}) {
		t.Fatalf("cursor after move: got %v, want %v", got, buffer.Pos{Row: 0, Col: 1})
	}

	m.Update(runes("X"))
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.ReplaceSelection("Y")
	if got := m.Document().Text(); got != "ab" {
		t.Fatalf("text after edits in read-only: got %q, want %q", got, "ab")
	}
}

func TestUpdate_Blurred_IgnoresKeys(t *testing.T) {
	m := newModel("ab")
	m.Blur()
	m.Update(runes("X"))
	if got := m.Document().Text(); got != "ab" {
		t.Fatalf("blurred widget accepted input: %q", got)
	}
}

func TestUpdate_OverwriteToggle(t *testing.T) {
	m := newModel("abc")

	m.Update(tea.KeyMsg{Type: tea.KeyInsert})
	if m.TextMode() != OverwriteMode {
		t.Fatalf("mode: got %v, want %v", m.TextMode(), OverwriteMode)
	}
	m.Update(runes("X"))
	m.Update(runes("Y"))
	if got := m.Document().Text(); got != "XYc" {
		t.Fatalf("text after overwrite: got %q, want %q", got, "XYc")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyInsert})
	m.Update(runes("Z"))
	if got := m.Document().Text(); got != "XYZc" {
		t.Fatalf("text after insert: got %q, want %q", got, "XYZc")
	}
}

func TestUpdate_UndoRedoKeys(t *testing.T) {
	m := newModel("")
	m.Update(runes("a"))
	m.Update(runes("b"))

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.Document().Text(); got != "a" {
		t.Fatalf("text after undo: got %q, want %q", got, "a")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.Document().Text(); got != "ab" {
		t.Fatalf("text after redo: got %q, want %q", got, "ab")
	}

	m.SetUndoHistory(nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.Document().Text(); got != "ab" {
		t.Fatalf("undo without history changed text: %q", got)
	}
}

func TestUpdate_Clipboard(t *testing.T) {
	clip := &memClipboard{}
	m := New(Config{Document: newDoc("hello"), KeyMap: DefaultKeyMap(), Clipboard: clip})

	m.Select(0, 2)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if clip.s != "he" {
		t.Fatalf("clipboard after copy: got %q, want %q", clip.s, "he")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.Document().Text(); got != "llo" {
		t.Fatalf("text after cut: got %q, want %q", got, "llo")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	clip.s = "a\r\nb"
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.Document().Text(); got != "lloa\nb" {
		t.Fatalf("text after paste: got %q, want %q", got, "lloa\nb")
	}

	clip.err = errors.New("unavailable")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.Document().Text(); got != "lloa\nb" {
		t.Fatalf("failed paste changed text: %q", got)
	}
}

func TestUpdate_PasteEventInsertsLiteralText(t *testing.T) {
	m := newModel("")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x\r\ny"), Paste: true})
	if got := m.Document().Text(); got != "x\ny" {
		t.Fatalf("text after paste event: got %q, want %q", got, "x\ny")
	}
}

func TestUpdate_TabInsertsTab(t *testing.T) {
	m := newModel("x")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.Document().Text(); got != "\tx" {
		t.Fatalf("text after tab: got %q, want %q", got, "\tx")
	}
}

func TestUpdate_FocusTraversalKeys(t *testing.T) {
	m := newModel("x")

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab, Alt: true})
	if cmd == nil {
		t.Fatalf("alt+tab should produce a focus command")
	}
	if got, ok := cmd().(FocusTraversalMsg); !ok || got.Direction != FocusForward {
		t.Fatalf("focus msg: got %#v", cmd())
	}

	cmd = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab, Alt: true})
	if cmd == nil {
		t.Fatalf("alt+shift+tab should produce a focus command")
	}
	if got, ok := cmd().(FocusTraversalMsg); !ok || got.Direction != FocusBackward {
		t.Fatalf("focus msg: got %#v", cmd())
	}

	m.SetFocusTraversalKeys(FocusForward, WithoutKeys(m.FocusTraversalKeys(FocusForward), "alt+tab"))
	if cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab, Alt: true}); cmd != nil {
		t.Fatalf("alt+tab should no longer traverse focus")
	}
	if got := m.Document().Text(); got != "x" {
		t.Fatalf("alt+tab edited the document: %q", got)
	}
}

func TestWithoutKeys(t *testing.T) {
	b := WithoutKeys(New(Config{}).FocusTraversalKeys(FocusBackward), "alt+shift+tab", "ctrl+shift+tab")
	if got := b.Keys(); len(got) != 1 || got[0] != "shift+f6" {
		t.Fatalf("keys: got %v, want [shift+f6]", got)
	}
}

func TestUpdate_ContextMenuKeys(t *testing.T) {
	m := newModel("abc")
	m.SetSize(20, 10)

	m.Update(tea.KeyMsg{Type: tea.KeyF10})
	if !m.ContextMenuOpen() {
		t.Fatalf("menu should open")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.ContextMenuOpen() {
		t.Fatalf("menu should close after activation")
	}
	if got, want := m.SelectionEnd()-m.SelectionStart(), 3; got != want {
		t.Fatalf("selection length after select all: got %d, want %d", got, want)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyF10})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.ContextMenuOpen() {
		t.Fatalf("esc should close the menu")
	}
	if got := m.Document().Text(); got != "abc" {
		t.Fatalf("menu keys edited the document: %q", got)
	}
}

func TestContextMenu_EnabledState(t *testing.T) {
	m := New(Config{Document: newDoc("abc"), History: buffer.NewHistory(0), Clipboard: &memClipboard{}})

	enabled := func() map[MenuAction]bool {
		out := map[MenuAction]bool{}
		for _, it := range m.ContextMenu() {
			out[it.Action] = it.Enabled
		}
		return out
	}

	e := enabled()
	if e[MenuUndo] || e[MenuCut] || e[MenuCopy] || e[MenuDelete] || !e[MenuPaste] || !e[MenuSelectAll] {
		t.Fatalf("initial menu state: %v", e)
	}

	m.Select(0, 1)
	m.Perform(MenuDelete)
	if got := m.Document().Text(); got != "bc" {
		t.Fatalf("text after delete: got %q, want %q", got, "bc")
	}
	if e := enabled(); !e[MenuUndo] || e[MenuDelete] {
		t.Fatalf("menu state after delete: %v", e)
	}

	m.Perform(MenuUndo)
	if got := m.Document().Text(); got != "abc" {
		t.Fatalf("text after undo: got %q, want %q", got, "abc")
	}

	m.Select(1, 1)
	m.Perform(MenuCut)
	if got := m.Document().Text(); got != "abc" {
		t.Fatalf("disabled action ran: %q", got)
	}
}

func TestUpdate_SpaceKeyTypesSpace(t *testing.T) {
	m := newModel("ab")
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.Document().Text(); got != "a b" {
		t.Fatalf("text: got %q, want %q", got, "a b")
	}
}
