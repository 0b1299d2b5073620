package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/sketcharea/buffer"
)

// HandleKey applies a key press to the widget.
func (m *Model) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if !m.focused || m.buf == nil {
		return nil
	}
	defer m.Sync()

	if m.menu.open {
		m.updateMenuKey(msg)
		return nil
	}
	if cmd, ok := m.FocusTraversal(msg); ok {
		return cmd
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.typeText(normalizeNewlines(string(msg.Runes)))
		return nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp})
	case key.Matches(msg, km.Down):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown})

	case key.Matches(msg, km.ShiftLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirDown, Extend: true})

	case key.Matches(msg, km.WordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})

	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.DocStart):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case key.Matches(msg, km.DocEnd):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})
	case key.Matches(msg, km.PageUp):
		m.movePage(-1)
	case key.Matches(msg, km.PageDown):
		m.movePage(1)

	case key.Matches(msg, km.Backspace):
		if !m.cfg.ReadOnly {
			m.buf.DeleteBackward()
		}
	case key.Matches(msg, km.Delete):
		if !m.cfg.ReadOnly {
			m.buf.DeleteForward()
		}
	case key.Matches(msg, km.Enter):
		if !m.cfg.ReadOnly {
			m.buf.InsertNewline()
		}
	case key.Matches(msg, km.Tab):
		m.typeText("\t")

	case key.Matches(msg, km.Undo):
		m.Undo()
	case key.Matches(msg, km.Redo):
		m.Redo()

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if !m.cfg.ReadOnly {
			m.cutSelection()
		} else {
			m.copySelection()
		}
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()
	case key.Matches(msg, km.SelectAll):
		m.buf.SelectAll()

	case key.Matches(msg, km.ToggleOverwrite):
		if m.mode == InsertMode {
			m.mode = OverwriteMode
		} else {
			m.mode = InsertMode
		}
	case key.Matches(msg, km.Menu):
		x, y, _ := m.docToScreenPos(m.buf.Cursor())
		m.OpenContextMenu(x, y+1)

	case msg.Type == tea.KeySpace && !msg.Alt:
		m.typeText(" ")

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			m.typeText(string(msg.Runes))
		}
	}
	return nil
}

func (m *Model) updateMenuKey(msg tea.KeyMsg) {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Up):
		m.menuMove(-1)
	case key.Matches(msg, km.Down):
		m.menuMove(1)
	case key.Matches(msg, km.Enter):
		m.menuActivate()
	case key.Matches(msg, km.Escape), key.Matches(msg, km.Menu):
		m.CloseContextMenu()
	}
}

// typeText inserts or overwrites according to the text mode.
func (m *Model) typeText(s string) {
	if m.cfg.ReadOnly {
		return
	}
	if m.mode == OverwriteMode {
		m.buf.OverwriteText(s)
		return
	}
	m.buf.InsertText(s)
}

func (m *Model) movePage(dir int) {
	h := maxInt(m.visibleRowCount(), 1)
	dirKey := buffer.DirDown
	if dir < 0 {
		dirKey = buffer.DirUp
	}
	for i := 0; i < h; i++ {
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: dirKey})
	}
}

func (m *Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s, ok := m.buf.SelectedText()
	if !ok || s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		log.Debugf("clipboard write: %s", err)
	}
}

func (m *Model) cutSelection() {
	if m.cfg.Clipboard == nil || m.cfg.ReadOnly {
		return
	}
	if _, ok := m.buf.Selection(); !ok {
		return
	}
	m.copySelection()
	m.buf.DeleteSelection()
}

func (m *Model) pasteClipboard() {
	if m.cfg.Clipboard == nil || m.cfg.ReadOnly {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		log.Debugf("clipboard read: %s", err)
		return
	}
	if s == "" {
		return
	}
	m.buf.InsertText(normalizeNewlines(s))
}

// normalizeNewlines converts newlines from external sources.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
