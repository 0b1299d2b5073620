package widget

import (
	"strings"

	"github.com/mattn/go-runewidth"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// MenuAction identifies a context menu command.
type MenuAction int

const (
	MenuUndo MenuAction = iota
	MenuRedo
	MenuCut
	MenuCopy
	MenuPaste
	MenuDelete
	MenuSelectAll
)

// MenuItem is one context menu entry.
type MenuItem struct {
	Label   string
	Action  MenuAction
	Enabled bool
}

type menuState struct {
	open     bool
	x, y     int
	selected int
}

// ContextMenu returns the default context menu with the enabled state
// reflecting the current document, selection and history.
func (m *Model) ContextMenu() []MenuItem {
	_, hasSel := m.buf.Selection()
	writable := !m.cfg.ReadOnly
	canUndo := writable && m.history != nil && m.history.CanUndo()
	canRedo := writable && m.history != nil && m.history.CanRedo()
	clip := m.cfg.Clipboard != nil
	return []MenuItem{
		{Label: "Undo", Action: MenuUndo, Enabled: canUndo},
		{Label: "Redo", Action: MenuRedo, Enabled: canRedo},
		{Label: "Cut", Action: MenuCut, Enabled: writable && hasSel && clip},
		{Label: "Copy", Action: MenuCopy, Enabled: hasSel && clip},
		{Label: "Paste", Action: MenuPaste, Enabled: writable && clip},
		{Label: "Delete", Action: MenuDelete, Enabled: writable && hasSel},
		{Label: "Select All", Action: MenuSelectAll, Enabled: true},
	}
}

// Perform runs a context menu action. Disabled actions are ignored.
func (m *Model) Perform(a MenuAction) {
	for _, it := range m.ContextMenu() {
		if it.Action != a {
			continue
		}
		if !it.Enabled {
			return
		}
		break
	}
	switch a {
	case MenuUndo:
		m.Undo()
	case MenuRedo:
		m.Redo()
	case MenuCut:
		m.cutSelection()
	case MenuCopy:
		m.copySelection()
	case MenuPaste:
		m.pasteClipboard()
	case MenuDelete:
		m.buf.DeleteSelection()
	case MenuSelectAll:
		m.buf.SelectAll()
	}
	m.Sync()
}

// OpenContextMenu shows the context menu at viewport cell (x, y).
func (m *Model) OpenContextMenu(x, y int) {
	m.menu = menuState{open: true, x: maxInt(x, 0), y: maxInt(y, 0)}
}

func (m *Model) CloseContextMenu() { m.menu = menuState{} }

func (m *Model) ContextMenuOpen() bool { return m.menu.open }

func (m *Model) menuMove(delta int) {
	n := len(m.ContextMenu())
	m.menu.selected = (m.menu.selected + delta + n) % n
}

func (m *Model) menuActivate() {
	items := m.ContextMenu()
	it := items[clampInt(m.menu.selected, 0, len(items)-1)]
	m.CloseContextMenu()
	m.Perform(it.Action)
}

// menuItemAt maps a viewport cell to a menu row.
func (m *Model) menuItemAt(x, y int) (int, bool) {
	if !m.menu.open {
		return 0, false
	}
	items := m.ContextMenu()
	x0, y0, w := m.menuGeometry(len(items))
	if x < x0 || x >= x0+w || y < y0 || y >= y0+len(items) {
		return 0, false
	}
	return y - y0, true
}

func (m *Model) menuGeometry(rows int) (x, y, width int) {
	for _, it := range m.ContextMenu() {
		width = maxInt(width, runewidth.StringWidth(it.Label))
	}
	width += 2
	x, y = m.menu.x, m.menu.y
	if maxX := m.viewport.Width - width; x > maxX {
		x = maxInt(maxX, 0)
	}
	if maxY := m.visibleRowCount() - rows; y > maxY {
		y = maxInt(maxY, 0)
	}
	return x, y, width
}

func (m *Model) menuRender(base string) (string, bool) {
	if !m.menu.open || m.viewport.Width <= 0 || m.visibleRowCount() <= 0 {
		return "", false
	}
	items := m.ContextMenu()
	x, y, width := m.menuGeometry(len(items))

	st := m.cfg.Style
	rows := make([]string, 0, len(items))
	for i, it := range items {
		style := st.Menu
		switch {
		case i == m.menu.selected:
			style = st.MenuSelected
		case !it.Enabled:
			style = st.MenuDisabled
		}
		label := " " + it.Label
		label += strings.Repeat(" ", maxInt(width-runewidth.StringWidth(label), 0))
		rows = append(rows, style.Render(label))
	}

	leftFrame := m.viewport.Style.GetMarginLeft() + m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	topFrame := m.viewport.Style.GetMarginTop() + m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()

	return overlay.Composite(
		strings.Join(rows, "\n"),
		base,
		overlay.Left,
		overlay.Top,
		leftFrame+x,
		topFrame+y,
	), true
}
