package widget

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/sketcharea/buffer"
)

// HandleMouse applies a mouse event to the widget.
func (m *Model) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	var cmd tea.Cmd
	if !m.menu.open && isWheel(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	if !m.focused || m.buf == nil {
		return cmd
	}
	defer m.Sync()

	if m.menu.open {
		m.updateMenuMouse(msg)
		return cmd
	}

	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionMotion:
		if m.mouseDragging {
			x, y := m.clampMouseToBounds(msg.X, msg.Y)
			p := m.screenToDocPos(x, y)
			m.buf.SetCursor(p)
			m.buf.SetSelection(buffer.Range{Start: m.mouseAnchor, End: p})
			return cmd
		}
		if msg.Ctrl && m.mouseInBounds(msg.X, msg.Y) {
			m.setHoverLink(m.OffsetAt(msg.X, msg.Y))
		} else {
			m.clearHoverLink()
		}

	case tea.MouseActionPress:
		if !m.mouseInBounds(msg.X, msg.Y) {
			return cmd
		}
		switch msg.Button { //nolint:exhaustive
		case tea.MouseButtonRight:
			m.OpenContextMenu(msg.X, msg.Y)
			return cmd
		case tea.MouseButtonLeft:
		default:
			return cmd
		}

		if msg.Ctrl {
			if res, ok := m.linkAt(m.OffsetAt(msg.X, msg.Y)); ok {
				m.clearHoverLink()
				res.Execute()
				return cmd
			}
		}

		p := m.screenToDocPos(msg.X, msg.Y)
		if msg.Shift {
			anchor := m.buf.Cursor()
			if raw, ok := m.buf.SelectionRaw(); ok {
				anchor = raw.Start
			}
			m.mouseAnchor = anchor
			m.buf.SetCursor(p)
			m.buf.SetSelection(buffer.Range{Start: anchor, End: p})
		} else {
			m.mouseAnchor = p
			m.buf.SetCursor(p)
			m.buf.ClearSelection()
		}
		m.mouseDragging = true

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return cmd
}

func (m *Model) updateMenuMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	row, ok := m.menuItemAt(msg.X, msg.Y)
	if !ok || msg.Button != tea.MouseButtonLeft {
		m.CloseContextMenu()
		return
	}
	m.menu.selected = row
	m.menuActivate()
}

func isWheel(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m *Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m *Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
