package widget

import "github.com/iw2rmb/sketcharea/buffer"

// Select selects the rune range [start, end) and places the caret at end.
//
// Offsets are clamped to the document; an end before start collapses the
// selection to start.
func (m *Model) Select(start, end int) {
	n := m.buf.Len()
	start = clampInt(start, 0, n)
	end = clampInt(end, start, n)

	startPos, _ := m.buf.PosAt(start)
	endPos, _ := m.buf.PosAt(end)
	m.buf.SetSelection(buffer.Range{Start: startPos, End: endPos})
	m.buf.SetCursor(endPos)
	m.Sync()
}

// SelectionStart returns the offset of the selection start, or the caret
// offset when nothing is selected.
func (m *Model) SelectionStart() int {
	if r, ok := m.buf.Selection(); ok {
		return m.buf.OffsetOf(r.Start)
	}
	return m.buf.OffsetOf(m.buf.Cursor())
}

// SelectionEnd returns the offset of the selection end, or the caret offset
// when nothing is selected.
func (m *Model) SelectionEnd() int {
	if r, ok := m.buf.Selection(); ok {
		return m.buf.OffsetOf(r.End)
	}
	return m.buf.OffsetOf(m.buf.Cursor())
}

// CaretOffset returns the caret position as an offset.
func (m *Model) CaretOffset() int { return m.buf.OffsetOf(m.buf.Cursor()) }

// ReplaceSelection replaces the selection with text, honouring the current
// text mode when nothing is selected. Read-only widgets ignore it.
func (m *Model) ReplaceSelection(text string) {
	if m.cfg.ReadOnly {
		return
	}
	if m.mode == OverwriteMode {
		m.buf.OverwriteText(text)
	} else {
		m.buf.InsertText(text)
	}
	m.Sync()
}

// LineText returns the text of row including its line terminator. The last
// line has no terminator.
func (m *Model) LineText(row int) (string, bool) {
	start, ok := m.buf.LineStartOffset(row)
	if !ok {
		return "", false
	}
	end, ok := m.buf.LineEndOffset(row)
	if !ok {
		return "", false
	}
	return m.buf.TextRange(start, end)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
