package widget

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/sketcharea/buffer"
)

func (m *Model) gutterWidth() int {
	if !m.cfg.ShowLineNums || m.buf == nil {
		return 0
	}
	return gutterDigits(m.buf.LineCount()) + 1
}

func gutterDigits(lineCount int) int {
	return len(strconv.Itoa(maxInt(lineCount, 1)))
}

// runeCells returns the cell width of r at cell position at.
func runeCells(r rune, at, tabSize int) int {
	if r == '\t' {
		return tabSize - at%tabSize
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// cellOfCol returns the cell offset of col in line.
func cellOfCol(line []rune, col, tabSize int) int {
	cell := 0
	for i := 0; i < col && i < len(line); i++ {
		cell += runeCells(line[i], cell, tabSize)
	}
	return cell
}

// colOfCell returns the column whose cell span contains cell. Cells past the
// end of line map to the end of line.
func colOfCell(line []rune, cell, tabSize int) int {
	at := 0
	for i, r := range line {
		w := runeCells(r, at, tabSize)
		if cell < at+w {
			return i
		}
		at += w
	}
	return len(line)
}

// screenToDocPos maps viewport-local coordinates to a document position.
// Coordinates are clamped into document bounds; gutter clicks map to col 0.
func (m *Model) screenToDocPos(x, y int) buffer.Pos {
	if m.buf == nil {
		return buffer.Pos{}
	}
	row := clampInt(m.viewport.YOffset+y, 0, m.buf.LineCount()-1)
	text, _ := m.buf.Line(row)
	line := []rune(text)

	cell := x - m.gutterWidth()
	if cell < 0 {
		return buffer.Pos{Row: row}
	}
	return buffer.Pos{Row: row, Col: colOfCell(line, cell, m.cfg.tabSize())}
}

// docToScreenPos maps a document position to viewport-local coordinates.
// ok is false when the position is scrolled out of view.
func (m *Model) docToScreenPos(p buffer.Pos) (x, y int, ok bool) {
	if m.buf == nil {
		return 0, 0, false
	}
	text, found := m.buf.Line(p.Row)
	if !found {
		return 0, 0, false
	}
	x = m.gutterWidth() + cellOfCol([]rune(text), p.Col, m.cfg.tabSize())
	y = p.Row - m.viewport.YOffset
	ok = y >= 0 && y < m.visibleRowCount() && x < m.viewport.Width
	return x, y, ok
}

// OffsetAt maps viewport-local coordinates to a document offset.
func (m *Model) OffsetAt(x, y int) int {
	return m.buf.OffsetOf(m.screenToDocPos(x, y))
}
