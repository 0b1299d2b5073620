package buffer

import "github.com/iw2rmb/sketcharea/internal/grapheme"

type MoveUnit int

const (
	MoveRune MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, updates selection anchor/end; if false clears selection
}

func (b *Buffer) Move(m Move) {
	prevCursor := b.cursor
	prevSel := b.sel

	nextCursor := b.clampPos(b.moveCursor(prevCursor, m))

	nextSel := selectionState{}
	if m.Extend {
		anchor := prevCursor
		if prevSel.active && prevSel.anchor != prevSel.end {
			anchor = prevSel.anchor
		}
		if anchor != nextCursor {
			nextSel = selectionState{active: true, anchor: anchor, end: nextCursor}
		}
	}

	if prevCursor == nextCursor && selectionStateEqual(prevSel, nextSel) {
		return
	}
	b.cursor = nextCursor
	b.sel = nextSel
	b.version++
}

func (b *Buffer) moveCursor(p Pos, m Move) Pos {
	lastRow := len(b.lines) - 1
	row, col := p.Row, p.Col

	switch {
	case m.Unit == MoveDoc && (m.Dir == DirHome || m.Dir == DirUp):
		return Pos{}
	case m.Unit == MoveDoc:
		return Pos{Row: lastRow, Col: len(b.lines[lastRow])}
	case m.Dir == DirHome:
		return Pos{Row: row}
	case m.Dir == DirEnd:
		return Pos{Row: row, Col: len(b.lines[row])}
	case m.Dir == DirUp:
		if row == 0 {
			return p
		}
		return Pos{Row: row - 1, Col: min(col, len(b.lines[row-1]))}
	case m.Dir == DirDown:
		if row == lastRow {
			return p
		}
		return Pos{Row: row + 1, Col: min(col, len(b.lines[row+1]))}
	case m.Unit == MoveWord && m.Dir == DirLeft:
		if col == 0 && row > 0 {
			return Pos{Row: row - 1, Col: len(b.lines[row-1])}
		}
		return Pos{Row: row, Col: prevWordStart(b.lines[row], col)}
	case m.Unit == MoveWord && m.Dir == DirRight:
		if col == len(b.lines[row]) && row < lastRow {
			return Pos{Row: row + 1}
		}
		return Pos{Row: row, Col: nextWordEnd(b.lines[row], col)}
	case m.Dir == DirLeft:
		if col > 0 {
			return Pos{Row: row, Col: col - 1}
		}
		if row > 0 {
			return Pos{Row: row - 1, Col: len(b.lines[row-1])}
		}
		return p
	case m.Dir == DirRight:
		if col < len(b.lines[row]) {
			return Pos{Row: row, Col: col + 1}
		}
		if row < lastRow {
			return Pos{Row: row + 1}
		}
		return p
	}
	return p
}

// prevWordStart returns the start of the nearest non-blank word segment
// before col.
func prevWordStart(line []rune, col int) int {
	bounds := grapheme.WordBounds(line)
	for i := len(bounds) - 1; i > 0; i-- {
		start, end := bounds[i-1], bounds[i]
		if start >= col {
			continue
		}
		if !blank(line[start:end]) {
			return start
		}
	}
	return 0
}

// nextWordEnd returns the end of the nearest non-blank word segment after
// col.
func nextWordEnd(line []rune, col int) int {
	bounds := grapheme.WordBounds(line)
	for i := 1; i < len(bounds); i++ {
		start, end := bounds[i-1], bounds[i]
		if end <= col {
			continue
		}
		if !blank(line[start:end]) {
			return end
		}
	}
	return len(line)
}

func blank(seg []rune) bool {
	for _, r := range seg {
		if !grapheme.IsSpace(r) {
			return false
		}
	}
	return true
}
