package buffer

// Len returns the document length in runes, counting each line break as one.
func (b *Buffer) Len() int {
	n := len(b.lines) - 1
	for _, line := range b.lines {
		n += len(line)
	}
	return n
}

// LineCount returns the number of logical lines; never less than 1.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of row without its line terminator.
func (b *Buffer) Line(row int) (string, bool) {
	if row < 0 || row >= len(b.lines) {
		return "", false
	}
	return string(b.lines[row]), true
}

// LineStartOffset returns the offset of the first rune of row.
func (b *Buffer) LineStartOffset(row int) (int, bool) {
	if row < 0 || row >= len(b.lines) {
		return 0, false
	}
	off := 0
	for i := 0; i < row; i++ {
		off += len(b.lines[i]) + 1
	}
	return off, true
}

// LineEndOffset returns the offset just past row, including its line
// terminator. The last line has no terminator.
func (b *Buffer) LineEndOffset(row int) (int, bool) {
	start, ok := b.LineStartOffset(row)
	if !ok {
		return 0, false
	}
	end := start + len(b.lines[row])
	if row < len(b.lines)-1 {
		end++
	}
	return end, true
}

// OffsetOf returns the offset of p after clamping it into the document.
func (b *Buffer) OffsetOf(p Pos) int {
	p = b.clampPos(p)
	start, _ := b.LineStartOffset(p.Row)
	return start + p.Col
}

// PosAt returns the position of offset off, which must be within
// [0, Len()].
func (b *Buffer) PosAt(off int) (Pos, bool) {
	if off < 0 {
		return Pos{}, false
	}
	for row, line := range b.lines {
		if off <= len(line) {
			return Pos{Row: row, Col: off}, true
		}
		off -= len(line) + 1
	}
	return Pos{}, false
}

// TextRange returns the text in [start, end).
func (b *Buffer) TextRange(start, end int) (string, bool) {
	if start > end {
		return "", false
	}
	s, ok := b.PosAt(start)
	if !ok {
		return "", false
	}
	e, ok := b.PosAt(end)
	if !ok {
		return "", false
	}
	return b.textInRange(Range{Start: s, End: e}), true
}
