package buffer

import "strings"

// Options configures a Buffer.
type Options struct {
	// Name identifies the document for hosts, usually its file name.
	Name string
}

type selectionState struct {
	active bool
	anchor Pos
	end    Pos
}

// Buffer is the document state: text, cursor, and selection.
//
// Every effective text change is reported to the attached Recorder, if any.
type Buffer struct {
	lines   [][]rune
	version uint64
	name    string

	cursor Pos
	sel    selectionState

	recorder Recorder

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	return &Buffer{
		lines: splitLines(text),
		name:  opt.Name,
	}
}

// Name returns the name the buffer was created with.
func (b *Buffer) Name() string { return b.name }

func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() Pos { return b.cursor }

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.version++
}

// Selection returns the normalized selection, if a non-empty one is active.
func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// SelectionRaw returns the raw selection anchor/end without normalization.
func (b *Buffer) SelectionRaw() (Range, bool) {
	if !b.sel.active || b.sel.anchor == b.sel.end {
		return Range{}, false
	}
	return Range{Start: b.sel.anchor, End: b.sel.end}, true
}

// SetSelection selects r, keeping r.Start as the anchor. An empty range
// clears the selection.
func (b *Buffer) SetSelection(r Range) {
	clamped := ClampRange(r, len(b.lines), b.lineLen)
	next := selectionState{active: true, anchor: clamped.Start, end: clamped.End}
	if clamped.Start == clamped.End {
		next = selectionState{}
	}
	if selectionStateEqual(b.sel, next) {
		return
	}
	b.sel = next
	b.version++
}

func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	b.sel = selectionState{}
	b.version++
}

// SelectAll selects the whole document and moves the cursor to its end.
func (b *Buffer) SelectAll() {
	last := len(b.lines) - 1
	end := Pos{Row: last, Col: len(b.lines[last])}
	b.SetSelection(Range{Start: Pos{}, End: end})
	b.SetCursor(end)
}

// SetRecorder attaches r to receive future changes. A nil r detaches the
// current recorder.
func (b *Buffer) SetRecorder(r Recorder) { b.recorder = r }

// Recorder returns the attached recorder, or nil.
func (b *Buffer) Recorder() Recorder { return b.recorder }

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

func selectionStateEqual(a, b selectionState) bool {
	if !a.active && !b.active {
		return true
	}
	return a.active == b.active && a.anchor == b.anchor && a.end == b.end
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	return lines
}
