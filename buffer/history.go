package buffer

// DefaultHistoryLimit bounds a History created with a zero limit.
const DefaultHistoryLimit = 1000

// History is an undo-history tracker for a single document.
//
// It records the changes of the buffer it is attached to as a Recorder and
// replays them in reverse on Undo. A History must only be used with the
// buffer whose changes it recorded; hosts keep the two paired.
type History struct {
	limit int
	undo  []Change
	redo  []Change
}

// NewHistory returns an empty History keeping at most limit changes.
// A zero limit uses DefaultHistoryLimit; a negative limit records nothing.
func NewHistory(limit int) *History {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Record implements Recorder.
func (h *History) Record(_ *Buffer, c Change) {
	if h.limit < 0 || len(c.AppliedEdits) == 0 {
		return
	}
	h.undo = append(h.undo, c)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of undoable changes.
func (h *History) Len() int { return len(h.undo) }

// Discard drops all recorded changes.
func (h *History) Discard() {
	h.undo = nil
	h.redo = nil
}

// Undo reverts the most recent change on b.
func (h *History) Undo(b *Buffer) bool {
	if len(h.undo) == 0 || b == nil {
		return false
	}
	i := len(h.undo) - 1
	c := h.undo[i]
	h.undo = h.undo[:i]

	b.replay(func() {
		for j := len(c.AppliedEdits) - 1; j >= 0; j-- {
			e := c.AppliedEdits[j]
			b.replaceRange(e.RangeAfter, e.DeletedText)
		}
		b.restoreCaret(c.CursorBefore, c.SelectionBefore)
	})
	h.redo = append(h.redo, c)
	return true
}

// Redo re-applies the most recently undone change on b.
func (h *History) Redo(b *Buffer) bool {
	if len(h.redo) == 0 || b == nil {
		return false
	}
	i := len(h.redo) - 1
	c := h.redo[i]
	h.redo = h.redo[:i]

	b.replay(func() {
		for _, e := range c.AppliedEdits {
			b.replaceRange(e.RangeBefore, e.InsertText)
		}
		b.restoreCaret(c.CursorAfter, c.SelectionAfter)
	})
	h.undo = append(h.undo, c)
	return true
}

// replay runs fn as one change that is not reported to the recorder.
func (b *Buffer) replay(fn func()) {
	change := b.beginChange()
	fn()
	b.version++
	b.lastChange = Change{
		VersionBefore:   change.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    change.cursorBefore,
		CursorAfter:     b.cursor,
		SelectionBefore: change.selectionBefore,
		SelectionAfter:  selectionStateFromInternal(b.sel),
	}
	b.hasLastChange = true
}

func (b *Buffer) restoreCaret(cursor Pos, sel SelectionState) {
	b.cursor = b.clampPos(cursor)
	b.sel = selectionState{}
	if sel.Active {
		r := ClampRange(sel.Range, len(b.lines), b.lineLen)
		if !r.IsEmpty() {
			b.sel = selectionState{active: true, anchor: r.Start, end: r.End}
		}
	}
}
