package widget

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/sketcharea/buffer"
	"github.com/iw2rmb/sketcharea/lexer"
)

// cellKey identifies the resolved style of a run of cells.
type cellKey struct {
	cursor   bool
	selected bool
	link     bool
	hasClass bool
	class    chroma.TokenType
}

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	tokens := m.Tokens()
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()
	lineCount := m.buf.LineCount()
	digits := gutterDigits(lineCount)

	out := make([]string, 0, lineCount)
	off := 0
	for row := 0; row < lineCount; row++ {
		text, _ := m.buf.Line(row)
		line := []rune(text)

		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}
		sb.WriteString(m.renderLine(row, line, off, tokens, cursor, sel, selOK))
		out = append(out, sb.String())
		off += len(line) + 1
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderLine(
	row int,
	line []rune,
	lineStart int,
	tokens []lexer.Token,
	cursor buffer.Pos,
	sel buffer.Range,
	selOK bool,
) string {
	st := m.cfg.Style
	base := st.Text
	hasCursor := m.focused && row == cursor.Row
	if hasCursor {
		base = st.CurrentLine.Inherit(st.Text)
	}

	selStart, selEnd := -1, -1
	if selOK && row >= sel.Start.Row && row <= sel.End.Row {
		selStart, selEnd = 0, len(line)+1
		if row == sel.Start.Row {
			selStart = sel.Start.Col
		}
		if row == sel.End.Row {
			selEnd = sel.End.Col
		}
	}

	ti := sort.Search(len(tokens), func(i int) bool { return tokens[i].End > lineStart })
	tabSize := m.cfg.tabSize()

	var sb strings.Builder
	var run strings.Builder
	var runKey cellKey
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(m.styleFor(base, runKey).Render(run.String()))
		run.Reset()
	}

	cell := 0
	for col, r := range line {
		o := lineStart + col
		for ti < len(tokens) && tokens[ti].End <= o {
			ti++
		}
		k := cellKey{
			cursor:   hasCursor && col == cursor.Col,
			selected: col >= selStart && col < selEnd,
			link:     m.hoverLink.ok && o >= m.hoverLink.start && o < m.hoverLink.end,
		}
		if ti < len(tokens) && tokens[ti].Start <= o {
			k.hasClass = true
			k.class = tokens[ti].Class
		}
		if k != runKey {
			flush()
			runKey = k
		}

		w := runeCells(r, cell, tabSize)
		switch {
		case r == '\t':
			run.WriteString(strings.Repeat(" ", w))
		case unicode.IsControl(r):
			run.WriteRune(controlGlyph(r))
		default:
			run.WriteRune(r)
		}
		cell += w
	}
	flush()

	// Cursor at EOL is rendered as a 1-cell placeholder space.
	if hasCursor && cursor.Col >= len(line) {
		sb.WriteString(m.styleFor(base, cellKey{cursor: true}).Render(" "))
	}
	return sb.String()
}

func (m *Model) styleFor(base lipgloss.Style, k cellKey) lipgloss.Style {
	st := m.cfg.Style
	style := base
	if k.hasClass {
		if ts, ok := st.TokenStyle(k.class); ok {
			style = ts.Inherit(base)
		}
	}
	if k.link {
		style = st.Link.Inherit(style)
	}
	if k.selected {
		style = st.Selection.Inherit(style)
	}
	if k.cursor {
		style = st.Cursor.Inherit(style)
	}
	return style
}

// controlGlyph maps a control rune to its one-cell Control Pictures symbol,
// so a stray '\r' never moves the terminal cursor.
func controlGlyph(r rune) rune {
	switch {
	case r < 0x20:
		return 0x2400 + r
	case r == 0x7f:
		return 0x2421
	default:
		return 0xfffd
	}
}
