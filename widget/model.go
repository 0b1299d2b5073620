package widget

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tliron/commonlog"

	"github.com/iw2rmb/sketcharea/buffer"
	"github.com/iw2rmb/sketcharea/lexer"
)

var log = commonlog.GetLogger("sketcharea.widget")

// TextMode selects how typed text interacts with existing text.
type TextMode int

const (
	InsertMode TextMode = iota
	OverwriteMode
)

func (t TextMode) String() string {
	if t == OverwriteMode {
		return "OVR"
	}
	return "INS"
}

// Model is a Bubble Tea component that renders and edits a document.
type Model struct {
	cfg     Config
	buf     *buffer.Buffer
	history *buffer.History

	focused  bool
	mode     TextMode
	viewport viewport.Model

	forwardKeys  key.Binding
	backwardKeys key.Binding

	syntaxStyle string
	tokenMaker  lexer.TokenMaker
	tokens      tokenCache

	links     LinkGenerator
	hoverLink span

	menu menuState

	mouseAnchor   buffer.Pos
	mouseDragging bool

	lastBufVersion uint64
	lastCursor     buffer.Pos
}

type span struct {
	start, end int
	ok         bool
}

func New(cfg Config) *Model {
	m := &Model{
		cfg:          cfg,
		focused:      true,
		viewport:     viewport.New(0, 0),
		forwardKeys:  key.NewBinding(key.WithKeys(defaultForwardKeys...)),
		backwardKeys: key.NewBinding(key.WithKeys(defaultBackwardKeys...)),
	}
	if m.cfg.SyntaxStyle != "" {
		m.SetSyntaxEditingStyle(m.cfg.SyntaxStyle)
	}
	doc := cfg.Document
	if doc == nil {
		doc = buffer.New("", buffer.Options{})
	}
	m.attach(doc)
	m.SetUndoHistory(cfg.History)
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

// Document returns the attached document.
func (m *Model) Document() *buffer.Buffer { return m.buf }

// SetDocument attaches doc, replacing the current document.
//
// The replacement is reported to the attached history as a whole-document
// change, and the history is then bound to doc. Hosts that keep one history
// per document must detach the history first (SetUndoHistory(nil)) and
// attach the new document's history afterwards. View state (scroll offset,
// hover link, menu, token cache) is reset.
func (m *Model) SetDocument(doc *buffer.Buffer) {
	if doc == nil {
		doc = buffer.New("", buffer.Options{})
	}
	if doc == m.buf {
		return
	}
	old := m.buf
	if old != nil {
		old.SetRecorder(nil)
		if m.history != nil {
			m.history.Record(doc, buffer.ReplacementChange(old, doc))
		}
	}
	m.attach(doc)
	if m.history != nil {
		doc.SetRecorder(m.history)
	}
	log.Debugf("document attached: %q", doc.Name())
}

func (m *Model) attach(doc *buffer.Buffer) {
	m.buf = doc
	m.tokens = tokenCache{}
	m.hoverLink = span{}
	m.menu = menuState{}
	m.mouseDragging = false
	m.viewport.SetYOffset(0)
	m.lastBufVersion = doc.Version()
	m.lastCursor = doc.Cursor()
	m.rebuildContent()
	m.followCursor()
}

// UndoHistory returns the attached history, or nil.
func (m *Model) UndoHistory() *buffer.History { return m.history }

// SetUndoHistory attaches h to the current document. Nil detaches the
// current history; subsequent edits are not recorded.
func (m *Model) SetUndoHistory(h *buffer.History) {
	m.history = h
	if m.buf == nil {
		return
	}
	if h == nil {
		m.buf.SetRecorder(nil)
		return
	}
	m.buf.SetRecorder(h)
}

// Undo reverts the last recorded change.
func (m *Model) Undo() bool {
	if m.history == nil || m.cfg.ReadOnly {
		return false
	}
	return m.history.Undo(m.buf)
}

// Redo re-applies the last undone change.
func (m *Model) Redo() bool {
	if m.history == nil || m.cfg.ReadOnly {
		return false
	}
	return m.history.Redo(m.buf)
}

func (m *Model) TextMode() TextMode { return m.mode }

func (m *Model) SetTextMode(t TextMode) { m.mode = t }

func (m *Model) ReadOnly() bool { return m.cfg.ReadOnly }

func (m *Model) Style() Style { return m.cfg.Style }

// SetStyle replaces the rendering style.
func (m *Model) SetStyle(st Style) {
	m.cfg.Style = st
	m.rebuildContent()
}

func (m *Model) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
}

func (m *Model) Focus() {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
}

func (m *Model) Blur() {
	if m.focused {
		m.focused = false
		m.menu = menuState{}
		m.rebuildContent()
	}
}

func (m *Model) Focused() bool { return m.focused }

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return nil
	case tea.KeyMsg:
		return m.HandleKey(msg)
	case tea.MouseMsg:
		return m.HandleMouse(msg)
	default:
		// Hosts may mutate the document directly.
		m.Sync()
		return nil
	}
}

func (m *Model) View() string {
	base := m.viewport.View()
	if v, ok := m.menuRender(base); ok {
		return v
	}
	return base
}

// Sync re-renders when the document changed outside the widget.
func (m *Model) Sync() {
	if m.syncFromBuffer() {
		m.followCursor()
	}
}

func (m *Model) syncFromBuffer() (cursorChanged bool) {
	if m.buf == nil {
		return false
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return false
	}
	cursorChanged = cur != m.lastCursor
	m.lastBufVersion = ver
	m.lastCursor = cur
	m.rebuildContent()
	return cursorChanged
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) visibleRowCount() int {
	return m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
}

func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	cur := m.buf.Cursor()
	h := m.visibleRowCount()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if cur.Row < y {
		m.viewport.SetYOffset(cur.Row)
		return
	}
	if cur.Row >= y+h {
		m.viewport.SetYOffset(cur.Row - h + 1)
	}
}
