// Package surface wraps the text widget with the sketch editor's
// behaviour: syntax themes, keyword reference links, listener-first key
// dispatch, per-document undo histories and selection reporting.
package surface

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tliron/commonlog"

	"github.com/iw2rmb/sketcharea/buffer"
	"github.com/iw2rmb/sketcharea/keywords"
	"github.com/iw2rmb/sketcharea/lexer"
	"github.com/iw2rmb/sketcharea/theme"
	"github.com/iw2rmb/sketcharea/widget"
)

var log = commonlog.GetLogger("sketcharea.surface")

// DefaultTheme is installed by New when Config.Theme is empty.
const DefaultTheme = "default"

// TextWidget is the part of the text widget the surface drives.
// *widget.Model implements it.
type TextWidget interface {
	Select(start, end int)
	SelectionStart() int
	SelectionEnd() int
	CaretOffset() int
	ReplaceSelection(text string)
	TextMode() widget.TextMode
	SetTextMode(widget.TextMode)

	Document() *buffer.Buffer
	SetDocument(doc *buffer.Buffer)
	UndoHistory() *buffer.History
	SetUndoHistory(h *buffer.History)

	FocusTraversalKeys(dir widget.FocusDirection) key.Binding
	SetFocusTraversalKeys(dir widget.FocusDirection, b key.Binding)
	FocusTraversal(msg tea.KeyMsg) (tea.Cmd, bool)

	HandleKey(msg tea.KeyMsg) tea.Cmd
	HandleMouse(msg tea.MouseMsg) tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string

	LineText(row int) (string, bool)
	TokenAt(offset int) (lexer.Token, bool)
	SetSyntaxEditingStyle(style string) bool
	SetLinkGenerator(g widget.LinkGenerator)
	ContextMenu() []widget.MenuItem

	Style() widget.Style
	SetStyle(st widget.Style)
}

// LineStatusObserver is told about every selection change.
type LineStatusObserver interface {
	ReportSelection(start, end int)
}

// LineStatusFunc adapts a function to LineStatusObserver.
type LineStatusFunc func(start, end int)

func (f LineStatusFunc) ReportSelection(start, end int) { f(start, end) }

// Config configures a Surface.
type Config struct {
	// Widget is the wrapped widget. Nil creates a *widget.Model from
	// WidgetConfig.
	Widget       TextWidget
	WidgetConfig widget.Config

	// LibDir holds theme/syntax/<name>.xml. Empty skips theme installation.
	LibDir string
	// Theme is installed by New. Empty uses DefaultTheme.
	Theme string

	// Keywords classifies lexemes and names their reference pages.
	Keywords *keywords.Table
	// Docs shows reference pages. Nil makes links inert.
	Docs DocViewer

	// TokenMakers receives the sketch token maker for the C++ syntax
	// style. It must be the registry the widget resolves styles from.
	// Nil uses WidgetConfig.TokenMakers, or a fresh registry.
	TokenMakers *lexer.Registry
	// TokenMaker builds the sketch token maker. Nil uses the chroma based
	// sketch token maker over Keywords.
	TokenMaker lexer.Factory
}

// Surface is the sketch editing area.
type Surface struct {
	w        TextWidget
	libDir   string
	theme    string
	resolver ReferenceLinkResolver

	observer LineStatusObserver
	listener KeyListener
}

// New builds a surface and installs, in order: the theme, the reference
// link generator, the focus traversal fix and the sketch token maker.
func New(cfg Config) (*Surface, error) {
	reg := cfg.TokenMakers
	if reg == nil {
		reg = cfg.WidgetConfig.TokenMakers
	}
	if reg == nil {
		reg = lexer.NewRegistry()
	}

	w := cfg.Widget
	if w == nil {
		wcfg := cfg.WidgetConfig
		wcfg.TokenMakers = reg
		w = widget.New(wcfg)
	}

	s := &Surface{w: w, libDir: cfg.LibDir}

	if cfg.LibDir != "" {
		name := cfg.Theme
		if name == "" {
			name = DefaultTheme
		}
		if err := s.ApplyTheme(name); err != nil {
			return nil, err
		}
	}

	var refs ReferenceTable
	if cfg.Keywords != nil {
		refs = cfg.Keywords
	}
	s.resolver = NewReferenceLinkResolver(w, refs, cfg.Docs)
	w.SetLinkGenerator(linkGenerator{resolver: s.resolver})

	s.FixFocusTraversal()

	factory := cfg.TokenMaker
	if factory == nil {
		kw := cfg.Keywords
		factory = func() lexer.TokenMaker {
			if kw == nil {
				return lexer.NewSketchTokenMaker(nil)
			}
			return lexer.NewSketchTokenMaker(kw)
		}
	}
	reg.PutMapping(lexer.SyntaxStyleCPlusPlus, factory)
	w.SetSyntaxEditingStyle(lexer.SyntaxStyleCPlusPlus)

	return s, nil
}

// Widget returns the wrapped widget.
func (s *Surface) Widget() TextWidget { return s.w }

// Resolver returns the reference link resolver installed on the widget.
func (s *Surface) Resolver() ReferenceLinkResolver { return s.resolver }

// ThemeName returns the name of the last successfully applied theme.
func (s *Surface) ThemeName() string { return s.theme }

// ApplyTheme loads <lib>/theme/syntax/<name>.xml and restyles the widget.
// On failure the error is a *theme.LoadError and the current styling is
// kept.
func (s *Surface) ApplyTheme(name string) error {
	th, err := theme.Load(s.libDir, name)
	if err != nil {
		return err
	}
	th.Apply(s.w)
	s.theme = name
	log.Debugf("theme %q applied", name)
	return nil
}

// SetLineStatusObserver registers o. Nil unregisters.
func (s *Surface) SetLineStatusObserver(o LineStatusObserver) { s.observer = o }

// SetKeyListener registers l. Nil unregisters.
func (s *Surface) SetKeyListener(l KeyListener) { s.listener = l }

// Select selects [start, end) and reports the range to the observer.
func (s *Surface) Select(start, end int) {
	s.w.Select(start, end)
	s.report(start, end)
}

// IsSelectionActive reports whether a non-empty range is selected.
func (s *Surface) IsSelectionActive() bool {
	return s.w.SelectionStart() != s.w.SelectionEnd()
}

// CaretOffset returns the caret position, which is the moving end of the
// selection.
func (s *Surface) CaretOffset() int { return s.w.CaretOffset() }

// ReplaceSelectionForced replaces the selection in overwrite mode, then
// restores the previous text mode.
func (s *Surface) ReplaceSelectionForced(text string) {
	prev := s.w.TextMode()
	defer s.w.SetTextMode(prev)

	s.w.SetTextMode(widget.OverwriteMode)
	s.tracked(func() tea.Cmd {
		s.w.ReplaceSelection(text)
		return nil
	})
}

// SwitchDocument makes doc the edited document with h as its undo history.
// The outgoing history is detached before the swap so it never sees the
// replacement. Folding and scroll state are reset.
func (s *Surface) SwitchDocument(doc *buffer.Buffer, h *buffer.History) {
	s.w.SetUndoHistory(nil)
	s.w.SetDocument(doc)
	s.w.SetUndoHistory(h)
	log.Debugf("switched to %q", s.w.Document().Name())
	s.report(s.w.SelectionStart(), s.w.SelectionEnd())
}

// Document returns the edited document.
func (s *Surface) Document() *buffer.Buffer { return s.w.Document() }

// UndoHistory returns the history attached to the edited document.
func (s *Surface) UndoHistory() *buffer.History { return s.w.UndoHistory() }

// FixFocusTraversal frees the modified tab keys from focus traversal so
// hosts can bind them, for example to cycle documents.
func (s *Surface) FixFocusTraversal() {
	fwd := s.w.FocusTraversalKeys(widget.FocusForward)
	s.w.SetFocusTraversalKeys(widget.FocusForward, widget.WithoutKeys(fwd, "alt+tab", "ctrl+tab"))
	back := s.w.FocusTraversalKeys(widget.FocusBackward)
	s.w.SetFocusTraversalKeys(widget.FocusBackward, widget.WithoutKeys(back, "alt+shift+tab", "ctrl+shift+tab"))
}

// TextOfLine returns the text of line, including its terminator.
func (s *Surface) TextOfLine(line int) (string, bool) {
	return s.w.LineText(line)
}

// ContextMenu returns the widget's context menu.
func (s *Surface) ContextMenu() []widget.MenuItem { return s.w.ContextMenu() }

func (s *Surface) Init() tea.Cmd { return nil }

// Update routes keys through DispatchKey and reports selection changes
// made by mouse handling.
func (s *Surface) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.DispatchKey(NewKeyEvent(msg))
	case tea.MouseMsg:
		return s.tracked(func() tea.Cmd { return s.w.HandleMouse(msg) })
	default:
		return s.w.Update(msg)
	}
}

func (s *Surface) View() string { return s.w.View() }

func (s *Surface) report(start, end int) {
	if s.observer != nil {
		s.observer.ReportSelection(start, end)
	}
}

// tracked runs fn and reports the selection if fn changed it.
func (s *Surface) tracked(fn func() tea.Cmd) tea.Cmd {
	start, end := s.w.SelectionStart(), s.w.SelectionEnd()
	cmd := fn()
	if ns, ne := s.w.SelectionStart(), s.w.SelectionEnd(); ns != start || ne != end {
		s.report(ns, ne)
	}
	return cmd
}
