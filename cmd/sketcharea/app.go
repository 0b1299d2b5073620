package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tliron/commonlog"

	"github.com/iw2rmb/sketcharea"
	"github.com/iw2rmb/sketcharea/buffer"
	"github.com/iw2rmb/sketcharea/diag"
	"github.com/iw2rmb/sketcharea/surface"
)

var log = commonlog.GetLogger("sketcharea.cmd")

// document is an open file with its own undo history. Files with CRLF line
// endings are edited as LF and written back with CRLF.
type document struct {
	path string
	buf  *buffer.Buffer
	hist *buffer.History
	crlf bool
}

func openDocuments(paths []string, historyLimit int) ([]*document, error) {
	if len(paths) == 0 {
		paths = []string{"sketch.ino"}
	}
	out := make([]*document, 0, len(paths))
	for _, p := range paths {
		text, crlf, err := readSketch(p)
		if err != nil {
			return nil, err
		}
		out = append(out, &document{
			path: p,
			buf:  buffer.New(text, buffer.Options{Name: filepath.Base(p)}),
			hist: buffer.NewHistory(historyLimit),
			crlf: crlf,
		})
	}
	return out, nil
}

// readSketch reads p with line endings normalised to LF. A missing file
// reads as empty.
func readSketch(p string) (string, bool, error) {
	data, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("open %s: %w", p, err)
	}
	text := string(data)
	crlf := strings.Contains(text, "\r\n")
	if crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	return text, crlf, nil
}

func (d *document) contents() []byte {
	text := d.buf.Text()
	if d.crlf {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return []byte(text)
}

type appKeys struct {
	Quit, Save       key.Binding
	Reload           key.Binding
	NextDoc, PrevDoc key.Binding
	ToggleTheme      key.Binding
}

func defaultAppKeys() appKeys {
	return appKeys{
		Quit:        key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Reload:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload from disk")),
		NextDoc:     key.NewBinding(key.WithKeys("alt+tab"), key.WithHelp("alt+tab", "next file")),
		PrevDoc:     key.NewBinding(key.WithKeys("alt+shift+tab"), key.WithHelp("alt+shift+tab", "previous file")),
		ToggleTheme: key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "toggle theme")),
	}
}

type app struct {
	s       *surface.Surface
	docs    []*document
	current int
	keys    appKeys

	selStart, selEnd int
	message          string
	quitting         bool

	width  int
	status lipgloss.Style
}

func newApp(s *surface.Surface, docs []*document) *app {
	a := &app{
		s:      s,
		docs:   docs,
		keys:   defaultAppKeys(),
		status: lipgloss.NewStyle().Reverse(true),
	}
	s.SetLineStatusObserver(surface.LineStatusFunc(func(start, end int) {
		a.selStart, a.selEnd = start, end
	}))
	s.SetKeyListener(surface.KeyListenerFuncs{Pressed: a.keyPressed})
	a.message = sketcharea.Banner()
	return a
}

func (a *app) Init() tea.Cmd { return nil }

// keyPressed handles the app's own shortcuts ahead of the editor.
func (a *app) keyPressed(e *surface.KeyEvent) {
	switch {
	case key.Matches(e.Msg, a.keys.Quit):
		a.quitting = true
	case key.Matches(e.Msg, a.keys.Save):
		a.save()
	case key.Matches(e.Msg, a.keys.Reload):
		a.reload()
	case key.Matches(e.Msg, a.keys.NextDoc):
		a.switchTo(a.current + 1)
	case key.Matches(e.Msg, a.keys.PrevDoc):
		a.switchTo(a.current - 1)
	case key.Matches(e.Msg, a.keys.ToggleTheme):
		a.toggleTheme()
	default:
		return
	}
	e.Consume()
}

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, a.s.Update(tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-1, 0)})
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
	}
	cmd := a.s.Update(msg)
	if a.quitting {
		return a, tea.Quit
	}
	return a, cmd
}

func (a *app) View() string {
	if a.quitting {
		return ""
	}
	return a.s.View() + "\n" + a.statusLine()
}

func (a *app) statusLine() string {
	doc := a.docs[a.current]
	pos, _ := doc.buf.PosAt(a.s.CaretOffset())
	left := fmt.Sprintf(" %s  %d:%d", doc.buf.Name(), pos.Row+1, pos.Col+1)
	if n := a.selEnd - a.selStart; n > 0 {
		left += fmt.Sprintf("  (%d selected)", n)
	}
	left += fmt.Sprintf("  %s  %d/%d", a.s.Widget().TextMode(), a.current+1, len(a.docs))
	if a.message != "" {
		left += "  " + a.message
	}
	return a.status.Width(a.width).MaxWidth(a.width).Render(left)
}

func (a *app) switchTo(i int) {
	n := len(a.docs)
	if n < 2 {
		return
	}
	i = ((i % n) + n) % n
	a.current = i
	d := a.docs[i]
	a.s.SwitchDocument(d.buf, d.hist)
	a.message = ""
}

func (a *app) save() {
	d := a.docs[a.current]
	if err := os.WriteFile(d.path, d.contents(), 0o644); err != nil {
		log.Errorf("save %s: %s", d.path, err)
		a.message = "save failed: " + err.Error()
		return
	}
	a.message = "saved " + d.path
}

// reload replaces the current document with the file on disk. Its undo
// history starts over.
func (a *app) reload() {
	d := a.docs[a.current]
	text, crlf, err := readSketch(d.path)
	if err != nil {
		log.Errorf("reload %s: %s", d.path, err)
		a.message = "reload failed: " + err.Error()
		return
	}
	d.buf = buffer.New(text, buffer.Options{Name: filepath.Base(d.path)})
	d.crlf = crlf
	d.hist.Discard()
	a.s.SwitchDocument(d.buf, d.hist)
	a.message = "reloaded " + d.path
}

func (a *app) toggleTheme() {
	next := "dark"
	if a.s.ThemeName() == "dark" {
		next = surface.DefaultTheme
	}
	if err := a.s.ApplyTheme(next); err != nil {
		log.Warningf("%s", err)
		a.message = err.Error()
		return
	}
	a.message = "theme " + next
}

// showFirstError selects the line of the first error reported against an
// open document.
func (a *app) showFirstError(errs []diag.CompilerError) {
	for _, e := range errs {
		for i, d := range a.docs {
			if filepath.Base(e.FileName()) != filepath.Base(d.path) {
				continue
			}
			row := e.Line() - 1
			start, ok := d.buf.LineStartOffset(row)
			if !ok {
				continue
			}
			if i != a.current {
				a.current = i
				a.s.SwitchDocument(d.buf, d.hist)
			}
			text, _ := a.s.TextOfLine(row)
			end := start + len([]rune(text))
			if end > start && text[len(text)-1] == '\n' {
				end--
			}
			a.s.Select(start, end)
			a.message = e.Message()
			return
		}
	}
	if len(errs) > 0 {
		a.message = errs[0].Error()
	}
}
