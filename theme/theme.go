// Package theme loads syntax highlighting themes.
//
// Themes are chroma XML style files stored as <lib>/theme/syntax/<name>.xml:
//
//	<style name="default">
//	  <entry type="Background" style="bg:#ffffff #1a1a1a"/>
//	  <entry type="KeywordType" style="bold #00979c"/>
//	</style>
//
// Entries of type LineHighlight and LineNumbers style the current line and
// the gutter; when absent they are derived from the background colours.
package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tliron/commonlog"

	"github.com/iw2rmb/sketcharea/widget"
)

var log = commonlog.GetLogger("sketcharea.theme")

// LoadError reports a theme that could not be read or parsed.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("theme %q (%s): %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Theme is a parsed syntax theme.
type Theme struct {
	Name  string
	style *chroma.Style
}

// Path returns the location of the named theme under libDir.
func Path(libDir, name string) string {
	return filepath.Join(libDir, "theme", "syntax", name+".xml")
}

// Load reads the named theme from libDir.
func Load(libDir, name string) (*Theme, error) {
	return load(name, Path(libDir, name))
}

// LoadFile reads a theme from path. The theme is named after the file.
func LoadFile(path string) (*Theme, error) {
	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	return load(name, path)
}

func load(name, path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Err: err}
	}
	defer f.Close()

	style, err := chroma.NewXMLStyle(f)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Err: err}
	}
	log.Debugf("loaded theme %q from %s", name, path)
	return &Theme{Name: name, style: style}, nil
}

// Target is a component whose style a theme replaces.
type Target interface {
	Style() widget.Style
	SetStyle(widget.Style)
}

// Apply installs the theme on t, keeping t's cursor and menu styles.
func (th *Theme) Apply(t Target) {
	t.SetStyle(th.Style(t.Style()))
}

// Style derives a widget style from the theme. Fields the theme does not
// describe are taken from base.
func (th *Theme) Style(base widget.Style) widget.Style {
	bgEntry := th.style.Get(chroma.Background)
	text := entryStyle(bgEntry)

	out := base
	out.Text = text
	out.Tokens = make(map[chroma.TokenType]lipgloss.Style)
	declared := make(map[chroma.TokenType]bool)
	for _, tt := range th.style.Types() {
		declared[tt] = true
		switch tt {
		case chroma.Background, chroma.LineHighlight, chroma.LineNumbers, chroma.LineNumbersTable:
			continue
		}
		out.Tokens[tt] = entryStyle(th.style.Get(tt))
	}

	fg, bg := bgEntry.Colour, bgEntry.Background
	if declared[chroma.LineHighlight] {
		out.CurrentLine = entryStyle(th.style.Get(chroma.LineHighlight))
	} else if c, ok := blend(bg, fg, 0.06); ok {
		out.CurrentLine = lipgloss.NewStyle().Background(c)
	}
	if c, ok := blend(bg, fg, 0.22); ok {
		out.Selection = lipgloss.NewStyle().Background(c)
	}
	if declared[chroma.LineNumbers] {
		out.LineNum = entryStyle(th.style.Get(chroma.LineNumbers))
	} else if c, ok := blend(fg, bg, 0.55); ok {
		out.LineNum = lipgloss.NewStyle().Foreground(c)
	}
	out.Gutter = out.LineNum
	out.LineNumActive = out.LineNum.Bold(true)
	if fg.IsSet() {
		out.LineNumActive = out.LineNumActive.Foreground(lipgloss.Color(fg.String()))
	}
	return out
}

func entryStyle(e chroma.StyleEntry) lipgloss.Style {
	st := lipgloss.NewStyle()
	if e.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(e.Colour.String()))
	}
	if e.Background.IsSet() {
		st = st.Background(lipgloss.Color(e.Background.String()))
	}
	if e.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if e.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if e.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

// blend mixes a toward b by t in Lab space. Both colours must be set.
func blend(a, b chroma.Colour, t float64) (lipgloss.Color, bool) {
	if !a.IsSet() || !b.IsSet() {
		return "", false
	}
	ca, err := colorful.Hex(a.String())
	if err != nil {
		return "", false
	}
	cb, err := colorful.Hex(b.String())
	if err != nil {
		return "", false
	}
	return lipgloss.Color(ca.BlendLab(cb, t).Clamped().Hex()), true
}
