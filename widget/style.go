package widget

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
)

// Style controls the widget's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text        lipgloss.Style
	CurrentLine lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style
	Link        lipgloss.Style

	Menu         lipgloss.Style
	MenuSelected lipgloss.Style
	MenuDisabled lipgloss.Style

	// Tokens styles highlighted text by token class. Lookups fall back from
	// the exact class to its sub-category and category.
	Tokens map[chroma.TokenType]lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		CurrentLine:   lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Link:          lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("33")),
		Menu:          lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")),
		MenuSelected:  lipgloss.NewStyle().Background(lipgloss.Color("25")).Foreground(lipgloss.Color("231")),
		MenuDisabled:  lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("242")),
		Tokens: map[chroma.TokenType]lipgloss.Style{
			chroma.Keyword:        lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
			chroma.KeywordType:    lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
			chroma.NameFunction:   lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
			chroma.NameConstant:   lipgloss.NewStyle().Foreground(lipgloss.Color("30")),
			chroma.LiteralString:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			chroma.LiteralNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("166")),
			chroma.Comment:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			chroma.CommentPreproc: lipgloss.NewStyle().Foreground(lipgloss.Color("136")),
		},
	}
}

// TokenStyle returns the style for a token class.
func (s Style) TokenStyle(t chroma.TokenType) (lipgloss.Style, bool) {
	if s.Tokens == nil {
		return lipgloss.Style{}, false
	}
	for _, c := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if st, ok := s.Tokens[c]; ok {
			return st, true
		}
	}
	return lipgloss.Style{}, false
}
