package widget

import (
	"github.com/iw2rmb/sketcharea/buffer"
	"github.com/iw2rmb/sketcharea/lexer"
)

// Config configures a Model.
type Config struct {
	// Document is the initial document. Nil starts with an empty one.
	Document *buffer.Buffer
	// History is attached to Document. Nil disables undo.
	History *buffer.History

	ShowLineNums bool
	Style        Style
	KeyMap       KeyMap
	ReadOnly     bool

	// TabSize is the tab stop width in cells. Zero uses 4.
	TabSize int

	// Clipboard backs cut/copy/paste. Nil disables clipboard transfer.
	Clipboard Clipboard

	// TokenMakers resolves syntax styles. Nil uses lexer.DefaultRegistry.
	TokenMakers *lexer.Registry
	// SyntaxStyle selects the initial token maker.
	SyntaxStyle string
}

const defaultTabSize = 4

func (c Config) tabSize() int {
	if c.TabSize <= 0 {
		return defaultTabSize
	}
	return c.TabSize
}

func (c Config) registry() *lexer.Registry {
	if c.TokenMakers == nil {
		return lexer.DefaultRegistry()
	}
	return c.TokenMakers
}
