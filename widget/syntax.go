package widget

import "github.com/iw2rmb/sketcharea/lexer"

type tokenCache struct {
	valid   bool
	version uint64
	text    string
	tokens  []lexer.Token
}

// SetSyntaxEditingStyle selects the token maker registered for style.
// Unknown styles disable highlighting and report false.
func (m *Model) SetSyntaxEditingStyle(style string) bool {
	tm, ok := m.cfg.registry().New(style)
	if !ok {
		log.Warningf("no token maker for syntax style %q", style)
		m.syntaxStyle = ""
		m.tokenMaker = nil
	} else {
		m.syntaxStyle = style
		m.tokenMaker = tm
	}
	m.tokens = tokenCache{}
	if m.buf != nil {
		m.rebuildContent()
	}
	return ok
}

func (m *Model) SyntaxEditingStyle() string { return m.syntaxStyle }

// Tokens returns the tokens of the current document.
func (m *Model) Tokens() []lexer.Token {
	if m.tokenMaker == nil || m.buf == nil {
		return nil
	}
	ver := m.buf.Version()
	if m.tokens.valid && m.tokens.version == ver {
		return m.tokens.tokens
	}
	text := m.buf.Text()
	if !m.tokens.valid || text != m.tokens.text {
		m.tokens.tokens = m.tokenMaker.Tokens(text)
		m.tokens.text = text
	}
	m.tokens.valid = true
	m.tokens.version = ver
	return m.tokens.tokens
}

// TokenAt returns the token covering offset.
func (m *Model) TokenAt(offset int) (lexer.Token, bool) {
	return lexer.TokenAt(m.Tokens(), offset)
}
