package lexer

import (
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("sketcharea.lexer")

// ChromaTokenMaker tokenises with a chroma lexer and reclassifies
// identifiers found in an optional keyword table.
type ChromaTokenMaker struct {
	lexer    chroma.Lexer
	keywords KeywordSource
}

// NewChromaTokenMaker looks up language by chroma name or alias. Unknown
// languages fall back to cpp, then to chroma's plaintext lexer.
func NewChromaTokenMaker(language string, kw KeywordSource) *ChromaTokenMaker {
	l := lexers.Get(language)
	if l == nil {
		l = lexers.Get("cpp")
	}
	if l == nil {
		l = lexers.Fallback
	}
	return &ChromaTokenMaker{lexer: chroma.Coalesce(l), keywords: kw}
}

// NewSketchTokenMaker returns the token maker used for sketch sources.
func NewSketchTokenMaker(kw KeywordSource) *ChromaTokenMaker {
	return NewChromaTokenMaker("arduino", kw)
}

func (m *ChromaTokenMaker) Tokens(text string) []Token {
	if text == "" {
		return nil
	}
	total := utf8.RuneCountInString(text)
	// Default options rewrite CRLF to LF, which would shift offsets.
	it, err := m.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		log.Warningf("tokenise: %s", err)
		return []Token{{Lexeme: text, Class: chroma.Text, End: total}}
	}

	var out []Token
	off := 0
	for t := it(); t != chroma.EOF; t = it() {
		if off >= total {
			break
		}
		value := t.Value
		n := utf8.RuneCountInString(value)
		if off+n > total {
			// chroma may append a trailing newline
			n = total - off
			value = string([]rune(value)[:n])
		}
		if n == 0 {
			continue
		}
		tok := Token{Lexeme: value, Class: t.Type, Start: off, End: off + n}
		tok.Kind = kindFor(tok.Class)
		out = append(out, reclassify(tok, m.keywords))
		off += n
	}
	return out
}
