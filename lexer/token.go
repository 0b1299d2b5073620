// Package lexer classifies source text into tokens for highlighting and
// reference lookup.
//
// Token makers are registered per syntax style in a Registry; widgets look
// their token maker up by style name.
package lexer

import (
	"sort"

	"github.com/alecthomas/chroma/v2"
)

// Kind is the coarse classification used for reference navigation.
type Kind uint8

const (
	KindOther Kind = iota
	KindDataType
	KindVariable
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindDataType:
		return "DataType"
	case KindVariable:
		return "Variable"
	case KindFunction:
		return "Function"
	default:
		return "Other"
	}
}

// Token is a classified span of source text.
//
// Start and End are rune offsets into the tokenised text, half-open
// [Start, End). Class drives highlighting; Kind drives navigation.
type Token struct {
	Lexeme string
	Kind   Kind
	Class  chroma.TokenType
	Start  int
	End    int
}

// Contains reports whether offset falls inside the token.
func (t Token) Contains(offset int) bool {
	return offset >= t.Start && offset < t.End
}

// TokenMaker turns text into tokens sorted by Start. Tokens never overlap;
// whitespace between tokens may be left uncovered.
type TokenMaker interface {
	Tokens(text string) []Token
}

// KeywordSource reclassifies identifiers listed in a keyword table.
type KeywordSource interface {
	KindOf(lexeme string) (Kind, bool)
}

// TokenAt returns the token covering offset.
func TokenAt(tokens []Token, offset int) (Token, bool) {
	i := sort.Search(len(tokens), func(i int) bool { return tokens[i].End > offset })
	if i == len(tokens) || !tokens[i].Contains(offset) {
		return Token{}, false
	}
	return tokens[i], true
}

// classFor maps a navigation kind to the highlighting class used for
// keyword-table hits.
func classFor(k Kind) chroma.TokenType {
	switch k {
	case KindDataType:
		return chroma.KeywordType
	case KindVariable:
		return chroma.NameConstant
	case KindFunction:
		return chroma.NameFunction
	default:
		return chroma.Keyword
	}
}

// kindFor derives the navigation kind from a highlighting class.
func kindFor(c chroma.TokenType) Kind {
	switch c {
	case chroma.KeywordType:
		return KindDataType
	case chroma.NameFunction, chroma.NameBuiltin, chroma.NameFunctionMagic:
		return KindFunction
	case chroma.NameVariable, chroma.NameVariableGlobal, chroma.NameVariableInstance,
		chroma.NameVariableClass, chroma.NameConstant:
		return KindVariable
	}
	return KindOther
}

func reclassify(tok Token, kw KeywordSource) Token {
	if kw == nil || !isWordClass(tok.Class) {
		return tok
	}
	if k, ok := kw.KindOf(tok.Lexeme); ok {
		tok.Kind = k
		tok.Class = classFor(k)
	}
	return tok
}

func isWordClass(c chroma.TokenType) bool {
	return c.InCategory(chroma.Name) || c.InCategory(chroma.Keyword)
}
