package lexer

import (
	"context"
	"sync"

	"github.com/alecthomas/chroma/v2"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// TreeSitterTokenMaker classifies the leaves of a tree-sitter C++ parse.
// Unlike the chroma maker it sees call sites and declarators, so function
// names are recognised from syntax rather than from the keyword table.
type TreeSitterTokenMaker struct {
	mu       sync.Mutex
	parser   *sitter.Parser
	keywords KeywordSource
}

func NewTreeSitterTokenMaker(kw KeywordSource) *TreeSitterTokenMaker {
	p := sitter.NewParser()
	p.SetLanguage(cpp.GetLanguage())
	return &TreeSitterTokenMaker{parser: p, keywords: kw}
}

func (m *TreeSitterTokenMaker) Tokens(text string) []Token {
	if text == "" {
		return nil
	}
	src := []byte(text)

	m.mu.Lock()
	tree, err := m.parser.ParseCtx(context.Background(), nil, src)
	m.mu.Unlock()
	if err != nil {
		log.Warningf("parse: %s", err)
		return nil
	}
	defer tree.Close()

	runeAt := byteToRune(text)
	var out []Token
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.ChildCount() == 0 || n.Type() == "comment" || isStringNode(n.Type()) {
			start, end := int(n.StartByte()), int(n.EndByte())
			if end <= start || end > len(src) {
				return
			}
			tok := Token{
				Lexeme: text[start:end],
				Class:  leafClass(n),
				Start:  runeAt[start],
				End:    runeAt[end],
			}
			tok.Kind = kindFor(tok.Class)
			out = append(out, reclassify(tok, m.keywords))
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())
	return out
}

// byteToRune maps rune-start byte offsets (plus len) to rune offsets.
// Node boundaries always fall on rune starts.
func byteToRune(s string) []int {
	idx := make([]int, len(s)+1)
	r := 0
	for i := range s {
		idx[i] = r
		r++
	}
	idx[len(s)] = r
	return idx
}

func isStringNode(typ string) bool {
	switch typ {
	case "string_literal", "char_literal", "raw_string_literal", "system_lib_string":
		return true
	}
	return false
}

func leafClass(n *sitter.Node) chroma.TokenType {
	typ := n.Type()
	parent := ""
	if p := n.Parent(); p != nil {
		parent = p.Type()
	}
	switch typ {
	case "comment":
		return chroma.Comment
	case "number_literal":
		return chroma.LiteralNumber
	case "primitive_type", "type_identifier", "sized_type_specifier", "auto":
		return chroma.KeywordType
	case "true", "false", "null", "nullptr":
		return chroma.KeywordConstant
	case "field_identifier":
		if parent == "field_expression" {
			return chroma.NameAttribute
		}
		return chroma.NameVariable
	case "identifier":
		switch parent {
		case "function_declarator", "call_expression":
			return chroma.NameFunction
		case "preproc_def", "preproc_function_def":
			return chroma.NameConstant
		}
		return chroma.Name
	}
	if isStringNode(typ) {
		return chroma.LiteralString
	}
	if len(typ) > 0 && typ[0] == '#' {
		return chroma.CommentPreproc
	}
	if parent == "preproc_include" || parent == "preproc_arg" {
		return chroma.CommentPreproc
	}
	if !n.IsNamed() {
		if isAlpha(typ) {
			return chroma.Keyword
		}
		if isPunctuation(typ) {
			return chroma.Punctuation
		}
		return chroma.Operator
	}
	return chroma.Text
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	return s != ""
}

func isPunctuation(s string) bool {
	switch s {
	case "(", ")", "{", "}", "[", "]", ";", ",", ":", "::":
		return true
	}
	return false
}
