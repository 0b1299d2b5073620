package lexer

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
)

type kwMap map[string]Kind

func (m kwMap) KindOf(s string) (Kind, bool) {
	k, ok := m[s]
	return k, ok
}

func TestTokenAt(t *testing.T) {
	toks := []Token{
		{Lexeme: "int", Start: 0, End: 3},
		{Lexeme: "x", Start: 4, End: 5},
	}
	if tok, ok := TokenAt(toks, 2); !ok || tok.Lexeme != "int" {
		t.Fatalf("TokenAt(2)=%+v ok=%v", tok, ok)
	}
	if _, ok := TokenAt(toks, 3); ok {
		t.Fatalf("TokenAt(3) should hit the gap")
	}
	if tok, ok := TokenAt(toks, 4); !ok || tok.Lexeme != "x" {
		t.Fatalf("TokenAt(4)=%+v ok=%v", tok, ok)
	}
	if _, ok := TokenAt(toks, 5); ok {
		t.Fatalf("TokenAt past end should fail")
	}
	if _, ok := TokenAt(nil, 0); ok {
		t.Fatalf("TokenAt on empty slice should fail")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.New(SyntaxStyleCPlusPlus); !ok {
		t.Fatalf("expected cpp mapping")
	}
	if _, ok := r.New("text/unknown"); ok {
		t.Fatalf("unexpected mapping for unknown style")
	}

	calls := 0
	r.PutMapping("text/sketch", func() TokenMaker {
		calls++
		return NewSketchTokenMaker(nil)
	})
	if _, ok := r.New("text/sketch"); !ok || calls != 1 {
		t.Fatalf("factory not used: ok=%v calls=%d", ok, calls)
	}
	if got := strings.Join(r.Styles(), ","); got != "text/cpp,text/plain,text/sketch" {
		t.Fatalf("styles=%q", got)
	}

	r.PutMapping("text/sketch", nil)
	if _, ok := r.New("text/sketch"); ok {
		t.Fatalf("nil factory should remove the mapping")
	}
}

func assertCovers(t *testing.T, text string, toks []Token) {
	t.Helper()
	runes := []rune(text)
	prev := 0
	for _, tok := range toks {
		if tok.Start < prev || tok.End <= tok.Start {
			t.Fatalf("tokens out of order at %+v", tok)
		}
		if got := string(runes[tok.Start:tok.End]); got != tok.Lexeme {
			t.Fatalf("lexeme %q does not match text %q", tok.Lexeme, got)
		}
		prev = tok.End
	}
}

func TestChromaTokenMaker_Classifies(t *testing.T) {
	text := "int led = 13;\nvoid loop() {}"
	toks := NewChromaTokenMaker("cpp", nil).Tokens(text)
	assertCovers(t, text, toks)

	tok, ok := TokenAt(toks, 1)
	if !ok || tok.Lexeme != "int" || tok.Kind != KindDataType {
		t.Fatalf("TokenAt(1)=%+v ok=%v", tok, ok)
	}
	if tok.Class != chroma.KeywordType {
		t.Fatalf("class=%v, want KeywordType", tok.Class)
	}
}

func TestChromaTokenMaker_KeywordTable(t *testing.T) {
	kw := kwMap{"digitalWrite": KindFunction, "HIGH": KindVariable}
	text := "digitalWrite(led, HIGH);"
	toks := NewSketchTokenMaker(kw).Tokens(text)
	assertCovers(t, text, toks)

	tok, ok := TokenAt(toks, 3)
	if !ok || tok.Lexeme != "digitalWrite" || tok.Kind != KindFunction {
		t.Fatalf("TokenAt(3)=%+v ok=%v", tok, ok)
	}
	tok, ok = TokenAt(toks, 19)
	if !ok || tok.Lexeme != "HIGH" || tok.Kind != KindVariable {
		t.Fatalf("TokenAt(19)=%+v ok=%v", tok, ok)
	}
	if tok.Class != chroma.NameConstant {
		t.Fatalf("class=%v, want NameConstant", tok.Class)
	}
}

func TestChromaTokenMaker_RuneOffsets(t *testing.T) {
	text := "// héllo\nint x;"
	toks := NewChromaTokenMaker("cpp", nil).Tokens(text)
	assertCovers(t, text, toks)

	tok, ok := TokenAt(toks, 9)
	if !ok || tok.Lexeme != "int" {
		t.Fatalf("TokenAt(9)=%+v ok=%v", tok, ok)
	}
}

func TestChromaTokenMaker_Empty(t *testing.T) {
	if toks := NewChromaTokenMaker("cpp", nil).Tokens(""); len(toks) != 0 {
		t.Fatalf("tokens=%v, want none", toks)
	}
}

func TestTreeSitterTokenMaker(t *testing.T) {
	text := "int led = 13;\nvoid setup() {\n  pinMode(led, OUTPUT);\n}"
	toks := NewTreeSitterTokenMaker(kwMap{"OUTPUT": KindVariable}).Tokens(text)
	assertCovers(t, text, toks)

	cases := []struct {
		offset int
		lexeme string
		kind   Kind
	}{
		{offset: 0, lexeme: "int", kind: KindDataType},
		{offset: 4, lexeme: "led", kind: KindOther},
		{offset: 10, lexeme: "13", kind: KindOther},
		{offset: 19, lexeme: "setup", kind: KindFunction},
		{offset: 32, lexeme: "pinMode", kind: KindFunction},
		{offset: 45, lexeme: "OUTPUT", kind: KindVariable},
	}
	for _, tc := range cases {
		tok, ok := TokenAt(toks, tc.offset)
		if !ok || tok.Lexeme != tc.lexeme || tok.Kind != tc.kind {
			t.Fatalf("TokenAt(%d)=%+v ok=%v, want %q %v", tc.offset, tok, ok, tc.lexeme, tc.kind)
		}
	}
	if _, ok := TokenAt(toks, 3); ok {
		t.Fatalf("whitespace should not be covered")
	}
}

func TestKind_String(t *testing.T) {
	if KindFunction.String() != "Function" || Kind(99).String() != "Other" {
		t.Fatalf("unexpected kind names")
	}
}

func TestTokenMakers_KeepCRLFOffsets(t *testing.T) {
	text := "int a;\r\nint b;\r\nint c;\r\nvoid setup() {}"
	makers := map[string]TokenMaker{
		"chroma":     NewSketchTokenMaker(nil),
		"treesitter": NewTreeSitterTokenMaker(nil),
	}
	for name, mk := range makers {
		toks := mk.Tokens(text)
		for _, c := range []struct {
			offset int
			lexeme string
		}{{24, "void"}, {33, "setup"}, {17, "c"}} {
			tok, ok := TokenAt(toks, c.offset)
			if !ok || tok.Lexeme != c.lexeme {
				t.Fatalf("%s: TokenAt(%d): got %+v ok=%v, want %q", name, c.offset, tok, ok, c.lexeme)
			}
			if got := string([]rune(text)[tok.Start:tok.End]); got != tok.Lexeme {
				t.Fatalf("%s: token %q spans %q in the text", name, tok.Lexeme, got)
			}
		}
	}
}
