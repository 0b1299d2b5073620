// Package keywords loads the sketch keyword table.
//
// Each non-comment line is tab separated:
//
//	name	KEYWORD1|KEYWORD2|KEYWORD3|LITERAL1	[ReferencePage]
//
// The second column selects the highlighting kind, the optional third
// column names the reference page documenting the keyword.
package keywords

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iw2rmb/sketcharea/lexer"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("sketcharea.keywords")

type entry struct {
	kind lexer.Kind
	ref  string
}

// Table is an immutable keyword lookup.
type Table struct {
	entries map[string]entry
}

// Load reads a keyword table from path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("keywords: %w", err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("keywords: %s: %w", path, err)
	}
	return t, nil
}

// Parse reads a keyword table. Malformed lines are skipped.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{entries: make(map[string]entry)}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			log.Debugf("line %d: missing kind column", lineNo)
			continue
		}
		name := strings.TrimSpace(fields[0])
		kind, ok := parseKind(strings.TrimSpace(fields[1]))
		if name == "" || !ok {
			log.Debugf("line %d: skipped %q", lineNo, line)
			continue
		}
		e := entry{kind: kind}
		if len(fields) > 2 {
			e.ref = strings.TrimSpace(fields[2])
		}
		if prev, dup := t.entries[name]; dup && e.ref == "" {
			e.ref = prev.ref
		}
		t.entries[name] = e
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseKind(s string) (lexer.Kind, bool) {
	switch s {
	case "KEYWORD1":
		return lexer.KindDataType, true
	case "KEYWORD2":
		return lexer.KindFunction, true
	case "KEYWORD3":
		return lexer.KindOther, true
	case "LITERAL1":
		return lexer.KindVariable, true
	}
	return lexer.KindOther, false
}

// KindOf implements lexer.KeywordSource.
func (t *Table) KindOf(lexeme string) (lexer.Kind, bool) {
	if t == nil {
		return lexer.KindOther, false
	}
	e, ok := t.entries[lexeme]
	return e.kind, ok
}

// Reference returns the reference page name for lexeme, if the table has
// one.
func (t *Table) Reference(lexeme string) (string, bool) {
	if t == nil {
		return "", false
	}
	e, ok := t.entries[lexeme]
	if !ok || e.ref == "" {
		return "", false
	}
	return e.ref, true
}

// Len returns the number of keywords.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
