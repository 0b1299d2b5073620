// Package diag holds compiler diagnostics reported against a sketch.
package diag

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// CompilerError is a single compiler error message. Line is 1-based.
type CompilerError struct {
	message  string
	line     int
	fileName string
}

func NewCompilerError(message string, line int, fileName string) CompilerError {
	return CompilerError{message: message, line: line, fileName: fileName}
}

func (e CompilerError) Message() string  { return e.message }
func (e CompilerError) Line() int        { return e.line }
func (e CompilerError) FileName() string { return e.fileName }

func (e CompilerError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.fileName, e.line, e.message)
}

// file:line[:col]: error: message
var gccLine = regexp.MustCompile(`^(.+?):(\d+)(?::\d+)?:\s*(?:fatal\s+)?error:\s*(.*)$`)

// Parse extracts the errors from gcc style compiler output. Warnings, notes
// and unrecognised lines are skipped.
func Parse(r io.Reader) ([]CompilerError, error) {
	var out []CompilerError
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := gccLine.FindStringSubmatch(strings.TrimRight(sc.Text(), "\r"))
		if m == nil {
			continue
		}
		line, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		out = append(out, NewCompilerError(m[3], line, m[1]))
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("diag: %w", err)
	}
	return out, nil
}

// ForFile returns the errors reported against fileName, in order.
func ForFile(errs []CompilerError, fileName string) []CompilerError {
	var out []CompilerError
	for _, e := range errs {
		if e.fileName == fileName {
			out = append(out, e)
		}
	}
	return out
}
