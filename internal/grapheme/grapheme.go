package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// WordBounds returns the rune offsets at which the words of line start and
// end, in ascending order and without duplicates. Offset 0 and the rune
// length of line are always included.
func WordBounds(line []rune) []int {
	out := []int{0}
	if len(line) == 0 {
		return out
	}

	rest := string(line)
	state := -1
	off := 0
	var word string
	for rest != "" {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		off += len([]rune(word))
		if out[len(out)-1] != off {
			out = append(out, off)
		}
	}
	return out
}

// IsSpace reports whether r is Unicode whitespace.
func IsSpace(r rune) bool { return unicode.IsSpace(r) }

// IsWord reports whether r can be part of an identifier.
func IsWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
