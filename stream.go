package parsec

import "github.com/rivo/uniseg"

// Stream is the single contract every input sequence must satisfy: remove
// and return the first element, or report emptiness. Implementations are
// immutable — Uncons never mutates the receiver, it returns the tail as a
// new value, so backtracking is just "keep the old Stream around".
type Stream[Tok any] interface {
	Uncons() (tok Tok, rest Stream[Tok], ok bool)
}

// runeStream is a Stream[rune] backed by a slice; Uncons is O(1) because
// slicing shares the backing array instead of copying.
type runeStream struct {
	runes []rune
}

// NewRuneStream builds the default character Stream used by the char,
// lexeme and expression layers: one token per Unicode code point.
func NewRuneStream(input string) Stream[rune] {
	return runeStream{runes: []rune(input)}
}

func (s runeStream) Uncons() (rune, Stream[rune], bool) {
	if len(s.runes) == 0 {
		var zero rune
		return zero, s, false
	}
	return s.runes[0], runeStream{runes: s.runes[1:]}, true
}

// GraphemeStream is a Stream[string] whose tokens are user-perceived
// characters (grapheme clusters) rather than code points, computed with
// github.com/rivo/uniseg. It exists to make spec.md §4.3/§9's observation
// concrete: a composed "\r\n" sequence may arrive as a single grapheme
// cluster, in which case it is one Stream token rather than two runes, and
// crlf/isSpace-style predicates must treat that single token as a match.
type GraphemeStream struct {
	remainder string
}

// NewGraphemeStream builds a grapheme-cluster Stream over input.
func NewGraphemeStream(input string) Stream[string] {
	return GraphemeStream{remainder: input}
}

func (s GraphemeStream) Uncons() (string, Stream[string], bool) {
	if s.remainder == "" {
		return "", s, false
	}
	cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s.remainder, -1)
	return cluster, GraphemeStream{remainder: rest}, true
}
