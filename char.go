package parsec

import (
	"fmt"
	"unicode"
)

// nextPosRune is the default position-advance rule for a rune stream: it
// defers entirely to SourcePos.AdvanceRune.
func nextPosRune(pos SourcePos, r rune, _ Stream[rune]) SourcePos {
	return pos.AdvanceRune(r)
}

func charDescribe(r rune) string {
	return fmt.Sprintf("%q", string(r))
}

func runesDescribe(rs []rune) string {
	return fmt.Sprintf("%q", string(rs))
}

func nextPosRunes(pos SourcePos, seq []rune) SourcePos {
	return pos.AdvanceString(string(seq))
}

// Character matches a single rune exactly.
func Character[U any](c rune) Parser[rune, U, rune] {
	return Satisfy[rune, U](charDescribe, nextPosRune, func(r rune) bool { return r == c })
}

// AnyChar matches any rune, failing only at end of input.
func AnyChar[U any]() Parser[rune, U, rune] {
	return AnyToken[rune, U](charDescribe, nextPosRune)
}

func runeSet(set string) map[rune]struct{} {
	m := make(map[rune]struct{}, len(set))
	for _, r := range set {
		m[r] = struct{}{}
	}
	return m
}

// OneOf matches any rune present in set.
func OneOf[U any](set string) Parser[rune, U, rune] {
	m := runeSet(set)
	return Satisfy[rune, U](charDescribe, nextPosRune, func(r rune) bool {
		_, ok := m[r]
		return ok
	})
}

// NoneOf matches any rune absent from set.
func NoneOf[U any](set string) Parser[rune, U, rune] {
	m := runeSet(set)
	return Satisfy[rune, U](charDescribe, nextPosRune, func(r rune) bool {
		_, ok := m[r]
		return !ok
	})
}

// StringTok consumes lit exactly, character by character: it fails Empty
// if the first rune disagrees, Consumed if a later one does.
func StringTok[U any](lit string) Parser[rune, U, string] {
	expected := []rune(lit)
	eq := func(a, b rune) bool { return a == b }
	return Map(Tokens[rune, U](runesDescribe, nextPosRunes, eq, expected), func(rs []rune) string {
		return string(rs)
	})
}

// --- named character classes (spec.md §4.3) ---

// Satisfy1 is a convenience wrapper for building a new named character
// class from a predicate and an "expecting" label.
func Satisfy1[U any](label string, pred func(rune) bool) Parser[rune, U, rune] {
	return Label(Satisfy[rune, U](charDescribe, nextPosRune, pred), label)
}

func Letter[U any]() Parser[rune, U, rune] { return Satisfy1[U]("letter", unicode.IsLetter) }

func LetterOrDigit[U any]() Parser[rune, U, rune] {
	return Satisfy1[U]("letter or digit", func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
}

func UpperChar[U any]() Parser[rune, U, rune]  { return Satisfy1[U]("uppercase letter", unicode.IsUpper) }
func LowerChar[U any]() Parser[rune, U, rune]  { return Satisfy1[U]("lowercase letter", unicode.IsLower) }
func SymbolChar[U any]() Parser[rune, U, rune] { return Satisfy1[U]("symbol", unicode.IsSymbol) }

func isDecimalDigit(r rune) bool { return r >= '0' && r <= '9' }
func isOctalDigit(r rune) bool   { return r >= '0' && r <= '7' }
func isHexDigit(r rune) bool {
	return isDecimalDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func DigitChar[U any]() Parser[rune, U, rune]    { return Satisfy1[U]("digit", isDecimalDigit) }
func OctDigitChar[U any]() Parser[rune, U, rune] { return Satisfy1[U]("octal digit", isOctalDigit) }
func HexDigitChar[U any]() Parser[rune, U, rune] { return Satisfy1[U]("hexadecimal digit", isHexDigit) }

// asciiSpaces is the "ASCII + control" whitespace set: space, tab, LF, CR,
// FF, VT.
var asciiSpaces = map[rune]struct{}{
	' ': {}, '\t': {}, '\n': {}, '\r': {}, '\f': {}, '\v': {},
}

// unicodeSpaces extends asciiSpaces with the full Unicode space set named
// in spec.md §4.3: NEL, NBSP, the U+2000..U+200D block, line/paragraph
// separators, narrow NBSP, medium mathematical space, word joiner,
// ideographic space, and BOM. Listed by code point to avoid embedding
// invisible characters in source.
var unicodeSpaces = func() map[rune]struct{} {
	m := make(map[rune]struct{}, len(asciiSpaces)+24)
	for r := range asciiSpaces {
		m[r] = struct{}{}
	}
	for _, r := range []rune{0x0085, 0x00A0, 0x2028, 0x2029, 0x202F, 0x205F, 0x2060, 0x3000, 0xFEFF} {
		m[r] = struct{}{}
	}
	for r := rune(0x2000); r <= 0x200D; r++ {
		m[r] = struct{}{}
	}
	return m
}()

// Space matches one ASCII/control whitespace rune.
func Space[U any]() Parser[rune, U, rune] {
	return Satisfy1[U]("space", func(r rune) bool { _, ok := asciiSpaces[r]; return ok })
}

// Spaces skips zero or more ASCII/control whitespace runes.
func Spaces[U any]() Parser[rune, U, struct{}] {
	return SkipMany(Space[U]())
}

// UnicodeSpace matches one Unicode-space rune (the wider set).
func UnicodeSpace[U any]() Parser[rune, U, rune] {
	return Satisfy1[U]("space", func(r rune) bool { _, ok := unicodeSpaces[r]; return ok })
}

// Newline matches a single LF.
func Newline[U any]() Parser[rune, U, rune] {
	return Label(Character[U]('\n'), "newline")
}

// CRLF matches a literal CR followed by LF, yielding '\n'. (A rune stream
// can never present a composed two-character grapheme as one element —
// that case is handled by the grapheme-aware parsers in grapheme.go.)
func CRLF[U any]() Parser[rune, U, rune] {
	return Label(Bind(Character[U]('\r'), func(rune) Parser[rune, U, rune] {
		return Map(Character[U]('\n'), func(rune) rune { return '\n' })
	}), "crlf newline")
}

// EndOfLine matches Newline or CRLF.
func EndOfLine[U any]() Parser[rune, U, rune] {
	return Alt(Newline[U](), Attempt(CRLF[U]()))
}

// Tab matches a single tab character.
func Tab[U any]() Parser[rune, U, rune] { return Label(Character[U]('\t'), "tab") }
