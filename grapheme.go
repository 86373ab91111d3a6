package parsec

import "fmt"

// This file makes spec.md §4.3/§9's composed-grapheme observation concrete:
// over a GraphemeStream (see stream.go), the two-character sequence "\r\n"
// is itself a single token — a single user-perceived character — and a
// crlf/space-style parser must accept that one token the same way it
// accepts a lone "\r" followed by a lone "\n".

func graphemeDescribe(tok string) string {
	return fmt.Sprintf("%q", tok)
}

func nextPosGrapheme(pos SourcePos, tok string, _ Stream[string]) SourcePos {
	return pos.AdvanceString(tok)
}

// GraphemeCRLF matches end-of-line over a grapheme stream: either the
// composed "\r\n" grapheme cluster (one token) or a lone "\r" token
// followed by a lone "\n" token, yielding "\n" either way.
func GraphemeCRLF[U any]() Parser[string, U, string] {
	composed := Satisfy[string, U](graphemeDescribe, nextPosGrapheme, func(t string) bool { return t == "\r\n" })
	separate := Bind(
		Satisfy[string, U](graphemeDescribe, nextPosGrapheme, func(t string) bool { return t == "\r" }),
		func(string) Parser[string, U, string] {
			return Satisfy[string, U](graphemeDescribe, nextPosGrapheme, func(t string) bool { return t == "\n" })
		},
	)
	return Map(Alt(composed, Attempt(separate)), func(string) string { return "\n" })
}

// GraphemeNewline matches the lone "\n" grapheme token.
func GraphemeNewline[U any]() Parser[string, U, string] {
	return Label(Satisfy[string, U](graphemeDescribe, nextPosGrapheme, func(t string) bool { return t == "\n" }), "newline")
}

// GraphemeEndOfLine matches GraphemeNewline or GraphemeCRLF.
func GraphemeEndOfLine[U any]() Parser[string, U, string] {
	return Alt(GraphemeNewline[U](), Attempt(GraphemeCRLF[U]()))
}

// GraphemeIsSpace reports whether tok counts as whitespace under the §9
// open-question resolution: a token that compares equal to the composed
// "\r\n" grapheme counts as space, exactly like a lone space/tab/newline
// token.
func GraphemeIsSpace(tok string) bool {
	if tok == "\r\n" {
		return true
	}
	if len(tok) != 1 {
		return false
	}
	_, ok := asciiSpaces[rune(tok[0])]
	return ok
}

// GraphemeSpace matches one whitespace grapheme token per GraphemeIsSpace.
func GraphemeSpace[U any]() Parser[string, U, string] {
	return Satisfy1Grapheme[U]("space", GraphemeIsSpace)
}

// Satisfy1Grapheme is GraphemeStream's counterpart to char.go's Satisfy1.
func Satisfy1Grapheme[U any](label string, pred func(string) bool) Parser[string, U, string] {
	return Label(Satisfy[string, U](graphemeDescribe, nextPosGrapheme, pred), label)
}
