package parsec

import (
	"fmt"
	"sort"
)

// TokenParser bundles the lexeme-layer operations (spec.md §4.6) for a
// given LanguageDef: whitespace/comment skipping, identifiers, operators,
// literals, and punctuation helpers. Parameterized methods (those needing
// an extra result type parameter, which Go does not allow on methods) are
// free functions taking *TokenParser[U] as their first argument —
// Lexeme, Parentheses/Braces/Angles/Brackets, SemiSep/CommaSep.
type TokenParser[U any] struct {
	Def *LanguageDef[U]
}

// NewTokenParser builds a TokenParser over def.
func NewTokenParser[U any](def *LanguageDef[U]) *TokenParser[U] {
	return &TokenParser[U]{Def: def}
}

// Lexeme wraps p to also consume any trailing whitespace/comments: the
// single primitive every named token in this layer is built from.
func Lexeme[U, A any](tp *TokenParser[U], p Parser[rune, U, A]) Parser[rune, U, A] {
	return Bind(p, func(x A) Parser[rune, U, A] {
		return Map(tp.WhiteSpace(), func(struct{}) A { return x })
	})
}

// WhiteSpace skips zero or more simple spaces, line comments, and block
// comments, in any order/mix, per spec.md §4.6.
func (tp *TokenParser[U]) WhiteSpace() Parser[rune, U, struct{}] {
	alts := []Parser[rune, U, struct{}]{
		Map(Space[U](), func(rune) struct{} { return struct{}{} }),
	}
	if tp.Def.CommentLineStart != "" {
		alts = append(alts, tp.lineComment())
	}
	if tp.Def.CommentBlockStart != "" && tp.Def.CommentBlockEnd != "" {
		alts = append(alts, tp.blockComment())
	}
	return SkipMany(Choice(alts))
}

func (tp *TokenParser[U]) lineComment() Parser[rune, U, struct{}] {
	return Bind(Attempt(StringTok[U](tp.Def.CommentLineStart)), func(string) Parser[rune, U, struct{}] {
		return SkipMany(Satisfy[rune, U](charDescribe, nextPosRune, func(r rune) bool { return r != '\n' }))
	})
}

func (tp *TokenParser[U]) blockComment() Parser[rune, U, struct{}] {
	if tp.Def.NestedComments {
		return tp.nestedBlockComment()
	}
	return tp.nonNestedBlockComment()
}

// nonNestedBlockComment: after the opening delimiter, consume any
// characters until the closing delimiter appears.
func (tp *TokenParser[U]) nonNestedBlockComment() Parser[rune, U, struct{}] {
	startP := Attempt(StringTok[U](tp.Def.CommentBlockStart))
	endP := Attempt(StringTok[U](tp.Def.CommentBlockEnd))
	return Bind(startP, func(string) Parser[rune, U, struct{}] {
		return Map(ManyTill(AnyChar[U](), endP), func([]rune) struct{} { return struct{}{} })
	})
}

// nestedBlockComment: after opening, recursively consume (another opening
// + nested body) or a chunk of non-delimiter characters, preferring the
// closing delimiter as soon as it matches. The recursion here is bounded
// by comment nesting depth, not input length, so it is built on Recursive
// rather than the iterative repetition combinators.
func (tp *TokenParser[U]) nestedBlockComment() Parser[rune, U, struct{}] {
	startP := Attempt(StringTok[U](tp.Def.CommentBlockStart))
	boundary := tp.Def.CommentBlockStart + tp.Def.CommentBlockEnd

	body := Recursive(func(self Parser[rune, U, struct{}]) Parser[rune, U, struct{}] {
		closeHere := Map(Attempt(StringTok[U](tp.Def.CommentBlockEnd)), func(string) struct{} { return struct{}{} })
		openNested := Bind(Attempt(StringTok[U](tp.Def.CommentBlockStart)), func(string) Parser[rune, U, struct{}] { return self })
		chunk := Map(Many1(NoneOf[U](boundary)), func([]rune) struct{} { return struct{}{} })
		boundaryChar := Map(OneOf[U](boundary), func(rune) struct{} { return struct{}{} })
		step := Choice([]Parser[rune, U, struct{}]{openNested, chunk, boundaryChar})
		return Alt(closeHere, Bind(step, func(struct{}) Parser[rune, U, struct{}] { return self }))
	})

	return Bind(startP, func(string) Parser[rune, U, struct{}] { return body })
}

// --- identifiers & operators (spec.md §4.6) ---

func (tp *TokenParser[U]) ident() Parser[rune, U, string] {
	return Bind(Satisfy[rune, U](charDescribe, nextPosRune, tp.Def.IdentStart), func(first rune) Parser[rune, U, string] {
		contPred := func(r rune) bool { return tp.Def.IdentCont(first, r) }
		return Map(Many(Satisfy[rune, U](charDescribe, nextPosRune, contPred)), func(rest []rune) string {
			return string(first) + string(rest)
		})
	})
}

// Identifier parses identStart/identCont, rejecting reserved names. The
// whole thing is attempted so a reserved-word match doesn't bleed past a
// choice point as a consumed failure.
func (tp *TokenParser[U]) Identifier() Parser[rune, U, string] {
	raw := Bind(tp.ident(), func(name string) Parser[rune, U, string] {
		if tp.Def.isReservedName(name) {
			return Unexpected[rune, U, string](fmt.Sprintf("reserved word %s", name))
		}
		return Return[rune, U, string](name)
	})
	return Lexeme[U, string](tp, Attempt(raw))
}

func (tp *TokenParser[U]) caseInsensitiveChar(want rune) Parser[rune, U, rune] {
	wantFold := tp.Def.caseFold(string(want))
	return Satisfy[rune, U](charDescribe, nextPosRune, func(r rune) bool {
		return tp.Def.caseFold(string(r)) == wantFold
	})
}

// caseString matches name literally, or per-character case-insensitively
// when the language definition is case-insensitive.
func (tp *TokenParser[U]) caseString(name string) Parser[rune, U, string] {
	if tp.Def.CaseSensitive {
		return StringTok[U](name)
	}
	runes := []rune(name)
	var build func(i int) Parser[rune, U, struct{}]
	build = func(i int) Parser[rune, U, struct{}] {
		if i >= len(runes) {
			return Return[rune, U, struct{}](struct{}{})
		}
		return Bind(tp.caseInsensitiveChar(runes[i]), func(rune) Parser[rune, U, struct{}] {
			return build(i + 1)
		})
	}
	return Map(build(0), func(struct{}) string { return name })
}

// ReservedName is the lexeme caseString(name) *> noOccurence(identCont(lastChar)).
func (tp *TokenParser[U]) ReservedName(name string) Parser[rune, U, string] {
	runes := []rune(name)
	lastChar := runes[len(runes)-1]
	return Lexeme[U, string](tp, Bind(tp.caseString(name), func(string) Parser[rune, U, string] {
		guard := Satisfy[rune, U](charDescribe, nextPosRune, func(r rune) bool { return tp.Def.IdentCont(lastChar, r) })
		noOcc := NoOccurence[rune, U, rune](guard, func(r rune) string { return fmt.Sprintf("%q", string(r)) })
		return Bind(noOcc, func(struct{}) Parser[rune, U, string] { return Return[rune, U, string](name) })
	}))
}

func (tp *TokenParser[U]) operator() Parser[rune, U, string] {
	return Bind(Satisfy[rune, U](charDescribe, nextPosRune, tp.Def.OpStart), func(first rune) Parser[rune, U, string] {
		return Map(Many(Satisfy[rune, U](charDescribe, nextPosRune, tp.Def.OpCont)), func(rest []rune) string {
			return string(first) + string(rest)
		})
	})
}

// LegalOperator parses opStart/opCont, rejecting reserved operators.
func (tp *TokenParser[U]) LegalOperator() Parser[rune, U, string] {
	raw := Bind(tp.operator(), func(name string) Parser[rune, U, string] {
		if tp.Def.isReservedOperator(name) {
			return Unexpected[rune, U, string](fmt.Sprintf("reserved operator %s", name))
		}
		return Return[rune, U, string](name)
	})
	return Lexeme[U, string](tp, Attempt(raw))
}

// ReservedOperator is symbol(name) *> noOccurence(opCont), analogous to ReservedName.
func (tp *TokenParser[U]) ReservedOperator(name string) Parser[rune, U, string] {
	return Lexeme[U, string](tp, Bind(StringTok[U](name), func(string) Parser[rune, U, string] {
		guard := Satisfy[rune, U](charDescribe, nextPosRune, tp.Def.OpCont)
		noOcc := NoOccurence[rune, U, rune](guard, func(r rune) string { return fmt.Sprintf("%q", string(r)) })
		return Bind(noOcc, func(struct{}) Parser[rune, U, string] { return Return[rune, U, string](name) })
	}))
}

// --- punctuation & brackets ---

// Symbol is lexeme(literal-string s).
func (tp *TokenParser[U]) Symbol(s string) Parser[rune, U, string] {
	return Lexeme[U, string](tp, StringTok[U](s))
}

func Parentheses[U, A any](tp *TokenParser[U], p Parser[rune, U, A]) Parser[rune, U, A] {
	return Between(tp.Symbol("("), p, tp.Symbol(")"))
}
func Braces[U, A any](tp *TokenParser[U], p Parser[rune, U, A]) Parser[rune, U, A] {
	return Between(tp.Symbol("{"), p, tp.Symbol("}"))
}
func Angles[U, A any](tp *TokenParser[U], p Parser[rune, U, A]) Parser[rune, U, A] {
	return Between(tp.Symbol("<"), p, tp.Symbol(">"))
}
func Brackets[U, A any](tp *TokenParser[U], p Parser[rune, U, A]) Parser[rune, U, A] {
	return Between(tp.Symbol("["), p, tp.Symbol("]"))
}

func (tp *TokenParser[U]) Semi() Parser[rune, U, string]  { return tp.Symbol(";") }
func (tp *TokenParser[U]) Comma() Parser[rune, U, string] { return tp.Symbol(",") }
func (tp *TokenParser[U]) Colon() Parser[rune, U, string] { return tp.Symbol(":") }
func (tp *TokenParser[U]) Dot() Parser[rune, U, string]   { return tp.Symbol(".") }

func SemiSep[U, A any](tp *TokenParser[U], p Parser[rune, U, A]) Parser[rune, U, []A] {
	return SepBy(p, tp.Semi())
}
func SemiSep1[U, A any](tp *TokenParser[U], p Parser[rune, U, A]) Parser[rune, U, []A] {
	return SepBy1(p, tp.Semi())
}
func CommaSep[U, A any](tp *TokenParser[U], p Parser[rune, U, A]) Parser[rune, U, []A] {
	return SepBy(p, tp.Comma())
}
func CommaSep1[U, A any](tp *TokenParser[U], p Parser[rune, U, A]) Parser[rune, U, []A] {
	return SepBy1(p, tp.Comma())
}

// --- character / string literal escapes (spec.md §4.6) ---

func (tp *TokenParser[U]) escapeParser() Parser[rune, U, rune] {
	if tp.Def.CustomEscape != nil {
		return tp.Def.CustomEscape()
	}
	return defaultEscape[U]()
}

var namedEscapes = map[rune]rune{
	'n': '\n', 'r': '\r', 't': '\t', '\\': '\\', '"': '"', '\'': '\'',
	'a': '\a', 'b': '\b', 'f': '\f', 'v': '\v',
}

const namedEscapeKeys = "nrtab\\\"'fv"

func namedEscapeParser[U any]() Parser[rune, U, rune] {
	return Map(OneOf[U](namedEscapeKeys), func(r rune) rune { return namedEscapes[r] })
}

type asciiMnemonic struct {
	Name string
	Code rune
}

// asciiMnemonics is the classic ASCII control-code name table (spec.md
// §4.6's "\NUL, \SOH, …, \DEL").
var asciiMnemonics = []asciiMnemonic{
	{"NUL", 0}, {"SOH", 1}, {"STX", 2}, {"ETX", 3}, {"EOT", 4}, {"ENQ", 5},
	{"ACK", 6}, {"BEL", 7}, {"BS", 8}, {"HT", 9}, {"LF", 10}, {"VT", 11},
	{"FF", 12}, {"CR", 13}, {"SO", 14}, {"SI", 15}, {"DLE", 16}, {"DC1", 17},
	{"DC2", 18}, {"DC3", 19}, {"DC4", 20}, {"NAK", 21}, {"SYN", 22}, {"ETB", 23},
	{"CAN", 24}, {"EM", 25}, {"SUB", 26}, {"ESC", 27}, {"FS", 28}, {"GS", 29},
	{"RS", 30}, {"US", 31}, {"SP", 32}, {"DEL", 127},
}

func sortedAsciiMnemonics() []asciiMnemonic {
	out := append([]asciiMnemonic{}, asciiMnemonics...)
	// Longest name first: "SOH" must be tried before "SO" or the latter
	// would match and strand a trailing "H".
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Name) > len(out[j].Name) })
	return out
}

func asciiMnemonicParser[U any]() Parser[rune, U, rune] {
	ordered := sortedAsciiMnemonics()
	parsers := make([]Parser[rune, U, rune], len(ordered))
	for i, e := range ordered {
		code := e.Code
		parsers[i] = Map(Attempt(StringTok[U](e.Name)), func(string) rune { return code })
	}
	return Choice(parsers)
}

// caretControlParser matches \^@ .. \^_ per spec.md §4.6.
func caretControlParser[U any]() Parser[rune, U, rune] {
	return Bind(Character[U]('^'), func(rune) Parser[rune, U, rune] {
		return Map(Satisfy1[U]("control character", func(r rune) bool { return r >= '@' && r <= '_' }), func(r rune) rune {
			return r - '@'
		})
	})
}

func numberEscape[U any](digits Parser[rune, U, []rune], base int64) Parser[rune, U, rune] {
	return Bind(digitsToInt[U](digits, base), func(v int64) Parser[rune, U, rune] {
		return validateCodepoint[U](v)
	})
}

func validateCodepoint[U any](v int64) Parser[rune, U, rune] {
	if v < 0 || v > 0x10FFFF || (v >= 0xD800 && v <= 0xDFFF) {
		return Fail[rune, U, rune]("escape value out of range")
	}
	return Return[rune, U, rune](rune(v))
}

// defaultEscape implements the full escape table: named sequences, numeric
// decimal/hex/octal, ASCII mnemonics, and caret controls.
func defaultEscape[U any]() Parser[rune, U, rune] {
	return Bind(Character[U]('\\'), func(rune) Parser[rune, U, rune] { return escapeBody[U]() })
}

func escapeBody[U any]() Parser[rune, U, rune] {
	named := namedEscapeParser[U]()
	numHex := Bind(Character[U]('x'), func(rune) Parser[rune, U, rune] {
		return numberEscape[U](Many1(HexDigitChar[U]()), 16)
	})
	numOct := Bind(Character[U]('o'), func(rune) Parser[rune, U, rune] {
		return numberEscape[U](Many1(OctDigitChar[U]()), 8)
	})
	numDec := numberEscape[U](Many1(DigitChar[U]()), 10)
	mnemonic := asciiMnemonicParser[U]()
	caret := caretControlParser[U]()
	return Choice([]Parser[rune, U, rune]{named, numHex, numOct, numDec, mnemonic, caret})
}

// jsonEscape overrides the default table per spec.md §6: \" \\ \/ \b \f \n
// \r \t \uHHHH, with surrogate-pair combining.
func jsonEscape[U any]() Parser[rune, U, rune] {
	return Bind(Character[U]('\\'), func(rune) Parser[rune, U, rune] { return jsonEscapeBody[U]() })
}

var jsonSimpleEscapes = map[rune]rune{'"': '"', '\\': '\\', '/': '/', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t'}

const jsonSimpleEscapeKeys = "\"\\/bfnrt"

func jsonEscapeBody[U any]() Parser[rune, U, rune] {
	simpleP := Map(OneOf[U](jsonSimpleEscapeKeys), func(r rune) rune { return jsonSimpleEscapes[r] })
	unicodeP := Bind(Character[U]('u'), func(rune) Parser[rune, U, rune] { return jsonUnicodeEscape[U]() })
	return Alt(simpleP, unicodeP)
}

func jsonHex4[U any]() Parser[rune, U, int64] {
	return Map(Count(4, HexDigitChar[U]()), func(ds []rune) int64 { return parseBaseDigits(ds, 16) })
}

func jsonUnicodeEscape[U any]() Parser[rune, U, rune] {
	return Bind(jsonHex4[U](), func(hi int64) Parser[rune, U, rune] {
		if hi >= 0xD800 && hi <= 0xDBFF {
			return Bind(StringTok[U]("\\u"), func(string) Parser[rune, U, rune] {
				return Bind(jsonHex4[U](), func(lo int64) Parser[rune, U, rune] {
					if lo < 0xDC00 || lo > 0xDFFF {
						return Fail[rune, U, rune]("invalid low surrogate in unicode escape")
					}
					combined := 0x10000 + (hi-0xD800)*0x400 + (lo - 0xDC00)
					return Return[rune, U, rune](rune(combined))
				})
			})
		}
		if hi >= 0xDC00 && hi <= 0xDFFF {
			return Fail[rune, U, rune]("unpaired low surrogate in unicode escape")
		}
		return Return[rune, U, rune](rune(hi))
	})
}

// swiftEscape overrides the default table per spec.md §6: \n \r \t \\ \"
// \' \0 \u{H…}.
func swiftEscape[U any]() Parser[rune, U, rune] {
	return Bind(Character[U]('\\'), func(rune) Parser[rune, U, rune] { return swiftEscapeBody[U]() })
}

var swiftSimpleEscapes = map[rune]rune{'n': '\n', 'r': '\r', 't': '\t', '\\': '\\', '"': '"', '\'': '\'', '0': 0}

const swiftSimpleEscapeKeys = "nrt\\\"'0"

func swiftEscapeBody[U any]() Parser[rune, U, rune] {
	simpleP := Map(OneOf[U](swiftSimpleEscapeKeys), func(r rune) rune { return swiftSimpleEscapes[r] })
	unicodeP := Bind(Character[U]('u'), func(rune) Parser[rune, U, rune] {
		return Between(
			Character[U]('{'),
			Bind(Many1(HexDigitChar[U]()), func(ds []rune) Parser[rune, U, rune] {
				return validateCodepoint[U](parseBaseDigits(ds, 16))
			}),
			Character[U]('}'),
		)
	})
	return Alt(simpleP, unicodeP)
}

// CharacterLiteral parses 'x' where x is a non-quote, non-backslash source
// character or a backslash escape.
func (tp *TokenParser[U]) CharacterLiteral() Parser[rune, U, rune] {
	plain := Satisfy[rune, U](charDescribe, nextPosRune, func(r rune) bool { return r != '\'' && r != '\\' })
	body := Alt(tp.escapeParser(), plain)
	return Lexeme[U, rune](tp, Between(Character[U]('\''), body, Character[U]('\'')))
}

// stringChar parses one contributing string-literal character, a string
// gap, or a zero-width escape — the latter two contribute nothing
// (represented as a nil *rune).
func (tp *TokenParser[U]) stringChar() Parser[rune, U, *rune] {
	plain := Map(Satisfy[rune, U](charDescribe, nextPosRune, func(r rune) bool { return r != '"' && r != '\\' }), func(r rune) *rune { return &r })
	empty := Map(StringTok[U]("\\&"), func(string) *rune { return nil })
	gap := Map(Bind(Character[U]('\\'), func(rune) Parser[rune, U, struct{}] {
		return Bind(Many1(Space[U]()), func([]rune) Parser[rune, U, struct{}] {
			return Map(Character[U]('\\'), func(rune) struct{} { return struct{}{} })
		})
	}), func(struct{}) *rune { return nil })
	escaped := Map(tp.escapeParser(), func(r rune) *rune { return &r })
	return Choice([]Parser[rune, U, *rune]{plain, Attempt(empty), Attempt(gap), escaped})
}

// StringLiteral parses "..." with the same escapes as CharacterLiteral,
// plus string gaps and zero-width escapes that contribute nothing.
func (tp *TokenParser[U]) StringLiteral() Parser[rune, U, string] {
	body := Map(Many(tp.stringChar()), func(ptrs []*rune) string {
		var rs []rune
		for _, p := range ptrs {
			if p != nil {
				rs = append(rs, *p)
			}
		}
		return string(rs)
	})
	return Lexeme[U, string](tp, Between(Character[U]('"'), body, Character[U]('"')))
}
