package parsec

import (
	"fmt"
	"unicode"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// LanguageDef is the configuration bundle parameterizing the lexeme layer:
// comment syntax, identifier/operator character classes, reserved sets,
// case sensitivity, and (optionally) a custom escape-sequence parser for
// character/string literals.
type LanguageDef[U any] struct {
	CommentLineStart  string
	CommentBlockStart string
	CommentBlockEnd   string
	NestedComments    bool

	IdentStart func(rune) bool
	IdentCont  func(first rune, r rune) bool
	OpStart    func(rune) bool
	OpCont     func(rune) bool

	ReservedNames     map[string]struct{}
	ReservedOperators map[string]struct{}

	CaseSensitive bool

	// CustomEscape, if set, replaces the default escape-sequence parser
	// for character and string literals entirely (as JSON and Swift do).
	CustomEscape func() Parser[rune, U, rune]

	caseFolder cases.Caser
}

func isIdentStartDefault(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentContDefault(_ rune, r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

const defaultOpChars = ":!#$%&*+./<=>?@\\^|-~"

func classFromSet(set string) func(rune) bool {
	m := runeSet(set)
	return func(r rune) bool { _, ok := m[r]; return ok }
}

// EmptyDef is the minimal language definition: no comments, case-sensitive,
// identifiers are letter|_ followed by alphanumeric|_, operators drawn from
// the symbol-character alphabet, no reserved words.
func EmptyDef[U any]() *LanguageDef[U] {
	d := &LanguageDef[U]{
		IdentStart:        isIdentStartDefault,
		IdentCont:         isIdentContDefault,
		OpStart:           classFromSet(defaultOpChars),
		OpCont:            classFromSet(defaultOpChars),
		ReservedNames:     map[string]struct{}{},
		ReservedOperators: map[string]struct{}{},
		CaseSensitive:     true,
	}
	d.caseFolder = cases.Fold()
	return d
}

func namesSet(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// JavaStyleDef is EmptyDef plus `/* */` nested block comments and `//` line
// comments.
func JavaStyleDef[U any]() *LanguageDef[U] {
	d := EmptyDef[U]()
	d.CommentLineStart = "//"
	d.CommentBlockStart = "/*"
	d.CommentBlockEnd = "*/"
	d.NestedComments = true
	return d
}

// JSONDef is EmptyDef with JSON's character-escape override.
func JSONDef[U any]() *LanguageDef[U] {
	d := EmptyDef[U]()
	d.CustomEscape = jsonEscape[U]
	return d
}

var swiftIdentStartRanges = []*unicode.RangeTable{
	unicode.L, // letters, covering the bulk of Swift's identifier-head ranges
}

func isSwiftIdentStart(r rune) bool {
	return unicode.IsOneOf(swiftIdentStartRanges, r) || r == '_'
}

func isSwiftIdentCont(_ rune, r rune) bool {
	return unicode.IsOneOf(swiftIdentStartRanges, r) || unicode.IsDigit(r) || r == '_'
}

var swiftReservedNames = namesSet(
	"class", "deinit", "enum", "extension", "func", "import", "init",
	"internal", "let", "operator", "private", "protocol", "public",
	"static", "struct", "subscript", "typealias", "var",
	"break", "case", "continue", "default", "do", "else", "fallthrough",
	"for", "if", "in", "return", "switch", "where", "while",
	"as", "dynamicType", "false", "is", "nil", "self", "Self", "super",
	"true", "__COLUMN__", "__FILE__", "__FUNCTION__", "__LINE__",
	"associativity", "didSet", "get", "infix", "inout", "left",
	"mutating", "none", "nonmutating", "optional", "override", "postfix",
	"precedence", "prefix", "Protocol", "required", "right", "set",
	"Type", "unowned", "weak", "willSet",
)

var swiftReservedOperators = namesSet("=", "->", ".", ",", ":", "@", "#", "<", "&", "`", "?", ">", "!")

const swiftOpChars = "/=-+!*%<>&|^~?"

// SwiftDef approximates the Swift 2.x lexical definition: a wide
// identifier-head/tail class, `$<digits>` implicit-parameter identifiers
// (handled in lexeme.go's identifier logic via IdentStart accepting '$'),
// Swift's operator alphabet and reserved-operator set, the Swift 2 keyword
// set, and `\u{H…}`-style unicode escapes.
func SwiftDef[U any]() *LanguageDef[U] {
	d := EmptyDef[U]()
	d.CommentLineStart = "//"
	d.CommentBlockStart = "/*"
	d.CommentBlockEnd = "*/"
	d.NestedComments = true
	d.IdentStart = func(r rune) bool { return isSwiftIdentStart(r) || r == '$' }
	d.IdentCont = func(first rune, r rune) bool {
		if first == '$' {
			return unicode.IsDigit(r)
		}
		return isSwiftIdentCont(first, r)
	}
	d.OpStart = classFromSet(swiftOpChars)
	d.OpCont = classFromSet(swiftOpChars)
	d.ReservedNames = swiftReservedNames
	d.ReservedOperators = swiftReservedOperators
	d.CustomEscape = swiftEscape[U]
	return d
}

// rawLanguageDef is the YAML wire shape for LoadLanguageDef: scalar
// comment/case-sensitivity fields plus character-set strings in place of
// Go predicates, since predicates cannot round-trip through YAML.
type rawLanguageDef struct {
	CommentLineStart  string   `yaml:"commentLineStart"`
	CommentBlockStart string   `yaml:"commentBlockStart"`
	CommentBlockEnd   string   `yaml:"commentBlockEnd"`
	NestedComments    bool     `yaml:"nestedComments"`
	IdentStartSet     string   `yaml:"identStartSet"`
	IdentContSet      string   `yaml:"identContSet"`
	IdentStartLetter  bool     `yaml:"identStartLetter"`
	IdentContAlnum    bool     `yaml:"identContAlnum"`
	OpChars           string   `yaml:"opChars"`
	ReservedNames     []string `yaml:"reservedNames"`
	ReservedOperators []string `yaml:"reservedOperators"`
	CaseSensitive     bool     `yaml:"caseSensitive"`
}

// LoadLanguageDef parses a YAML document describing comment delimiters,
// identifier/operator character sets, reserved words/operators, and case
// sensitivity, for hosts that would rather configure the lexeme layer data
// rather than code. The escape parser is always the default; custom
// escapes (JSON/Swift) are not representable in the YAML shape and must be
// set on the returned value by the caller if needed.
func LoadLanguageDef[U any](doc []byte) (*LanguageDef[U], error) {
	var raw rawLanguageDef
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("parsec: decoding language definition: %w", err)
	}

	d := EmptyDef[U]()
	d.CommentLineStart = raw.CommentLineStart
	d.CommentBlockStart = raw.CommentBlockStart
	d.CommentBlockEnd = raw.CommentBlockEnd
	d.NestedComments = raw.NestedComments
	d.CaseSensitive = raw.CaseSensitive
	d.ReservedNames = namesSet(raw.ReservedNames...)
	d.ReservedOperators = namesSet(raw.ReservedOperators...)

	if raw.IdentStartSet != "" {
		d.IdentStart = classFromSet(raw.IdentStartSet)
	} else if raw.IdentStartLetter {
		d.IdentStart = isIdentStartDefault
	}
	if raw.IdentContSet != "" {
		set := classFromSet(raw.IdentContSet)
		d.IdentCont = func(_ rune, r rune) bool { return set(r) }
	} else if raw.IdentContAlnum {
		d.IdentCont = isIdentContDefault
	}
	if raw.OpChars != "" {
		d.OpStart = classFromSet(raw.OpChars)
		d.OpCont = classFromSet(raw.OpChars)
	}

	return d, nil
}

// caseFold normalizes s for a case-insensitive reserved-word/operator
// comparison, using Unicode-correct folding (golang.org/x/text/cases)
// rather than strings.ToLower.
func (d *LanguageDef[U]) caseFold(s string) string {
	return d.caseFolder.String(s)
}

func (d *LanguageDef[U]) isReservedName(name string) bool {
	key := name
	if !d.CaseSensitive {
		key = d.caseFold(name)
	}
	for n := range d.ReservedNames {
		candidate := n
		if !d.CaseSensitive {
			candidate = d.caseFold(n)
		}
		if candidate == key {
			return true
		}
	}
	return false
}

func (d *LanguageDef[U]) isReservedOperator(op string) bool {
	_, ok := d.ReservedOperators[op]
	return ok
}
