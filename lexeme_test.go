package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhiteSpace_SkipsSpacesAndComments(t *testing.T) {
	tp := NewTokenParser(JavaStyleDef[struct{}]())
	p := Bind(tp.WhiteSpace(), func(struct{}) Parser[rune, struct{}, string] { return tp.Identifier() })
	v, err := runStr(p, "t", "  // line comment\n /* block */ hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestBlockComment_NestedTerminatesCorrectly(t *testing.T) {
	tp := NewTokenParser(JavaStyleDef[struct{}]())
	p := Bind(tp.WhiteSpace(), func(struct{}) Parser[rune, struct{}, struct{}] { return Eof[rune, struct{}]() })
	_, err := runStr(p, "t", "/*/* a */*/")
	assert.NoError(t, err)
}

func TestBlockComment_NonNestedStopsAtFirstEnd(t *testing.T) {
	def := JavaStyleDef[struct{}]()
	def.NestedComments = false
	tp := NewTokenParser(def)
	// A non-nested block comment stops at the first "*/", leaving the
	// trailing "*/" as unconsumed input.
	p := Bind(tp.WhiteSpace(), func(struct{}) Parser[rune, struct{}, string] { return StringTok[struct{}]("*/") })
	v, err := runStr(p, "t", "/*/* a */*/")
	require.NoError(t, err)
	assert.Equal(t, "*/", v)
}

func TestIdentifier_RejectsReservedNames(t *testing.T) {
	def := EmptyDef[struct{}]()
	def.ReservedNames = namesSet("if", "else")
	tp := NewTokenParser(def)

	v, err := runStr(tp.Identifier(), "t", "ifx")
	require.NoError(t, err)
	assert.Equal(t, "ifx", v)

	_, err2 := runStr(tp.Identifier(), "t", "if")
	assert.Error(t, err2)
}

func TestReservedName_RejectsIdentifierPrefix(t *testing.T) {
	def := EmptyDef[struct{}]()
	def.ReservedNames = namesSet("if")
	tp := NewTokenParser(def)

	_, err := runStr(tp.ReservedName("if"), "t", "ifx")
	assert.Error(t, err)

	v, err2 := runStr(tp.ReservedName("if"), "t", "if ")
	require.NoError(t, err2)
	assert.Equal(t, "if", v)
}

func TestCharacterLiteral_Escapes(t *testing.T) {
	tp := NewTokenParser(EmptyDef[struct{}]())
	cases := map[string]rune{
		`'a'`:    'a',
		`'\n'`:   '\n',
		`'\x41'`: 'A',
		`'\o101'`: 'A',
		`'\65'`:  'A',
		`'\SOH'`: 1,
		`'\^A'`:  1,
	}
	for in, want := range cases {
		v, err := runStr(tp.CharacterLiteral(), "t", in)
		require.NoError(t, err, in)
		assert.Equal(t, want, v, in)
	}
}

func TestStringLiteral_GapsAndZeroWidth(t *testing.T) {
	tp := NewTokenParser(EmptyDef[struct{}]())
	v, err := runStr(tp.StringLiteral(), "t", "\"ab\\   \\cd\"")
	require.NoError(t, err)
	assert.Equal(t, "abcd", v)

	v2, err2 := runStr(tp.StringLiteral(), "t", "\"a\\&b\"")
	require.NoError(t, err2)
	assert.Equal(t, "ab", v2)
}

func TestJSONDef_StringLiteral_SurrogatePair(t *testing.T) {
	tp := NewTokenParser(JSONDef[struct{}]())
	v, err := runStr(tp.StringLiteral(), "t", `"\uD834\uDD1E"`)
	require.NoError(t, err)
	assert.Equal(t, string(rune(0x1D11E)), v)

	_, err2 := runStr(tp.StringLiteral(), "t", `"\uD834"`)
	assert.Error(t, err2)

	v3, err3 := runStr(tp.StringLiteral(), "t", `"\u0061"`)
	require.NoError(t, err3)
	assert.Equal(t, "a", v3)
}

func TestSwiftDef_Identifier(t *testing.T) {
	tp := NewTokenParser(SwiftDef[struct{}]())

	v, err := runStr(tp.Identifier(), "t", "$0")
	require.NoError(t, err)
	assert.Equal(t, "$0", v)

	_, err2 := runStr(tp.Identifier(), "t", "$a")
	assert.Error(t, err2)

	_, err3 := runStr(tp.Identifier(), "t", "let")
	assert.Error(t, err3)

	v4, err4 := runStr(tp.Identifier(), "t", "lets")
	require.NoError(t, err4)
	assert.Equal(t, "lets", v4)
}

func TestParenthesesAndSeparators(t *testing.T) {
	tp := NewTokenParser(EmptyDef[struct{}]())
	v, err := runStr(Parentheses[struct{}, []int64](tp, CommaSep[struct{}, int64](tp, tp.Natural())), "t", "(1, 2,3)")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, v)
}
