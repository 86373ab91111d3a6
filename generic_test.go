package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoice(t *testing.T) {
	p := Choice([]Parser[rune, struct{}, rune]{
		Character[struct{}]('a'),
		Character[struct{}]('b'),
		Character[struct{}]('c'),
	})
	for _, in := range []string{"a", "b", "c"} {
		v, err := runStr(p, "t", in)
		require.NoError(t, err)
		assert.Equal(t, rune(in[0]), v)
	}
	_, err := runStr(p, "t", "d")
	assert.Error(t, err)
}

func TestBetween(t *testing.T) {
	p := Between(Character[struct{}]('('), DigitChar[struct{}](), Character[struct{}](')'))
	v, err := runStr(p, "t", "(5)")
	require.NoError(t, err)
	assert.Equal(t, '5', v)
}

func TestOptionOptional(t *testing.T) {
	v, err := runStr(Option(DigitChar[struct{}](), 'x'), "t", "a")
	require.NoError(t, err)
	assert.Equal(t, 'x', v)

	v2, err2 := runStr(Optional(DigitChar[struct{}]()), "t", "5")
	require.NoError(t, err2)
	require.NotNil(t, v2)
	assert.Equal(t, '5', *v2)

	v3, err3 := runStr(Optional(DigitChar[struct{}]()), "t", "a")
	require.NoError(t, err3)
	assert.Nil(t, v3)
}

func TestSepBy(t *testing.T) {
	p := SepBy(DigitChar[struct{}](), Character[struct{}](','))
	v, err := runStr(p, "t", "1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []rune{'1', '2', '3'}, v)

	v2, err2 := runStr(SepBy(DigitChar[struct{}](), Character[struct{}](',')), "t", "")
	require.NoError(t, err2)
	assert.Nil(t, v2)
}

func TestSepEndBy(t *testing.T) {
	p := SepEndBy(DigitChar[struct{}](), Character[struct{}](';'), false)
	v, err := runStr(p, "t", "1;2;3;")
	require.NoError(t, err)
	assert.Equal(t, []rune{'1', '2', '3'}, v)

	v2, err2 := runStr(p, "t", "1;2;3")
	require.NoError(t, err2)
	assert.Equal(t, []rune{'1', '2', '3'}, v2)
}

func TestCount(t *testing.T) {
	v, err := runStr(Count(3, DigitChar[struct{}]()), "t", "123abc")
	require.NoError(t, err)
	assert.Equal(t, []rune{'1', '2', '3'}, v)

	_, err2 := runStr(Count(4, DigitChar[struct{}]()), "t", "123")
	assert.Error(t, err2)

	v3, err3 := runStr(Count(0, DigitChar[struct{}]()), "t", "abc")
	require.NoError(t, err3)
	assert.Nil(t, v3)
}

func sumFold(a, b int) int { return a + b }

func TestChainL1(t *testing.T) {
	digit := Map(DigitChar[struct{}](), func(r rune) int { return int(r - '0') })
	plus := Map(Character[struct{}]('+'), func(rune) func(int, int) int { return sumFold })
	v, err := runStr(ChainL1(digit, plus), "t", "1+2+3")
	require.NoError(t, err)
	assert.Equal(t, 6, v)
}

func TestChainR1_RightAssociative(t *testing.T) {
	digit := Map(DigitChar[struct{}](), func(r rune) int { return int(r - '0') })
	// subtraction, right-associative: 9-5-2 as 9-(5-2) = 6
	minus := Map(Character[struct{}]('-'), func(rune) func(int, int) int {
		return func(a, b int) int { return a - b }
	})
	v, err := runStr(ChainR1(digit, minus), "t", "9-5-2")
	require.NoError(t, err)
	assert.Equal(t, 6, v)
}

func TestManyTill(t *testing.T) {
	p := ManyTill(AnyChar[struct{}](), Attempt(StringTok[struct{}]("END")))
	v, err := runStr(p, "t", "helloEND")
	require.NoError(t, err)
	assert.Equal(t, []rune("hello"), v)

	_, err2 := runStr(p, "t", "hello")
	assert.Error(t, err2)
}

func TestNoOccurence(t *testing.T) {
	p := NoOccurence[rune, struct{}, rune](DigitChar[struct{}](), func(r rune) string { return string(r) })
	_, err := runStr(p, "t", "a")
	assert.NoError(t, err)

	_, err2 := runStr(p, "t", "5")
	assert.Error(t, err2)
}

func TestRecursive_Parentheses(t *testing.T) {
	// A fully-parenthesized digit: "5", "(5)", "((5))", ...
	p := Recursive(func(self Parser[rune, struct{}, rune]) Parser[rune, struct{}, rune] {
		return Alt(DigitChar[struct{}](), Between(Character[struct{}]('('), self, Character[struct{}](')')))
	})
	for _, in := range []string{"5", "(5)", "((5))", "(((5)))"} {
		v, err := runStr(p, "t", in)
		require.NoError(t, err, in)
		assert.Equal(t, '5', v)
	}
}
