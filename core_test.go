package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStr[A any](p Parser[rune, struct{}, A], name, input string) (A, error) {
	v, _, err := Run(p, name, NewRuneStream(input), struct{}{})
	return v, err
}

func TestReturnBind_MonadLaws(t *testing.T) {
	k := func(n int) Parser[rune, struct{}, int] { return Return[rune, struct{}, int](n * 2) }

	t.Run("left identity: return(v) >>= k == k(v)", func(t *testing.T) {
		lhs, err1 := runStr(Bind(Return[rune, struct{}, int](21), k), "t", "")
		rhs, err2 := runStr(k(21), "t", "")
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, rhs, lhs)
	})

	t.Run("right identity: p >>= return == p", func(t *testing.T) {
		p := Character[struct{}]('a')
		lhs, err1 := runStr(Bind(p, func(r rune) Parser[rune, struct{}, rune] { return Return[rune, struct{}, rune](r) }), "t", "a")
		rhs, err2 := runStr(p, "t", "a")
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, rhs, lhs)
	})

	t.Run("associativity", func(t *testing.T) {
		f := func(r rune) Parser[rune, struct{}, string] { return Return[rune, struct{}, string](string(r) + "f") }
		g := func(s string) Parser[rune, struct{}, string] { return Return[rune, struct{}, string](s + "g") }
		p := Character[struct{}]('x')

		lhs, err1 := runStr(Bind(Bind(p, f), g), "t", "x")
		rhs, err2 := runStr(Bind(p, func(r rune) Parser[rune, struct{}, string] { return Bind(f(r), g) }), "t", "x")
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, rhs, lhs)
	})
}

func TestAlt_Identity(t *testing.T) {
	p := Character[struct{}]('a')
	v, err := runStr(Alt(Empty[rune, struct{}, rune](), p), "t", "a")
	require.NoError(t, err)
	assert.Equal(t, 'a', v)

	v2, err2 := runStr(Alt(p, Empty[rune, struct{}, rune]()), "t", "a")
	require.NoError(t, err2)
	assert.Equal(t, 'a', v2)
}

func TestAlt_ConsumedFailureShortCircuits(t *testing.T) {
	// "ab" vs "ac": Character('a') then Character('b') consumes 'a' then
	// fails on 'b' vs 'c' — a Consumed failure, so the alternative never
	// runs even though it would have matched "ac".
	ab := Bind(Character[struct{}]('a'), func(rune) Parser[rune, struct{}, rune] { return Character[struct{}]('b') })
	ac := Bind(Character[struct{}]('a'), func(rune) Parser[rune, struct{}, rune] { return Character[struct{}]('c') })
	_, err := runStr(Alt(ab, ac), "t", "ac")
	assert.Error(t, err)
}

func TestAttempt_ReenablesBacktracking(t *testing.T) {
	ab := Bind(Character[struct{}]('a'), func(rune) Parser[rune, struct{}, rune] { return Character[struct{}]('b') })
	ac := Bind(Character[struct{}]('a'), func(rune) Parser[rune, struct{}, rune] { return Character[struct{}]('c') })
	v, err := runStr(Alt(Attempt(ab), ac), "t", "ac")
	require.NoError(t, err)
	assert.Equal(t, 'c', v)
}

func TestLookAhead_DoesNotConsume(t *testing.T) {
	p := LookAhead(StringTok[struct{}]("allo"))
	rest := Bind(p, func(string) Parser[rune, struct{}, string] { return StringTok[struct{}]("allo") })
	v, err := runStr(rest, "t", "allo")
	require.NoError(t, err)
	assert.Equal(t, "allo", v)
}

func TestMany_PanicsOnEmptySuccess(t *testing.T) {
	empty := Return[rune, struct{}, rune]('x')
	assert.Panics(t, func() {
		_, _ = runStr(Map(Many(empty), func([]rune) struct{} { return struct{}{} }), "t", "abc")
	})
}

func TestEof(t *testing.T) {
	_, err := runStr(Eof[rune, struct{}](), "t", "")
	assert.NoError(t, err)

	_, err2 := runStr(Eof[rune, struct{}](), "t", "x")
	assert.Error(t, err2)
}

// Scenario 5 from spec.md §8: exact error rendering.
func TestRenderError_ExactScenarios(t *testing.T) {
	_, err := runStr(OneOf[struct{}]("aeiou"), "test", "z")
	require.Error(t, err)
	assert.Equal(t, "\"test\" (line 1, column 1):\nunexpected \"z\"", err.Error())

	_, err2 := runStr(StringTok[struct{}]("allo"), "test", "all")
	require.Error(t, err2)
	assert.Equal(t, "\"test\" (line 1, column 1):\nunexpected end of input\nexpecting \"allo\"", err2.Error())
}

// Scenario 6 from spec.md §8: furthest-progress position tracking across
// Alt/choice.
func TestFurthestProgress_AcrossChoice(t *testing.T) {
	p := Bind(Spaces[struct{}](), func(struct{}) Parser[rune, struct{}, string] { return StringTok[struct{}]("allo") })
	_, err := runStr(p, "test", "\n\nall")
	require.Error(t, err)
	pe, ok := err.(ParseError)
	require.True(t, ok)
	assert.Equal(t, 3, pe.Pos.Line)
	assert.Equal(t, 1, pe.Pos.Column)
}

func TestTabAdvancesToNextStop(t *testing.T) {
	pos := NewSourcePos("t")
	pos = pos.AdvanceRune('\t')
	assert.Equal(t, 9, pos.Column)
	pos = NewSourcePos("t")
	pos.Column = 5
	pos = pos.AdvanceRune('\t')
	assert.Equal(t, 9, pos.Column)
}
