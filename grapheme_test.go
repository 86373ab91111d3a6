package parsec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGrapheme[A any](p Parser[string, struct{}, A], input string) (A, error) {
	v, _, err := Run(p, "t", NewGraphemeStream(input), struct{}{})
	return v, err
}

// A composed "\r\n" is one grapheme cluster, so GraphemeCRLF must accept it
// as a single token, not as two runes the way CRLF over a runeStream would.
func TestGraphemeCRLF_ComposedClusterIsOneToken(t *testing.T) {
	v, err := runGrapheme(GraphemeCRLF[struct{}](), "\r\n")
	require.NoError(t, err)
	assert.Equal(t, "\n", v)
}

func TestGraphemeEndOfLine_LoneNewlineAccepted(t *testing.T) {
	// A plain "\n" alone is matched by the newline arm of end-of-line. (The
	// separate "\r" + "\n" branch of GraphemeCRLF is not reached here: uniseg
	// always glues "\r\n" into one cluster.)
	v, err := runGrapheme(GraphemeEndOfLine[struct{}](), "\n")
	require.NoError(t, err)
	assert.Equal(t, "\n", v)
}

func TestGraphemeEndOfLine_ConsumesComposedClusterWhole(t *testing.T) {
	p := Bind(GraphemeEndOfLine[struct{}](), func(string) Parser[string, struct{}, struct{}] { return Eof[string, struct{}]() })
	_, err := runGrapheme(p, "\r\n")
	assert.NoError(t, err)
}

func TestGraphemeIsSpace_TreatsComposedCRLFAsSpace(t *testing.T) {
	assert.True(t, GraphemeIsSpace("\r\n"))
	assert.True(t, GraphemeIsSpace(" "))
	assert.True(t, GraphemeIsSpace("\t"))
	assert.False(t, GraphemeIsSpace("a"))
}

func TestGraphemeSpace_MatchesComposedClusterAsSingleToken(t *testing.T) {
	p := Bind(GraphemeSpace[struct{}](), func(string) Parser[string, struct{}, struct{}] { return Eof[string, struct{}]() })
	_, err := runGrapheme(p, "\r\n")
	assert.NoError(t, err)

	_, err2 := runGrapheme(p, "x")
	assert.Error(t, err2)
}

// Over the plain rune stream, "\r\n" is two separate tokens: CRLF still
// matches (it has its own separate-token fallback), but a bare newline
// parser positioned at the very start fails since '\r' isn't '\n'.
func TestRuneStream_CRLFIsTwoRunesNotOneToken(t *testing.T) {
	_, err := runStr(Character[struct{}]('\n'), "t", "\r\n")
	assert.Error(t, err)

	v, err2 := runStr(CRLF[struct{}](), "t", "\r\n")
	require.NoError(t, err2)
	assert.Equal(t, '\n', v)
}
