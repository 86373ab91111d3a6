package parsec

// Token builds a single-token consumer. describe renders a token for error
// messages, nextPos advances the source position given the consumed token
// and the remaining stream (so the same primitive serves character
// streams, grapheme streams, or any other token stream), and match
// projects the popped token to a result, reporting whether it was
// accepted.
//
// On empty input it fails Empty(SystemUnexpected("")). On a token that
// match rejects, it fails Empty(SystemUnexpected(describe(tok))) without
// consuming. On acceptance it succeeds Consumed(Ok(result, ...)).
func Token[Tok, U, A any](
	describe func(Tok) string,
	nextPos func(pos SourcePos, tok Tok, rest Stream[Tok]) SourcePos,
	match func(Tok) (A, bool),
) Parser[Tok, U, A] {
	return func(s State[Tok, U]) Consumed[Tok, U, A] {
		tok, rest, ok := s.Input.Uncons()
		if !ok {
			return EmptyReply(ErrReply[Tok, U, A](NewError(s.Pos, Message{Kind: SystemUnexpected, Text: ""})))
		}

		v, matched := match(tok)
		if !matched {
			return EmptyReply(ErrReply[Tok, U, A](NewError(s.Pos, Message{Kind: SystemUnexpected, Text: describe(tok)})))
		}

		newPos := nextPos(s.Pos, tok, rest)
		newState := State[Tok, U]{Input: rest, Pos: newPos, User: s.User}
		return ConsumedReply(OkReply[Tok, U, A](v, newState, NewUnknownError(newPos)))
	}
}

// Tokens builds a consumer for a fixed sequence of tokens, draining
// expected from the input one element at a time. describe renders any
// prefix of the sequence (used both for what-was-seen and what-was-wanted
// messages), nextPos advances the position across the whole matched
// sequence, and eq compares tokens for equality.
//
// On the first mismatch or premature end of input, the envelope is Empty
// iff no element had yet been consumed (the very first token), Consumed
// otherwise; the error carries SystemUnexpected(describe(seen)) plus
// Expected(describe(expected)). On a full match it succeeds
// Consumed(Ok(expected, ...)).
func Tokens[Tok, U any](
	describe func([]Tok) string,
	nextPos func(pos SourcePos, seq []Tok) SourcePos,
	eq func(a, b Tok) bool,
	expected []Tok,
) Parser[Tok, U, []Tok] {
	return func(s State[Tok, U]) Consumed[Tok, U, []Tok] {
		cur := s.Input
		for i, want := range expected {
			tok, rest, ok := cur.Uncons()

			var seenText string
			mismatch := false
			atEnd := false
			if !ok {
				mismatch = true
				atEnd = true
			} else if !eq(tok, want) {
				seenText = describe(append(append([]Tok{}, expected[:i]...), tok))
				mismatch = true
			}

			if mismatch {
				text := seenText
				if atEnd {
					text = ""
				}
				err := NewError(s.Pos, Message{Kind: SystemUnexpected, Text: text})
				err = err.AddMessage(Message{Kind: Expected, Text: describe(expected)})
				if i == 0 {
					return EmptyReply(ErrReply[Tok, U, []Tok](err))
				}
				return ConsumedReply(ErrReply[Tok, U, []Tok](err))
			}

			cur = rest
		}

		newPos := nextPos(s.Pos, expected)
		newState := State[Tok, U]{Input: cur, Pos: newPos, User: s.User}
		return ConsumedReply(OkReply[Tok, U, []Tok](expected, newState, NewUnknownError(newPos)))
	}
}

// Satisfy builds a single-token consumer accepting any token for which
// pred returns true, describing a rejected token with describe.
func Satisfy[Tok, U any](
	describe func(Tok) string,
	nextPos func(pos SourcePos, tok Tok, rest Stream[Tok]) SourcePos,
	pred func(Tok) bool,
) Parser[Tok, U, Tok] {
	return Token[Tok, U, Tok](describe, nextPos, func(t Tok) (Tok, bool) {
		return t, pred(t)
	})
}

// AnyToken accepts and returns whatever token is under the cursor.
func AnyToken[Tok, U any](describe func(Tok) string, nextPos func(pos SourcePos, tok Tok, rest Stream[Tok]) SourcePos) Parser[Tok, U, Tok] {
	return Satisfy[Tok, U](describe, nextPos, func(Tok) bool { return true })
}

// Eof succeeds with no value iff the input is exhausted, and never
// consumes.
func Eof[Tok, U any]() Parser[Tok, U, struct{}] {
	return func(s State[Tok, U]) Consumed[Tok, U, struct{}] {
		if _, _, ok := s.Input.Uncons(); ok {
			return EmptyReply(ErrReply[Tok, U, struct{}](NewError(s.Pos, Message{Kind: Expected, Text: "end of input"})))
		}
		return EmptyReply(OkReply[Tok, U, struct{}](struct{}{}, s, NewUnknownError(s.Pos)))
	}
}
