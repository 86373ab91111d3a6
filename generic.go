package parsec

// rewrapConsumed wraps r as Consumed when consumed is true, Empty
// otherwise — the shared helper every iterative combinator below uses to
// report its own consumed-ness without going through a second parser call.
func rewrapConsumed[Tok, U, A any](consumed bool, r Reply[Tok, U, A]) Consumed[Tok, U, A] {
	if consumed {
		return ConsumedReply(r)
	}
	return EmptyReply(r)
}

// Choice folds Alt over ps, left to right, with Empty as the identity for
// a nil/empty slice.
func Choice[Tok, U, A any](ps []Parser[Tok, U, A]) Parser[Tok, U, A] {
	if len(ps) == 0 {
		return Empty[Tok, U, A]()
	}
	result := ps[0]
	for _, p := range ps[1:] {
		result = Alt(result, p)
	}
	return result
}

// Between parses open, then p, then close, discarding open/close's values.
func Between[Tok, U, O, A, C any](open Parser[Tok, U, O], p Parser[Tok, U, A], close Parser[Tok, U, C]) Parser[Tok, U, A] {
	return Bind(open, func(O) Parser[Tok, U, A] {
		return Bind(p, func(x A) Parser[Tok, U, A] {
			return Bind(close, func(C) Parser[Tok, U, A] {
				return Return[Tok, U, A](x)
			})
		})
	})
}

// Option runs p, falling back to def if p fails without consuming.
func Option[Tok, U, A any](p Parser[Tok, U, A], def A) Parser[Tok, U, A] {
	return Alt(p, Return[Tok, U, A](def))
}

// Optional lifts p to report whether it matched, via a *A (nil = no
// match), without consuming on failure.
func Optional[Tok, U, A any](p Parser[Tok, U, A]) Parser[Tok, U, *A] {
	some := Map(p, func(a A) *A { return &a })
	return Alt(some, Return[Tok, U, *A](nil))
}

// Many1 requires at least one occurrence of p, then behaves like Many.
func Many1[Tok, U, A any](p Parser[Tok, U, A]) Parser[Tok, U, []A] {
	return Bind(p, func(head A) Parser[Tok, U, []A] {
		return Map(Many(p), func(tail []A) []A {
			out := make([]A, 0, len(tail)+1)
			out = append(out, head)
			return append(out, tail...)
		})
	})
}

// SepBy1 parses p, separated by sep, requiring at least one p.
func SepBy1[Tok, U, A, S any](p Parser[Tok, U, A], sep Parser[Tok, U, S]) Parser[Tok, U, []A] {
	return Bind(p, func(head A) Parser[Tok, U, []A] {
		return Map(Many(Bind(sep, func(S) Parser[Tok, U, A] { return p })), func(tail []A) []A {
			out := make([]A, 0, len(tail)+1)
			out = append(out, head)
			return append(out, tail...)
		})
	})
}

// SepBy parses zero or more occurrences of p separated by sep.
func SepBy[Tok, U, A, S any](p Parser[Tok, U, A], sep Parser[Tok, U, S]) Parser[Tok, U, []A] {
	return Alt(SepBy1(p, sep), Return[Tok, U, []A](nil))
}

// SepEndBy1 parses one or more occurrences of p, each optionally followed
// by sep; a trailing sep with no following p is accepted gracefully.
func SepEndBy1[Tok, U, A, S any](p Parser[Tok, U, A], sep Parser[Tok, U, S]) Parser[Tok, U, []A] {
	return Bind(p, func(x A) Parser[Tok, U, []A] {
		more := Bind(sep, func(S) Parser[Tok, U, []A] {
			return Map(SepEndBy(p, sep, false), func(xs []A) []A {
				out := make([]A, 0, len(xs)+1)
				out = append(out, x)
				return append(out, xs...)
			})
		})
		return Alt(more, Return[Tok, U, []A]([]A{x}))
	})
}

// SepEndBy parses occurrences of p separated (and optionally terminated)
// by sep. When endRequired is true, every occurrence must be followed by
// sep (equivalent to Many(p <* sep)); otherwise sep is optional per item,
// with a graceful tail per SepEndBy1.
func SepEndBy[Tok, U, A, S any](p Parser[Tok, U, A], sep Parser[Tok, U, S], endRequired bool) Parser[Tok, U, []A] {
	if endRequired {
		return Many(Bind(p, func(x A) Parser[Tok, U, A] {
			return Bind(sep, func(S) Parser[Tok, U, A] { return Return[Tok, U, A](x) })
		}))
	}
	return Alt(SepEndBy1(p, sep), Return[Tok, U, []A](nil))
}

// Count runs p exactly n times, returning an empty slice for n <= 0.
func Count[Tok, U, A any](n int, p Parser[Tok, U, A]) Parser[Tok, U, []A] {
	if n <= 0 {
		return Return[Tok, U, []A](nil)
	}
	return func(s State[Tok, U]) Consumed[Tok, U, []A] {
		acc := make([]A, 0, n)
		cur := s
		consumedAny := false
		for i := 0; i < n; i++ {
			c := p(cur)
			if c.consumed {
				consumedAny = true
			}
			r := c.Reply
			if !r.ok {
				return rewrapConsumed(consumedAny, ErrReply[Tok, U, []A](r.Err))
			}
			acc = append(acc, r.Value)
			cur = r.State
		}
		return rewrapConsumed(consumedAny, OkReply[Tok, U, []A](acc, cur, NewUnknownError(cur.Pos)))
	}
}

// ChainL1 parses `p (op p)*`, folding left-associatively: it is the
// idiomatic workaround the spec recommends in place of left recursion.
// Implemented iteratively per spec.md §5's stack-depth requirement.
func ChainL1[Tok, U, A any](p Parser[Tok, U, A], op Parser[Tok, U, func(A, A) A]) Parser[Tok, U, A] {
	return func(s State[Tok, U]) Consumed[Tok, U, A] {
		c0 := p(s)
		if !c0.Reply.ok {
			return c0
		}
		acc := c0.Reply.Value
		cur := c0.Reply.State
		consumedAny := c0.consumed

		for {
			cOp := op(cur)
			if !cOp.Reply.ok {
				if cOp.consumed {
					return ConsumedReply(ErrReply[Tok, U, A](cOp.Reply.Err))
				}
				break
			}
			consumedAny = true
			f := cOp.Reply.Value

			cRhs := p(cOp.Reply.State)
			if !cRhs.Reply.ok {
				return ConsumedReply(ErrReply[Tok, U, A](cRhs.Reply.Err))
			}
			acc = f(acc, cRhs.Reply.Value)
			cur = cRhs.Reply.State
		}
		return rewrapConsumed(consumedAny, OkReply[Tok, U, A](acc, cur, NewUnknownError(cur.Pos)))
	}
}

// ChainL is ChainL1 with a fallback default for zero occurrences of p.
func ChainL[Tok, U, A any](p Parser[Tok, U, A], op Parser[Tok, U, func(A, A) A], def A) Parser[Tok, U, A] {
	return Alt(ChainL1(p, op), Return[Tok, U, A](def))
}

// ChainR1 parses the same `p (op p)*` shape as ChainL1 but folds
// right-associatively. It gathers operands/operators in a flat iterative
// pass, then folds from the right — recursion lives in a plain slice loop,
// not on the Go call stack.
func ChainR1[Tok, U, A any](p Parser[Tok, U, A], op Parser[Tok, U, func(A, A) A]) Parser[Tok, U, A] {
	return func(s State[Tok, U]) Consumed[Tok, U, A] {
		var operands []A
		var ops []func(A, A) A
		cur := s
		consumedAny := false

		for {
			c := p(cur)
			if c.consumed {
				consumedAny = true
			}
			if !c.Reply.ok {
				return rewrapConsumed(consumedAny, ErrReply[Tok, U, A](c.Reply.Err))
			}
			operands = append(operands, c.Reply.Value)
			cur = c.Reply.State

			cOp := op(cur)
			if !cOp.Reply.ok {
				if cOp.consumed {
					return ConsumedReply(ErrReply[Tok, U, A](cOp.Reply.Err))
				}
				break
			}
			consumedAny = true
			ops = append(ops, cOp.Reply.Value)
			cur = cOp.Reply.State
		}

		result := operands[len(operands)-1]
		for i := len(ops) - 1; i >= 0; i-- {
			result = ops[i](operands[i], result)
		}
		return rewrapConsumed(consumedAny, OkReply[Tok, U, A](result, cur, NewUnknownError(cur.Pos)))
	}
}

// ChainR is ChainR1 with a fallback default for zero occurrences of p.
func ChainR[Tok, U, A any](p Parser[Tok, U, A], op Parser[Tok, U, func(A, A) A], def A) Parser[Tok, U, A] {
	return Alt(ChainR1(p, op), Return[Tok, U, A](def))
}

// ManyTill repeatedly tries end (success exits with the accumulated
// list) then p (appends and continues). If end overlaps with what p can
// match, wrap end in Attempt so its lookahead doesn't commit.
func ManyTill[Tok, U, A, E any](p Parser[Tok, U, A], end Parser[Tok, U, E]) Parser[Tok, U, []A] {
	return func(s State[Tok, U]) Consumed[Tok, U, []A] {
		var acc []A
		cur := s
		consumedAny := false
		for {
			cEnd := end(cur)
			if cEnd.Reply.ok {
				return rewrapConsumed(consumedAny || cEnd.consumed, OkReply[Tok, U, []A](acc, cEnd.Reply.State, NewUnknownError(cEnd.Reply.State.Pos)))
			}
			if cEnd.consumed {
				return ConsumedReply(ErrReply[Tok, U, []A](cEnd.Reply.Err))
			}

			cP := p(cur)
			if !cP.Reply.ok {
				return rewrapConsumed(consumedAny || cP.consumed, ErrReply[Tok, U, []A](cP.Reply.Err))
			}
			consumedAny = true
			acc = append(acc, cP.Reply.Value)
			cur = cP.Reply.State
		}
	}
}

// NoOccurence succeeds with unit iff p fails at the current position; it
// never consumes. Built, per spec.md §9's explicit instruction to preserve
// the double wrapping, as
// (attempt(p) >>= \v -> unexpected(show v)) <|> return(()), itself wrapped
// in attempt.
func NoOccurence[Tok, U, A any](p Parser[Tok, U, A], show func(A) string) Parser[Tok, U, struct{}] {
	inner := Bind(Attempt(p), func(v A) Parser[Tok, U, struct{}] {
		return Unexpected[Tok, U, struct{}](show(v))
	})
	return Attempt(Alt(inner, Return[Tok, U, struct{}](struct{}{})))
}

// Recursive ties the knot for self-referential grammars: it allocates a
// mutable slot, builds f's result against a placeholder that forwards to
// that slot, then fills the slot with the constructed parser.
func Recursive[Tok, U, A any](f func(Parser[Tok, U, A]) Parser[Tok, U, A]) Parser[Tok, U, A] {
	var self Parser[Tok, U, A]
	placeholder := func(s State[Tok, U]) Consumed[Tok, U, A] { return self(s) }
	self = f(placeholder)
	return self
}
