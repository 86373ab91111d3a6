package parsec

import "fmt"

// Assoc is the associativity of an infix operator.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
)

func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	default:
		return "non"
	}
}

type opKind int

const (
	opInfix opKind = iota
	opPrefix
	opPostfix
)

// Operator is one row entry of an OperatorTable: an infix, prefix, or
// postfix operator parser, built via InfixOp/PrefixOp/PostfixOp.
type Operator[Tok, U, A any] struct {
	kind    opKind
	assoc   Assoc
	infix   Parser[Tok, U, func(A, A) A]
	unaryFn Parser[Tok, U, func(A) A]
}

// InfixOp builds a binary operator with the given associativity. p must
// parse the operator token(s) and produce the combining function.
func InfixOp[Tok, U, A any](p Parser[Tok, U, func(A, A) A], assoc Assoc) Operator[Tok, U, A] {
	return Operator[Tok, U, A]{kind: opInfix, assoc: assoc, infix: p}
}

// PrefixOp builds a unary prefix operator.
func PrefixOp[Tok, U, A any](p Parser[Tok, U, func(A) A]) Operator[Tok, U, A] {
	return Operator[Tok, U, A]{kind: opPrefix, unaryFn: p}
}

// PostfixOp builds a unary postfix operator.
func PostfixOp[Tok, U, A any](p Parser[Tok, U, func(A) A]) Operator[Tok, U, A] {
	return Operator[Tok, U, A]{kind: opPostfix, unaryFn: p}
}

// OperatorTable is a precedence table: rows ordered from lowest to
// highest precedence, each row a set of same-precedence operators.
type OperatorTable[Tok, U, A any] struct {
	rows [][]Operator[Tok, U, A]
}

// NewOperatorTable starts an empty table.
func NewOperatorTable[Tok, U, A any]() *OperatorTable[Tok, U, A] {
	return &OperatorTable[Tok, U, A]{}
}

// AddRow appends a new, higher-precedence row of operators.
func (t *OperatorTable[Tok, U, A]) AddRow(ops ...Operator[Tok, U, A]) *OperatorTable[Tok, U, A] {
	t.rows = append(t.rows, ops)
	return t
}

func identityFn[A any]() func(A) A {
	return func(a A) A { return a }
}

func chooseBinary[Tok, U, A any](ops []Operator[Tok, U, A]) Parser[Tok, U, func(A, A) A] {
	if len(ops) == 0 {
		return nil
	}
	ps := make([]Parser[Tok, U, func(A, A) A], len(ops))
	for i, o := range ops {
		ps[i] = o.infix
	}
	return Choice(ps)
}

func chooseUnary[Tok, U, A any](ops []Operator[Tok, U, A]) Parser[Tok, U, func(A) A] {
	if len(ops) == 0 {
		return nil
	}
	ps := make([]Parser[Tok, U, func(A) A], len(ops))
	for i, o := range ops {
		ps[i] = o.unaryFn
	}
	return Choice(ps)
}

func unaryOrIdentity[Tok, U, A any](p Parser[Tok, U, func(A) A]) Parser[Tok, U, func(A) A] {
	if p == nil {
		return Return[Tok, U, func(A) A](identityFn[A]())
	}
	return Option(p, identityFn[A]())
}

// ambiguousCheck is the classic ambiguous-operator diagnostic: it never
// succeeds, and never consumes on a non-match. If opAny matches, it fails
// with a Generic message naming the operator kind; the Attempt around it
// makes that failure Empty, so an enclosing Alt can still fall back.
func ambiguousCheck[Tok, U, A any](kind string, opAny Parser[Tok, U, func(A, A) A]) Parser[Tok, U, A] {
	return Attempt(Bind(opAny, func(func(A, A) A) Parser[Tok, U, A] {
		return Fail[Tok, U, A](fmt.Sprintf("ambiguous use of a %s associative operator", kind))
	}))
}

// chainLFrom continues a left-associative fold given an already-parsed
// leftmost operand x. It fails (Empty) if the very first operator attempt
// fails, so the caller's outer Alt can try a different associativity
// bucket; once committed, it loops iteratively (no recursion) the way
// ChainL1 does.
func chainLFrom[Tok, U, A any](x A, term Parser[Tok, U, A], op Parser[Tok, U, func(A, A) A]) Parser[Tok, U, A] {
	return func(s State[Tok, U]) Consumed[Tok, U, A] {
		cOp := op(s)
		if !cOp.Reply.ok {
			return rewrap[Tok, U, func(A, A) A, A](cOp, ErrReply[Tok, U, A](cOp.Reply.Err))
		}
		cRhs := term(cOp.Reply.State)
		if !cRhs.Reply.ok {
			return ConsumedReply(ErrReply[Tok, U, A](cRhs.Reply.Err))
		}
		acc := cOp.Reply.Value(x, cRhs.Reply.Value)
		cur := cRhs.Reply.State

		for {
			cOp2 := op(cur)
			if !cOp2.Reply.ok {
				if cOp2.consumed {
					return ConsumedReply(ErrReply[Tok, U, A](cOp2.Reply.Err))
				}
				break
			}
			cRhs2 := term(cOp2.Reply.State)
			if !cRhs2.Reply.ok {
				return ConsumedReply(ErrReply[Tok, U, A](cRhs2.Reply.Err))
			}
			acc = cOp2.Reply.Value(acc, cRhs2.Reply.Value)
			cur = cRhs2.Reply.State
		}
		return ConsumedReply(OkReply[Tok, U, A](acc, cur, NewUnknownError(cur.Pos)))
	}
}

// chainRFrom continues a right-associative fold given an already-parsed
// leftmost operand x and the first operator already required. It gathers
// the remaining operand/operator run iteratively, then folds from the
// right in a plain slice loop.
func chainRFrom[Tok, U, A any](x A, term Parser[Tok, U, A], op Parser[Tok, U, func(A, A) A]) Parser[Tok, U, A] {
	return func(s State[Tok, U]) Consumed[Tok, U, A] {
		cOp := op(s)
		if !cOp.Reply.ok {
			return rewrap[Tok, U, func(A, A) A, A](cOp, ErrReply[Tok, U, A](cOp.Reply.Err))
		}
		f0 := cOp.Reply.Value

		var operands []A
		var ops []func(A, A) A
		cur := cOp.Reply.State
		for {
			cTerm := term(cur)
			if !cTerm.Reply.ok {
				return ConsumedReply(ErrReply[Tok, U, A](cTerm.Reply.Err))
			}
			operands = append(operands, cTerm.Reply.Value)
			cur = cTerm.Reply.State

			cOp2 := op(cur)
			if !cOp2.Reply.ok {
				if cOp2.consumed {
					return ConsumedReply(ErrReply[Tok, U, A](cOp2.Reply.Err))
				}
				break
			}
			ops = append(ops, cOp2.Reply.Value)
			cur = cOp2.Reply.State
		}

		y := operands[len(operands)-1]
		for i := len(ops) - 1; i >= 0; i-- {
			y = ops[i](operands[i], y)
		}
		return ConsumedReply(OkReply[Tok, U, A](f0(x, y), cur, NewUnknownError(cur.Pos)))
	}
}

func nassocFrom[Tok, U, A any](x A, term Parser[Tok, U, A], op Parser[Tok, U, func(A, A) A], ambiguous Parser[Tok, U, A]) Parser[Tok, U, A] {
	return Bind(op, func(f func(A, A) A) Parser[Tok, U, A] {
		return Bind(term, func(y A) Parser[Tok, U, A] {
			return Alt(ambiguous, Return[Tok, U, A](f(x, y)))
		})
	})
}

// buildLevel builds the parser for one precedence row, given the parser
// for everything binding tighter (term). It is ported directly from the
// classic buildExpressionParser construction: a term wrapped in optional
// prefix/postfix unary operators, then a choice among a left-fold, a
// right-fold, a non-associative application (guarded by an ambiguity
// check against all three buckets), or the bare term.
func buildLevel[Tok, U, A any](ops []Operator[Tok, U, A], term Parser[Tok, U, A]) Parser[Tok, U, A] {
	var rassoc, lassoc, nassoc, prefix, postfix []Operator[Tok, U, A]
	for _, o := range ops {
		switch o.kind {
		case opInfix:
			switch o.assoc {
			case AssocLeft:
				lassoc = append(lassoc, o)
			case AssocRight:
				rassoc = append(rassoc, o)
			default:
				nassoc = append(nassoc, o)
			}
		case opPrefix:
			prefix = append(prefix, o)
		case opPostfix:
			postfix = append(postfix, o)
		}
	}

	prefixP := unaryOrIdentity(chooseUnary(prefix))
	postfixP := unaryOrIdentity(chooseUnary(postfix))

	termP := Bind(prefixP, func(pre func(A) A) Parser[Tok, U, A] {
		return Bind(term, func(x A) Parser[Tok, U, A] {
			return Map(postfixP, func(post func(A) A) A { return post(pre(x)) })
		})
	})

	lassocOp := chooseBinary(lassoc)
	rassocOp := chooseBinary(rassoc)
	nassocOp := chooseBinary(nassoc)

	var ambiguities []Parser[Tok, U, A]
	if rassocOp != nil {
		ambiguities = append(ambiguities, ambiguousCheck[Tok, U, A]("right", rassocOp))
	}
	if lassocOp != nil {
		ambiguities = append(ambiguities, ambiguousCheck[Tok, U, A]("left", lassocOp))
	}
	if nassocOp != nil {
		ambiguities = append(ambiguities, ambiguousCheck[Tok, U, A]("non", nassocOp))
	}
	ambiguous := Choice(ambiguities)

	return Bind(termP, func(x A) Parser[Tok, U, A] {
		var branches []Parser[Tok, U, A]
		if rassocOp != nil {
			branches = append(branches, chainRFrom(x, termP, rassocOp))
		}
		if lassocOp != nil {
			branches = append(branches, chainLFrom(x, termP, lassocOp))
		}
		if nassocOp != nil {
			branches = append(branches, nassocFrom(x, termP, nassocOp, ambiguous))
		}
		branches = append(branches, Return[Tok, U, A](x))
		return Choice(branches)
	})
}

// BuildExpressionParser assembles a full expression parser from table and
// a base term parser. Rows are folded in reverse (highest precedence
// first) so that each successive, lower-precedence row wraps the parser
// built from everything above it.
func BuildExpressionParser[Tok, U, A any](table *OperatorTable[Tok, U, A], term Parser[Tok, U, A]) Parser[Tok, U, A] {
	current := term
	for i := len(table.rows) - 1; i >= 0; i-- {
		current = buildLevel(table.rows[i], current)
	}
	return current
}
