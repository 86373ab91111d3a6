package cmd

import (
	"fmt"

	"github.com/parsec-go/parsec"
	"github.com/parsec-go/parsec/ascii"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc <expression>",
	Short: "Evaluate an integer arithmetic expression",
	Long: `calc evaluates an expression built from BuildExpressionParser's
table: prefix - and +, postfix ++, right-associative ^ (power),
left-associative * and /, left-associative + and -, and non-associative
<< and >>, over decimal-natural or parenthesized terms.

Examples:
  parsec-calc calc "4>>2"
  parsec-calc calc "4<<2"
  parsec-calc calc "1+2*4-8+((3-12)/8)+(-71)+2^2^3"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := evalExpression(args[0])
		if err != nil {
			return err
		}
		fmt.Println(colorizeResult(v))
		return nil
	},
}

func colorizeResult(v int64) string {
	if settings == nil || !settings.Color.Enabled {
		return fmt.Sprintf("%d", v)
	}
	return ascii.Color(ascii.DefaultTheme.Success, "%d", v)
}

func intPow(base, exp int64) int64 {
	var result int64 = 1
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

// calcTable builds the precedence table for evalExpression, from lowest
// precedence (added first) to highest (added last) — BuildExpressionParser
// folds rows in the opposite order, so the last AddRow call binds tightest.
func calcTable(tp *parsec.TokenParser[struct{}]) *parsec.OperatorTable[rune, struct{}, int64] {
	binary := func(sym string, f func(int64, int64) int64) parsec.Parser[rune, struct{}, func(int64, int64) int64] {
		return parsec.Map(tp.Symbol(sym), func(string) func(int64, int64) int64 { return f })
	}
	unary := func(sym string, f func(int64) int64) parsec.Parser[rune, struct{}, func(int64) int64] {
		return parsec.Map(tp.Symbol(sym), func(string) func(int64) int64 { return f })
	}

	shl := binary("<<", func(a, b int64) int64 { return a << uint(b) })
	shr := binary(">>", func(a, b int64) int64 { return a >> uint(b) })
	add := binary("+", func(a, b int64) int64 { return a + b })
	sub := binary("-", func(a, b int64) int64 { return a - b })
	mul := binary("*", func(a, b int64) int64 { return a * b })
	div := binary("/", func(a, b int64) int64 { return a / b })
	pow := binary("^", intPow)

	neg := unary("-", func(v int64) int64 { return -v })
	pos := unary("+", func(v int64) int64 { return v })
	inc := parsec.Map(parsec.Attempt(tp.Symbol("++")), func(string) func(int64) int64 { return func(v int64) int64 { return v + 1 } })

	return parsec.NewOperatorTable[rune, struct{}, int64]().
		AddRow(parsec.InfixOp(shl, parsec.AssocNone), parsec.InfixOp(shr, parsec.AssocNone)).
		AddRow(parsec.InfixOp(add, parsec.AssocLeft), parsec.InfixOp(sub, parsec.AssocLeft)).
		AddRow(parsec.InfixOp(mul, parsec.AssocLeft), parsec.InfixOp(div, parsec.AssocLeft)).
		AddRow(parsec.InfixOp(pow, parsec.AssocRight)).
		AddRow(parsec.PrefixOp(neg), parsec.PrefixOp(pos), parsec.PostfixOp(inc))
}

// evalExpression parses and evaluates src against calcTable's grammar,
// requiring the whole input to be consumed.
func evalExpression(src string) (int64, error) {
	tp := parsec.NewTokenParser(parsec.EmptyDef[struct{}]())

	expr := parsec.Recursive(func(self parsec.Parser[rune, struct{}, int64]) parsec.Parser[rune, struct{}, int64] {
		term := parsec.Alt(tp.Decimal(), parsec.Parentheses[struct{}, int64](tp, self))
		return parsec.BuildExpressionParser(calcTable(tp), term)
	})

	full := parsec.Bind(tp.WhiteSpace(), func(struct{}) parsec.Parser[rune, struct{}, int64] {
		return parsec.Bind(expr, func(v int64) parsec.Parser[rune, struct{}, int64] {
			return parsec.Map(parsec.Eof[rune, struct{}](), func(struct{}) int64 { return v })
		})
	})

	v, _, err := parsec.Run(full, "expression", parsec.NewRuneStream(src), struct{}{})
	if err != nil {
		return 0, err
	}
	return v, nil
}
