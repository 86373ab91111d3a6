// Command parsec-calc is a demo binary exercising the parsec library:
// an arithmetic expression evaluator built on BuildExpressionParser, and a
// delimited-comment scanner built from StringTok, AnyChar and ManyTill.
package main

import "github.com/parsec-go/parsec/cmd/parsec-calc/cmd"

func main() {
	cmd.Execute()
}
