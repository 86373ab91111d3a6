package cmd

import (
	"fmt"

	"github.com/parsec-go/parsec"
	"github.com/spf13/cobra"
)

var (
	commentStart string
	commentEnd   string
)

var commentCmd = &cobra.Command{
	Use:   "comment <text>",
	Short: "Extract a single delimited comment's body",
	Long: `comment parses exactly one delimited comment (HTML-style <!-- ... -->
by default) out of its argument, requiring the whole input to be consumed,
and prints the body found between the delimiters.

Examples:
  parsec-calc comment "<!-- A comment -->"
  parsec-calc comment "<!---->"
  parsec-calc comment --start "/*" --end "*/" "/* hi */"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := extractComment(args[0], commentStart, commentEnd)
		if err != nil {
			return err
		}
		fmt.Printf("%q\n", body)
		return nil
	},
}

func init() {
	commentCmd.Flags().StringVar(&commentStart, "start", "<!--", "comment opening delimiter")
	commentCmd.Flags().StringVar(&commentEnd, "end", "-->", "comment closing delimiter")
}

// extractComment parses start, then any run of characters up to and
// including the first occurrence of end, then requires end of input.
func extractComment(src, start, end string) (string, error) {
	open := parsec.StringTok[struct{}](start)
	closeP := parsec.Attempt(parsec.StringTok[struct{}](end))
	body := parsec.ManyTill(parsec.AnyChar[struct{}](), closeP)

	withBody := parsec.Bind(open, func(string) parsec.Parser[rune, struct{}, string] {
		return parsec.Map(body, func(rs []rune) string { return string(rs) })
	})
	withEof := parsec.Bind(withBody, func(s string) parsec.Parser[rune, struct{}, string] {
		return parsec.Map(parsec.Eof[rune, struct{}](), func(struct{}) string { return s })
	})

	v, _, err := parsec.Run(withEof, "comment", parsec.NewRuneStream(src), struct{}{})
	if err != nil {
		return "", err
	}
	return v, nil
}
