package cmd

import (
	"fmt"
	"os"

	"github.com/parsec-go/parsec/ascii"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	noColor      bool
	settings     *Settings
)

var rootCmd = &cobra.Command{
	Use:   "parsec-calc",
	Short: "Demo binary for the parsec combinator library",
	Long: `parsec-calc exercises the parsec library's expression builder and
lexeme layer through two subcommands: calc (arithmetic expressions built
from an operator table) and comment (a delimited-comment scanner).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := LoadSettings(settingsPath)
		if err != nil {
			return err
		}
		if noColor {
			loaded.Color.Enabled = false
		}
		settings = loaded
		return nil
	},
}

// Execute runs the root command, rendering any returned error in
// ascii.DefaultTheme's error color (whatever the color settings) before
// exiting non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ascii.Color(ascii.DefaultTheme.Error, "%s", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "parsec-calc.toml", "path to a TOML settings file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(commentCmd)
}
