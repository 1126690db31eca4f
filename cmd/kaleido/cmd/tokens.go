package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/kaleido/foundation/kscope/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file|-]",
	Short: "Print the token stream",
	Long: `Prints one token per line with its position, ending with EOF.

Examples:
  kaleido tokens fib.ks
  echo "4 + 5.5" | kaleido tokens`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	in, name, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	lex := lexer.New(in, lexer.Options{Logger: appLogger.WithField("input", name)})
	out := cmd.OutOrStdout()

	for {
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d:%d\t%s\n", tok.Line, tok.Col, tok)
		if tok.Kind == lexer.KindEOF {
			return nil
		}
	}
}
