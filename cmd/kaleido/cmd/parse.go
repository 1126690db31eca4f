package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/kaleido/foundation/kscope"
	"github.com/msto63/kaleido/foundation/kscope/parser"
	"github.com/msto63/kaleido/internal/render"
	"github.com/msto63/kaleido/internal/tui"
)

var (
	parseFormat string
	parseStrict bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|-]",
	Short: "Parse Kaleidoscope source",
	Long: `Parses a file, or stdin when no file or "-" is given, and prints one
line per definition, extern and top-level expression.

Syntax errors are reported and parsing continues with the next token.
A malformed number ends the run with exit status 1.

Examples:
  kaleido parse fib.ks
  kaleido parse --format tree fib.ks
  echo "def id(x) x" | kaleido parse --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", string(render.FormatText), "output format (text, tree, json, yaml)")
	parseCmd.Flags().BoolVar(&parseStrict, "strict", false, "exit with status 1 on syntax errors")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(parseFormat)
	if err != nil {
		return err
	}

	in, name, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer in.Close()

	reg, err := newRegistry()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := appConfig.Parser.Timeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	logger := appLogger.WithField("input", name)
	timer := logger.StartTimer("parse")
	defer timer.Stop()

	sink := parser.NewCollector()
	units, stats, runErr := kscope.Parse(ctx, in, kscope.Options{
		Logger:        logger,
		Registry:      reg,
		Sink:          sink,
		MaxInputBytes: appConfig.Parser.MaxInputBytes,
	})

	doc := render.NewDocument(units, sink.Errors(), stats, runErr)
	if err := render.Write(cmd.OutOrStdout(), doc, format); err != nil {
		return err
	}

	structured := format == render.FormatJSON || format == render.FormatYAML
	if !structured {
		for _, diag := range sink.Errors() {
			fmt.Fprintln(cmd.ErrOrStderr(), tui.RenderDiagnostic(diag))
		}
	}

	switch {
	case runErr != nil && structured:
		return reportedError{err: runErr}
	case runErr != nil:
		return runErr
	case parseStrict && stats.SyntaxErrors > 0:
		return reportedError{err: fmt.Errorf("%d syntax errors", stats.SyntaxErrors)}
	}
	return nil
}
