package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	"github.com/msto63/kaleido/foundation/kscope"
	mdwast "github.com/msto63/kaleido/foundation/kscope/ast"
	"github.com/msto63/kaleido/foundation/kscope/parser"
	mdwregistry "github.com/msto63/kaleido/foundation/kscope/registry"
	"github.com/msto63/kaleido/internal/tui"
)

var replPlain bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive read-parse loop",
	Long: `Starts an interactive session. Definitions and externs stay known
for the whole session.

By default a terminal UI is started:
  Enter     - parse the input
  Up/Down   - history
  Ctrl+T    - toggle tree output
  Ctrl+L    - clear the transcript
  Esc       - quit

With --plain stdin is read as one stream and the prompt is written to
stderr before each top-level construct.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&replPlain, "plain", false, "line mode without terminal UI")
}

func runREPL(cmd *cobra.Command, args []string) error {
	reg, err := newRegistry()
	if err != nil {
		return err
	}

	if replPlain {
		return runPlainREPL(cmd, reg)
	}

	model, err := tui.NewModel(tui.Options{
		Registry:      reg,
		Logger:        appLogger,
		Prompt:        appConfig.REPL.Prompt,
		HistorySize:   appConfig.REPL.HistorySize,
		MaxInputBytes: appConfig.Parser.MaxInputBytes,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return mdwerror.Wrap(err, "terminal UI failed").
			WithCode(mdwerror.CodeInternal).
			WithOperation("cmd.runREPL")
	}
	return nil
}

func runPlainREPL(cmd *cobra.Command, reg *mdwregistry.Registry) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	session, err := kscope.NewSession(cmd.InOrStdin(), kscope.Options{
		Logger:   appLogger,
		Registry: reg,
		Sink: parser.SinkFunc(func(diag *mdwerror.Error) {
			fmt.Fprintln(errOut, tui.RenderDiagnostic(diag))
		}),
		Prompt: func() {
			fmt.Fprint(errOut, appConfig.REPL.Prompt)
		},
		MaxInputBytes: appConfig.Parser.MaxInputBytes,
	})
	if err != nil {
		return err
	}

	_, err = session.Run(cmd.Context(), kscope.HandlerFuncs{
		Definition: func(fn *mdwast.Function) error {
			_, err := fmt.Fprintln(out, "Parsed a function definition:", fn)
			return err
		},
		Extern: func(proto *mdwast.Prototype) error {
			_, err := fmt.Fprintln(out, "Parsed an extern:", proto)
			return err
		},
		TopLevel: func(fn *mdwast.Function) error {
			_, err := fmt.Fprintln(out, "Parsed a top-level expr:", fn)
			return err
		},
	})
	fmt.Fprintln(errOut)
	return err
}
