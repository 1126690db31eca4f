package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/kaleido/foundation/core/error"
	mdwlog "github.com/msto63/kaleido/foundation/core/log"
	mdwregistry "github.com/msto63/kaleido/foundation/kscope/registry"
	"github.com/msto63/kaleido/internal/tui"
	"github.com/msto63/kaleido/pkg/core/config"
	"github.com/msto63/kaleido/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	appLogger *mdwlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kaleido",
	Short: "Kaleidoscope language front end",
	Long: `kaleido tokenizes and parses Kaleidoscope source.

Kaleidoscope has a single type (64-bit float), function definitions,
extern declarations and top-level expressions:

  extern sin(x);
  def f(a b) a * sin(b) + 1;
  f(2, 3);

Commands:
  parse    - parse a file or stdin and print the syntax tree
  tokens   - print the token stream
  repl     - interactive read-parse loop
  config   - print the effective configuration
  version  - print version information`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadEnvironment,
}

// reportedError marks an error whose diagnostic has already been written
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			printError(rootCmd.ErrOrStderr(), err)
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvConfig+" or ./kaleido.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadEnvironment loads the configuration and builds the logger shared by
// every command
func loadEnvironment(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	appLogger, err = logging.FromConfig(appConfig, cmd.ErrOrStderr(), verbose)
	if err != nil {
		return err
	}
	mdwlog.SetDefault(appLogger)

	appLogger.Debug("configuration loaded", mdwlog.Fields{
		"command": cmd.Name(),
		"config":  cfgFile,
	})
	return nil
}

// newRegistry creates a registry with the configured operator table
func newRegistry() (*mdwregistry.Registry, error) {
	table, err := appConfig.PrecedenceTable()
	if err != nil {
		return nil, err
	}
	return mdwregistry.New(mdwregistry.Options{
		Logger:     appLogger,
		Precedence: table,
	})
}

// openInput opens the named file, or stdin for "-" and no argument
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "<stdin>", nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, args[0], mdwerror.Wrap(err, "opening source file").
			WithCode(mdwerror.CodeIO).
			WithOperation("cmd.openInput").
			WithDetail("path", args[0])
	}
	return f, args[0], nil
}

func printError(w io.Writer, err error) {
	if mdwErr, ok := mdwerror.As(err); ok {
		fmt.Fprintln(w, tui.RenderDiagnostic(mdwErr))
		return
	}
	fmt.Fprintln(w, tui.RenderError(err.Error()))
}
