package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/msto63/kaleido/pkg/core/config"
)

var (
	configFormat    string
	configOperators bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after defaults, the config file and
environment overrides have been applied.

Examples:
  kaleido config
  kaleido config --format yaml
  kaleido --config kaleido.toml config --operators`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&configFormat, "format", "f", config.FormatTOML, "output format (toml, yaml)")
	configCmd.Flags().BoolVar(&configOperators, "operators", false, "print the binary operator table instead")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if !configOperators {
		return appConfig.Write(cmd.OutOrStdout(), configFormat)
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}

	table := reg.Operators()
	ops := make([]rune, 0, len(table))
	for op := range table {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool {
		if table[ops[i]] != table[ops[j]] {
			return table[ops[i]] < table[ops[j]]
		}
		return ops[i] < ops[j]
	})

	for _, op := range ops {
		fmt.Fprintf(cmd.OutOrStdout(), "%c\t%d\n", op, table[op])
	}
	return nil
}
