package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/mamdani/am"
	"github.com/teranos/mamdani/cmd/mamdani/commands"
	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mamdani",
	Short: "mamdani - Mamdani fuzzy inference from plain-text rules",
	Long: `mamdani - Mamdani fuzzy inference from plain-text rules.

A rule base declares attributes with triangular fuzzy sets and rules such as
"if weight is light and year is new then economy is high". mamdani compiles
the rules, fuzzifies crisp inputs, fires every rule and reports the strength
of each output set.

Available commands:
  compile - Compile rules to token sequences
  fuzzify - Show membership degrees of a value
  eval    - Evaluate a rule base against crisp inputs
  watch   - Re-evaluate whenever the rule base changes
  db      - Manage stored rule bases and evaluation history
  am      - Show configuration

Examples:
  mamdani compile economy.yaml
  mamdani eval economy.yaml power=126 weight=700 year=2013
  mamdani watch economy.yaml 275 1700 1995 -v`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("log-json")

		// A broken config is reported by the command itself
		if cfg, err := am.Load(); err == nil {
			jsonLogs = jsonLogs || cfg.Log.JSON
			logger.SetTheme(cfg.GetLogTheme())
		}

		if err := logger.Initialize(jsonLogs, commands.Verbosity(cmd)); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")

	rootCmd.AddCommand(commands.CompileCmd)
	rootCmd.AddCommand(commands.FuzzifyCmd)
	rootCmd.AddCommand(commands.EvalCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
