package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis"
	"github.com/teranos/mamdani/fis/rulebase"
	"github.com/teranos/mamdani/logger"
	"github.com/teranos/mamdani/sym"
)

// WatchCmd re-evaluates fixed inputs whenever the rule-base file changes
var WatchCmd = &cobra.Command{
	Use:   "watch RULEBASE name=value...",
	Short: sym.Watch + " Re-evaluate whenever the rule base changes",
	Long: sym.Watch + ` watch — Keep evaluating while you edit a rule base

The inputs are evaluated once, then again each time the file is saved.
A save that does not load or compile keeps the previous rule base running
and prints the error.

Examples:
  mamdani watch economy.yaml power=126 weight=700 year=2013
  mamdani watch economy.toml 275 1700 1995 --evaluator tree`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

var (
	watchEvaluator string
	watchInput     string
)

func init() {
	WatchCmd.Flags().StringVar(&watchEvaluator, "evaluator", "", "Rule evaluator: flat or tree (default from engine.evaluator)")
	WatchCmd.Flags().StringVarP(&watchInput, "input", "i", "", "Inputs as one shell-quoted line")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !isRuleBasePath(args[0]) {
		return errors.NewInvalidRequestError("%q is not a .yaml, .yml or .toml rule base", args[0])
	}
	cfg, def, rest, err := loadRuleBase(args)
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg, def, watchEvaluator)
	if err != nil {
		return err
	}
	crisp, err := parseInputs(engine.Store(), rest, watchInput)
	if err != nil {
		return err
	}

	holder := fis.NewHolder(engine)
	w := cmd.OutOrStdout()
	evaluate := func() error {
		agg, err := holder.Load().Infer(crisp)
		if err != nil {
			return err
		}
		return writeAggregation(w, agg)
	}
	if err := evaluate(); err != nil {
		return err
	}

	watcher, err := rulebase.NewWatcher(args[0], cfg.WatchDebounce(), logger.Logger)
	if err != nil {
		return err
	}
	watcher.OnReload(func(def *rulebase.Definition) error {
		next, err := buildEngine(cfg, def, watchEvaluator)
		if err != nil {
			return err
		}
		if next.Store().Antecedents() != len(crisp) {
			return errors.WithHint(
				errors.Wrapf(errors.ErrInvalidInput, "rule base now has %d inputs, watching %d", next.Store().Antecedents(), len(crisp)),
				"restart watch with new inputs")
		}
		holder.Swap(next)
		logger.ReloadInfow("Rule base reloaded", logger.FieldRuleBase, def.Name, logger.FieldRules, len(def.Rules))
		if logger.ShouldOutput(Verbosity(cmd), logger.OutputReload) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s reloaded %s\n", sym.Reload, watcher.Path())
		}
		return evaluate()
	})
	watcher.OnError(func(err error) {
		ReportError(cmd.ErrOrStderr(), err)
	})
	watcher.Start()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintf(cmd.ErrOrStderr(), "%s stopped watching %s\n", sym.Stop, watcher.Path())
	return watcher.Stop()
}
