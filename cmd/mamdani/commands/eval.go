package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/mamdani/am"
	"github.com/teranos/mamdani/display"
	"github.com/teranos/mamdani/fis"
	"github.com/teranos/mamdani/fis/storage"
	"github.com/teranos/mamdani/fis/types"
	"github.com/teranos/mamdani/logger"
	"github.com/teranos/mamdani/sym"
)

// EvalCmd fuzzifies crisp inputs, fires every rule and prints the aggregation
var EvalCmd = &cobra.Command{
	Use:   "eval [RULEBASE] name=value...",
	Short: sym.Aggregate + " Evaluate a rule base against crisp inputs",
	Long: sym.Aggregate + ` eval — Fire every rule and aggregate by output set

Inputs are name=value pairs for every input attribute, or bare values in
attribute order. The output lists the strength of each output set reached
by at least one rule.

Examples:
  mamdani eval economy.yaml power=126 weight=700 year=2013
  mamdani eval economy.yaml 275 1700 1995 --explain
  mamdani eval --input "power=350 weight=2200 year=1981" --evaluator tree
  mamdani eval economy.yaml 100 1200 2018 --record`,
	RunE: runEval,
}

var (
	evalEvaluator string
	evalInput     string
	evalExplain   bool
	evalRecord    bool
)

func init() {
	EvalCmd.Flags().StringVar(&evalEvaluator, "evaluator", "", "Rule evaluator: flat or tree (default from engine.evaluator)")
	EvalCmd.Flags().StringVarP(&evalInput, "input", "i", "", `Inputs as one shell-quoted line, e.g. "power=126 weight=700"`)
	EvalCmd.Flags().BoolVar(&evalExplain, "explain", false, "Show fuzzified inputs and each rule's firing strength")
	EvalCmd.Flags().BoolVar(&evalRecord, "record", false, "Record the evaluation in the database (default from database.record_evaluations)")
	EvalCmd.Flags().Bool("json", false, "Output as JSON")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, def, rest, err := loadRuleBase(args)
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg, def, evalEvaluator)
	if err != nil {
		return err
	}
	crisp, err := parseInputs(engine.Store(), rest, evalInput)
	if err != nil {
		return err
	}

	trace, err := engine.Explain(crisp)
	if err != nil {
		return err
	}

	record := cfg.Database.RecordEvaluations
	if cmd.Flags().Changed("record") {
		record = evalRecord
	}
	if record {
		if err := recordEvaluation(cmd.Context(), cmd, cfg, def.Name, engine, crisp, trace.Output); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		if evalExplain {
			return display.WriteJSON(w, trace)
		}
		return display.WriteJSON(w, trace.Output)
	}

	if evalExplain {
		if err := writeTrace(w, trace); err != nil {
			return err
		}
	}
	return writeAggregation(w, trace.Output)
}

func recordEvaluation(ctx context.Context, cmd *cobra.Command, cfg *am.Config, name string, engine *fis.Engine, crisp []float64, out types.Aggregation) error {
	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	id, err := storage.NewEvaluationStore(database, logger.Logger).
		Record(ctx, name, engine.Evaluator().Name(), crisp, out)
	if err != nil {
		return err
	}
	if logger.ShouldOutput(Verbosity(cmd), logger.OutputRecorded) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s recorded evaluation %s\n", sym.DB, id)
	}
	return nil
}

func writeAggregation(w io.Writer, agg types.Aggregation) error {
	if len(agg) == 0 {
		_, err := fmt.Fprintln(w, "no rule fired")
		return err
	}
	return display.Table(w, []string{"Output", "Degree", ""}, degreeRows(agg))
}

func writeTrace(w io.Writer, tr *fis.Trace) error {
	inputs := make([][]string, 0, len(tr.Inputs))
	for _, in := range tr.Inputs {
		parts := make([]string, len(in.Degrees))
		for i, d := range in.Degrees {
			parts[i] = d.Name + "=" + display.Degree(d.Degree)
		}
		inputs = append(inputs, []string{
			in.Attribute,
			strconv.FormatFloat(in.Value, 'g', -1, 64),
			strings.Join(parts, "  "),
		})
	}
	if err := display.Table(w, []string{"Input", "Value", "Degrees"}, inputs); err != nil {
		return err
	}

	rules := make([][]string, len(tr.Rules))
	for i, r := range tr.Rules {
		rules[i] = []string{strconv.Itoa(r.Index), r.Rule, r.Consequent, display.Degree(r.Degree)}
	}
	if err := display.Table(w, []string{"#", "Rule (" + tr.Evaluator + ")", "Output", "Strength"}, rules); err != nil {
		return err
	}
	return nil
}
