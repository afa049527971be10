package commands

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/teranos/mamdani/am"
	"github.com/teranos/mamdani/db"
	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis"
	"github.com/teranos/mamdani/fis/eval"
	"github.com/teranos/mamdani/fis/membership"
	"github.com/teranos/mamdani/fis/parser"
	"github.com/teranos/mamdani/fis/rulebase"
	"github.com/teranos/mamdani/logger"
)

// Verbosity returns the root -v count
func Verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

// isRuleBasePath reports whether arg names a rule-base file rather than an input
func isRuleBasePath(arg string) bool {
	_, err := rulebase.FormatFromPath(arg)
	return err == nil && !strings.Contains(arg, "=")
}

// splitRuleBaseArg takes a leading rule-base path off args, falling back to
// the configured rulebase.path
func splitRuleBaseArg(cfg *am.Config, args []string) (string, []string) {
	if len(args) > 0 && isRuleBasePath(args[0]) {
		return args[0], args[1:]
	}
	path := am.DefaultRuleBasePath
	if cfg != nil && cfg.RuleBase.Path != "" {
		path = cfg.RuleBase.Path
	}
	return path, args
}

// evaluatorFor picks the evaluator: flag, then engine.evaluator, then flat
func evaluatorFor(cfg *am.Config, flag string) (eval.Evaluator, error) {
	name := flag
	if name == "" && cfg != nil {
		name = cfg.Engine.Evaluator
	}
	return eval.ByName(name)
}

// buildEngine compiles def with the chosen evaluator and the global logger
func buildEngine(cfg *am.Config, def *rulebase.Definition, evaluatorFlag string) (*fis.Engine, error) {
	ev, err := evaluatorFor(cfg, evaluatorFlag)
	if err != nil {
		return nil, err
	}
	return def.Build(fis.WithEvaluator(ev), fis.WithLogger(logger.Logger))
}

// parseInputs reads crisp inputs as name=value words, taken from args and
// from the shell-quoted --input line. Values may also be given bare, in
// attribute order, when no word names an attribute.
func parseInputs(store *membership.Store, args []string, inputLine string) ([]float64, error) {
	words := append([]string(nil), args...)
	if strings.TrimSpace(inputLine) != "" {
		extra, err := shellquote.Split(inputLine)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
		}
		words = append(words, extra...)
	}

	n := store.Antecedents()
	names := store.Names()[:n]
	hint := "supply values for " + strings.Join(names, ", ")

	crisp := make([]float64, n)
	seen := make([]bool, n)

	named := false
	for _, w := range words {
		if strings.Contains(w, "=") {
			named = true
			break
		}
	}

	if !named {
		if len(words) != n {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrInvalidInput, "expected %d values, got %d", n, len(words)),
				hint)
		}
		for i, w := range words {
			x, err := parseValue(names[i], w)
			if err != nil {
				return nil, err
			}
			crisp[i] = x
		}
		return crisp, nil
	}

	for _, w := range words {
		name, value, ok := strings.Cut(w, "=")
		if !ok {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrInvalidInput, "%q is not name=value", w),
				"mix of named and positional inputs")
		}
		i, found := lookupInput(store, name)
		if !found || i >= n {
			return nil, errors.WithHint(
				errors.Wrapf(errors.ErrInvalidInput, "%q is not an input attribute", name),
				hint)
		}
		if seen[i] {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "%s given twice", names[i])
		}
		x, err := parseValue(names[i], value)
		if err != nil {
			return nil, err
		}
		crisp[i] = x
		seen[i] = true
	}

	var missing []string
	for i, ok := range seen {
		if !ok {
			missing = append(missing, names[i])
		}
	}
	if len(missing) > 0 {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidInput, "missing %s", strings.Join(missing, ", ")),
			hint)
	}
	return crisp, nil
}

// lookupInput resolves an attribute name typed on the command line:
// exactly first, then lowercased
func lookupInput(store *membership.Store, name string) (int, bool) {
	if i, ok := store.AttributeIndex(name); ok {
		return i, true
	}
	return store.AttributeIndex(strings.ToLower(name))
}

func parseValue(name, s string) (float64, error) {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "%s: %q is not a number", name, s)
	}
	return x, nil
}

// openDatabase opens and migrates the configured database
func openDatabase(cfg *am.Config) (*sql.DB, error) {
	path := am.DefaultDatabasePath
	if cfg != nil {
		path = cfg.GetDatabasePath()
	}
	return db.OpenWithMigrations(path, logger.Logger)
}

// ReportError writes a command error to w. Compilation errors are shown
// with carets under the offending word; other errors with their hints.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if ce, ok := parser.AsCompilationError(err); ok {
		fmt.Fprintln(w, ce.FormatError(parser.ErrorContextTerminal))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	if hints := errors.FlattenHints(err); hints != "" {
		fmt.Fprintf(w, "Hint: %s\n", hints)
	}
}

func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// loadRuleBase loads the rule base named by a leading path argument or by
// rulebase.path, returning the remaining arguments
func loadRuleBase(args []string) (*am.Config, *rulebase.Definition, []string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	path, rest := splitRuleBaseArg(cfg, args)
	def, err := rulebase.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, def, rest, nil
}
