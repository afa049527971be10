package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/teranos/mamdani/display"
	"github.com/teranos/mamdani/fis/parser"
	"github.com/teranos/mamdani/sym"
)

// CompileCmd compiles every rule of a rule base and prints its tokens
var CompileCmd = &cobra.Command{
	Use:   "compile [RULEBASE]",
	Short: sym.Rule + " Compile rules to token sequences",
	Long: sym.Rule + ` compile — Compile every rule of a rule base

Each rule is printed with its token sequence and its canonical text.
Tokens are attribute and set indices; -1 is not, -2 is and, -3 is or.

Examples:
  mamdani compile economy.yaml
  mamdani compile economy.toml --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

// compiledRuleView is one row of compile output
type compiledRuleView struct {
	Index     int    `json:"index"`
	Source    string `json:"source"`
	Tokens    []int  `json:"tokens"`
	Canonical string `json:"canonical"`
}

func init() {
	CompileCmd.Flags().Bool("json", false, "Output as JSON")
}

func runCompile(cmd *cobra.Command, args []string) error {
	_, def, _, err := loadRuleBase(args)
	if err != nil {
		return err
	}
	store, err := def.Store()
	if err != nil {
		return err
	}

	rules, err := parser.CompileAll(store, def.Rules)
	if err != nil {
		return err
	}

	views := make([]compiledRuleView, len(rules))
	for i, r := range rules {
		canonical, err := parser.Decompile(store, r)
		if err != nil {
			return err
		}
		views[i] = compiledRuleView{Index: i, Source: r.Source, Tokens: r.Ints(), Canonical: canonical}
	}

	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(cmd.OutOrStdout(), views)
	}

	rows := make([][]string, len(views))
	for i, v := range views {
		rows[i] = []string{strconv.Itoa(v.Index), rules[i].String(), v.Canonical}
	}
	return display.Table(cmd.OutOrStdout(), []string{"#", "Tokens", "Rule"}, rows)
}
