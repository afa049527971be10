package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/mamdani/display"
	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis/types"
	"github.com/teranos/mamdani/sym"
)

// FuzzifyCmd prints the membership degrees of one crisp value
var FuzzifyCmd = &cobra.Command{
	Use:   "fuzzify [RULEBASE] ATTRIBUTE VALUE",
	Short: sym.Fuzzify + " Show membership degrees of a value",
	Long: sym.Fuzzify + ` fuzzify — Show the degree of a crisp value in every set of an attribute

Examples:
  mamdani fuzzify economy.yaml power 275
  mamdani fuzzify weight 1700          # uses rulebase.path`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runFuzzify,
}

func init() {
	FuzzifyCmd.Flags().Bool("json", false, "Output as JSON")
}

func runFuzzify(cmd *cobra.Command, args []string) error {
	_, def, rest, err := loadRuleBase(args)
	if err != nil {
		return err
	}
	if len(rest) != 2 {
		return errors.NewInvalidRequestError("expected ATTRIBUTE VALUE, got %q", strings.Join(rest, " "))
	}
	store, err := def.Store()
	if err != nil {
		return err
	}

	attr, ok := lookupInput(store, rest[0])
	if !ok {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrUnknownAttribute, "%q", rest[0]),
			"known attributes: %s", strings.Join(store.Names(), ", "))
	}
	x, err := parseValue(rest[0], rest[1])
	if err != nil {
		return err
	}

	degrees, err := store.Fuzzify(attr, x)
	if err != nil {
		return err
	}
	a, err := store.Attribute(attr)
	if err != nil {
		return err
	}

	out := make([]types.SetDegree, len(degrees))
	for i, d := range degrees {
		out[i] = types.SetDegree{Set: i, Name: a.Sets[i].Name, Degree: d}
	}

	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(cmd.OutOrStdout(), out)
	}
	return display.Table(cmd.OutOrStdout(), []string{"Set", "Degree", ""}, degreeRows(out))
}

func degreeRows(degrees []types.SetDegree) [][]string {
	rows := make([][]string, len(degrees))
	for i, sd := range degrees {
		rows[i] = []string{sd.Name, display.Degree(sd.Degree), display.Bar(sd.Degree, 20)}
	}
	return rows
}
