package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/mamdani/display"
	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/fis/rulebase"
	"github.com/teranos/mamdani/fis/storage"
	"github.com/teranos/mamdani/logger"
	"github.com/teranos/mamdani/sym"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: sym.DB + " Manage stored rule bases and evaluation history",
	Long: sym.DB + ` db — Manage the mamdani database

Rule bases are stored with their compiled rules; evaluations recorded
with eval --record can be listed per rule base.

Examples:
  mamdani db save economy.yaml            # Store as "economy"
  mamdani db save cars.toml --name cars2  # Store under another name
  mamdani db ls
  mamdani db show economy --format yaml
  mamdani db history economy --limit 5
  mamdani db rm economy`,
}

var dbSaveCmd = &cobra.Command{
	Use:   "save RULEBASE",
	Short: "Compile and store a rule-base file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDbSave,
}

var dbLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored rule bases",
	Args:  cobra.NoArgs,
	RunE:  runDbLs,
}

var dbShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a stored rule base",
	Args:  cobra.ExactArgs(1),
	RunE:  runDbShow,
}

var dbRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Delete a stored rule base",
	Args:  cobra.ExactArgs(1),
	RunE:  runDbRm,
}

var dbHistoryCmd = &cobra.Command{
	Use:   "history NAME",
	Short: "Show recent evaluations of a rule base",
	Args:  cobra.ExactArgs(1),
	RunE:  runDbHistory,
}

var (
	dbSaveName     string
	dbShowFormat   string
	dbHistoryLimit int
)

func init() {
	dbSaveCmd.Flags().StringVar(&dbSaveName, "name", "", "Name to store under (default: the rule base's name)")
	dbShowCmd.Flags().StringVar(&dbShowFormat, "format", "", "Print the definition as yaml or toml instead of a rule table")
	dbHistoryCmd.Flags().IntVar(&dbHistoryLimit, "limit", 20, "Number of evaluations to show")

	for _, c := range []*cobra.Command{dbLsCmd, dbShowCmd, dbHistoryCmd} {
		c.Flags().Bool("json", false, "Output as JSON")
	}

	DbCmd.AddCommand(dbSaveCmd)
	DbCmd.AddCommand(dbLsCmd)
	DbCmd.AddCommand(dbShowCmd)
	DbCmd.AddCommand(dbRmCmd)
	DbCmd.AddCommand(dbHistoryCmd)
}

func openRuleBaseStore() (*storage.RuleBaseStore, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open database")
	}
	return storage.NewRuleBaseStore(database, logger.Logger), func() { database.Close() }, nil
}

func runDbSave(cmd *cobra.Command, args []string) error {
	def, err := rulebase.Load(args[0])
	if err != nil {
		return err
	}
	name := dbSaveName
	if name == "" {
		name = def.Name
	}

	store, closeDB, err := openRuleBaseStore()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := store.Save(cmd.Context(), name, def, nil); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s saved %s (%d rules)\n", sym.DB, name, len(def.Rules))
	return nil
}

func runDbLs(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openRuleBaseStore()
	if err != nil {
		return err
	}
	defer closeDB()

	list, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(cmd.OutOrStdout(), list)
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no stored rule bases")
		return nil
	}

	rows := make([][]string, len(list))
	for i, s := range list {
		rows[i] = []string{s.Name, strconv.Itoa(s.Rules), s.Fingerprint, s.SchemaVersion, s.UpdatedAt.Local().Format(time.DateTime)}
	}
	return display.Table(cmd.OutOrStdout(), []string{"Name", "Rules", "Fingerprint", "Schema", "Updated"}, rows)
}

func runDbShow(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openRuleBaseStore()
	if err != nil {
		return err
	}
	defer closeDB()

	stored, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch {
	case display.ShouldOutputJSON(cmd):
		return display.WriteJSON(w, stored.Definition)
	case dbShowFormat != "":
		return stored.Definition.Encode(w, rulebase.Format(strings.ToLower(dbShowFormat)))
	}

	if stored.Recompiled {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s stored tokens were stale and have been recompiled\n", sym.DB)
	}
	fmt.Fprintf(w, "%s %s  fingerprint %s  schema %s\n", sym.DB, stored.Definition.Name, stored.Fingerprint, stored.Definition.SchemaVersion)

	rows := make([][]string, len(stored.Rules))
	for i, r := range stored.Rules {
		rows[i] = []string{strconv.Itoa(i), r.String(), r.Source}
	}
	return display.Table(w, []string{"#", "Tokens", "Rule"}, rows)
}

func runDbRm(cmd *cobra.Command, args []string) error {
	store, closeDB, err := openRuleBaseStore()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s deleted %s\n", sym.DB, args[0])
	return nil
}

func runDbHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to open database")
	}
	defer database.Close()

	evals, err := storage.NewEvaluationStore(database, logger.Logger).Recent(cmd.Context(), args[0], dbHistoryLimit)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(cmd.OutOrStdout(), evals)
	}
	if len(evals) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no evaluations of %s\n", args[0])
		return nil
	}

	rows := make([][]string, len(evals))
	for i, ev := range evals {
		inputs := make([]string, len(ev.Inputs))
		for j, x := range ev.Inputs {
			inputs[j] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		outputs := make([]string, len(ev.Outputs))
		for j, o := range ev.Outputs {
			outputs[j] = o.Name + "=" + display.Degree(o.Degree)
		}
		rows[i] = []string{
			ev.CreatedAt.Local().Format(time.DateTime),
			ev.Evaluator,
			strings.Join(inputs, " "),
			strings.Join(outputs, " "),
			ev.ID[:8],
		}
	}
	return display.Table(cmd.OutOrStdout(), []string{"When", "Evaluator", "Inputs", "Outputs", "ID"}, rows)
}
