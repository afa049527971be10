package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/mamdani/am"
	"github.com/teranos/mamdani/display"
	"github.com/teranos/mamdani/errors"
	"github.com/teranos/mamdani/sym"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: sym.AM + " Show mamdani configuration",
	Long: sym.AM + ` am — Show mamdani configuration

Configuration sources (in order of precedence):
1. Environment variables (MAMDANI_* prefix, e.g. MAMDANI_ENGINE_EVALUATOR)
2. Project config (nearest am.toml walking up from the working directory)
3. User config (~/.mamdani/am.toml)
4. System config (/etc/mamdani/am.toml)
5. Default values

Examples:
  mamdani am show                 # Effective configuration as TOML
  mamdani am show --format json
  mamdani am show --sources       # Where each value came from
  mamdani am validate`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runAmShow,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runAmValidate,
}

var (
	configFormat string
	showSources  bool
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	amShowCmd.Flags().BoolVar(&showSources, "sources", false, "Show the file or variable that set each value")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amValidateCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if showSources {
		settings := am.Introspect()
		rows := make([][]string, len(settings))
		for i, s := range settings {
			rows[i] = []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath}
		}
		return display.Table(w, []string{"Key", "Value", "Source", "From"}, rows)
	}

	switch configFormat {
	case "json":
		return display.WriteJSON(w, cfg)

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(w, "# mamdani configuration\n%s", data)

	case "toml":
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "# mamdani configuration\n%s", data)

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}

	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s configuration is valid\n", sym.AM)
	return nil
}
