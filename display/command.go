// Package display renders command results as JSON or as terminal tables.
package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/mamdani/errors"
)

// ShouldOutputJSON reports whether a command should print JSON:
// an explicit --json on the command wins, then the root's persistent --json.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("json")
		return v
	}
	if f := cmd.Root().PersistentFlags().Lookup("json"); f != nil {
		v, _ := cmd.Root().PersistentFlags().GetBool("json")
		return v
	}
	return false
}

// Table writes a header row plus rows as an aligned pterm table
func Table(w io.Writer, header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// Degree formats a membership degree for tables
func Degree(d float64) string {
	return strconv.FormatFloat(d, 'f', 4, 64)
}

// Bar renders a degree in [0,1] as a fixed-width bar
func Bar(d float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(d*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	out := make([]rune, width)
	for i := range out {
		if i < filled {
			out[i] = '█'
		} else {
			out[i] = '·'
		}
	}
	return string(out)
}
