package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/edikit/edikit/internal/edi"
	"github.com/edikit/edikit/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an interchange, failing when any error is found",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunValidate(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func RunValidate(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	res := edi.Parse(data)
	for _, d := range res.Errors {
		ui.DiagnosticLine(w, d)
	}
	for _, d := range res.Warnings {
		ui.DiagnosticLine(w, d)
	}

	if res.Interchange == nil {
		return fmt.Errorf("%s is not a recognizable interchange", path)
	}

	ui.SummaryLine(w, res.Interchange, len(res.Errors), len(res.Warnings))
	if len(res.Errors) > 0 {
		return fmt.Errorf("%s failed validation with %d error(s)", path, len(res.Errors))
	}
	return nil
}
