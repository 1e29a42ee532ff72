package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/edikit/edikit/internal/edi"
	"github.com/edikit/edikit/internal/partner"
	"github.com/edikit/edikit/internal/ui"
)

var recordFlag bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse an interchange and report its structure and diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunParse(cmd.OutOrStdout(), args[0], recordFlag)
	},
}

func init() {
	parseCmd.Flags().BoolVar(&recordFlag, "record", false, "Log a receipt and flag duplicate interchanges")
	rootCmd.AddCommand(parseCmd)
}

func RunParse(w io.Writer, path string, record bool) error {
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

	if record {
		if err := recordReceipt(w, res); err != nil {
			return err
		}
	}
	return nil
}

func recordReceipt(w io.Writer, res edi.Result) error {
	store, err := partner.Open(storeFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	ic := res.Interchange
	sender, receiver := interchangeIdentity(ic)
	dup, err := store.Record(partner.Receipt{
		Standard:      ic.Standard.String(),
		Sender:        sender,
		Receiver:      receiver,
		ControlNumber: ic.ControlNumber(),
		OK:            len(res.Errors) == 0,
		ErrorCount:    len(res.Errors),
	})
	if err != nil {
		return err
	}
	if dup {
		ui.DuplicateLine(w, ic.ControlNumber())
	}
	return nil
}

// interchangeIdentity pulls the sender and receiver identifiers out of the
// interchange header: ISA06/ISA08 for X12, UNB02/UNB03 for EDIFACT.
func interchangeIdentity(ic *edi.Interchange) (sender, receiver string) {
	if ic.Standard == edi.EDIFACT {
		return ic.Header.Comp(2, 1), ic.Header.Comp(3, 1)
	}
	return ic.Header.Elem(6), ic.Header.Elem(8)
}
