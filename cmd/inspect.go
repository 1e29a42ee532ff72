package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/edikit/edikit/internal/edi"
	"github.com/edikit/edikit/internal/ui"
)

var dumpFlag bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the envelope tree of an interchange",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInspect(cmd.OutOrStdout(), args[0], dumpFlag)
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&dumpFlag, "dump", false, "Dump the full parse tree including positions")
	rootCmd.AddCommand(inspectCmd)
}

func RunInspect(w io.Writer, path string, dump bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	res := edi.Parse(data)
	if res.Interchange == nil {
		for _, d := range res.Errors {
			ui.DiagnosticLine(w, d)
		}
		return fmt.Errorf("%s is not a recognizable interchange", path)
	}

	if dump {
		fmt.Fprint(w, spew.Sdump(res.Interchange))
		return nil
	}

	ic := res.Interchange
	ui.SegmentLine(w, "", ic.Header)
	for _, grp := range ic.Groups {
		ui.SegmentLine(w, "  ", grp.Header)
		writeTransactions(w, "    ", grp.Transactions)
		if grp.Trailer != nil {
			ui.SegmentLine(w, "  ", grp.Trailer)
		}
	}
	writeTransactions(w, "  ", ic.Transactions)
	if ic.Trailer != nil {
		ui.SegmentLine(w, "", ic.Trailer)
	}
	return nil
}

func writeTransactions(w io.Writer, indent string, txns []*edi.TransactionSet) {
	for _, txn := range txns {
		ui.SegmentLine(w, indent, txn.Header)
		for _, seg := range txn.Segments {
			ui.SegmentLine(w, indent+"  ", seg)
		}
		if txn.Trailer != nil {
			ui.SegmentLine(w, indent, txn.Trailer)
		}
	}
}
