package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edikit/edikit/internal/partner"
	"github.com/edikit/edikit/internal/ui"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the receipt log, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunLog(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}

func RunLog(w io.Writer) error {
	store, err := partner.Open(storeFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	receipts, err := store.Receipts()
	if err != nil {
		return err
	}
	for _, r := range receipts {
		ui.ReceiptLine(w, r.ID, r.Standard, r.Sender, r.Receiver, r.ControlNumber,
			r.ReceivedAt.Format("2006-01-02 15:04:05"), r.OK)
	}
	fmt.Fprintf(w, "%d receipt(s)\n", len(receipts))
	return nil
}
