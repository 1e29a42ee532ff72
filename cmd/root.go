package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var storeFlag string

var rootCmd = &cobra.Command{
	Use:   "edikit",
	Short: "edikit — parse, validate and generate X12 and EDIFACT interchanges",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "edikit.db", "Path to the partner/receipt database")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
