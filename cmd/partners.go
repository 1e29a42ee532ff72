package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/edikit/edikit/internal/partner"
)

var addCfg partner.Config

var partnersCmd = &cobra.Command{
	Use:   "partners",
	Short: "Manage trading partner profiles",
}

var partnersAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a partner profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addCfg.Name = args[0]
		return RunPartnersAdd(cmd.OutOrStdout(), addCfg)
	},
}

var partnersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored partner profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPartnersList(cmd.OutOrStdout())
	},
}

var partnersImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Import partner profiles from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPartnersImport(cmd.OutOrStdout(), args[0])
	},
}

var partnersExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all partner profiles as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPartnersExport(cmd.OutOrStdout())
	},
}

func init() {
	flags := partnersAddCmd.Flags()
	flags.StringVar(&addCfg.Standard, "standard", "x12", "Partner standard (x12 or edifact)")
	flags.StringVar(&addCfg.Qualifier, "qualifier", "", "Receiver identifier qualifier")
	flags.StringVar(&addCfg.Identifier, "identifier", "", "Receiver identifier")
	flags.StringVar(&addCfg.Version, "version", "", "Interchange version")
	flags.BoolVar(&addCfg.UseGroups, "use-groups", false, "Wrap EDIFACT messages in UNG groups")
	flags.BoolVar(&addCfg.LineBreaks, "line-breaks", false, "Emit a newline after every segment")

	partnersCmd.AddCommand(partnersAddCmd)
	partnersCmd.AddCommand(partnersListCmd)
	partnersCmd.AddCommand(partnersImportCmd)
	partnersCmd.AddCommand(partnersExportCmd)
	rootCmd.AddCommand(partnersCmd)
}

func RunPartnersAdd(w io.Writer, cfg partner.Config) error {
	store, err := partner.Open(storeFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Put(cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "stored partner %s\n", cfg.Name)
	return nil
}

func RunPartnersList(w io.Writer) error {
	store, err := partner.Open(storeFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	partners, err := store.List()
	if err != nil {
		return err
	}
	for _, p := range partners {
		fmt.Fprintf(w, "%s  %s %s %s\n", p.Name, p.Standard, p.Qualifier, p.Identifier)
	}
	fmt.Fprintf(w, "%d partner(s)\n", len(partners))
	return nil
}

func RunPartnersImport(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	store, err := partner.Open(storeFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Import(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "imported %d partner(s)\n", n)
	return nil
}

func RunPartnersExport(w io.Writer) error {
	store, err := partner.Open(storeFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Export(w)
}
