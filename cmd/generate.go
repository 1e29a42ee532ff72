package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/edikit/edikit/internal/docmap"
	"github.com/edikit/edikit/internal/edi"
	"github.com/edikit/edikit/internal/partner"
)

var (
	partnerFlag  string
	outFlag      string
	senderFlag   string
	receiverFlag string
	controlFlag  string
)

var generateCmd = &cobra.Command{
	Use:   "generate <type> <record.json>",
	Short: "Generate an interchange from a canonical record (850, 855, 856, 810, 997 or orders)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if outFlag != "" {
			f, err := os.Create(outFlag)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outFlag, err)
			}
			defer f.Close()
			out = f
		}
		return RunGenerate(out, args[0], args[1], partnerFlag, senderFlag, receiverFlag, controlFlag)
	},
}

func init() {
	generateCmd.Flags().StringVar(&partnerFlag, "partner", "", "Apply a stored partner profile")
	generateCmd.Flags().StringVar(&outFlag, "out", "", "Write the interchange to a file instead of stdout")
	generateCmd.Flags().StringVar(&senderFlag, "sender", "EDIKIT", "Interchange sender identifier")
	generateCmd.Flags().StringVar(&receiverFlag, "receiver", "PARTNER", "Interchange receiver identifier")
	generateCmd.Flags().StringVar(&controlFlag, "control", "1", "Interchange control number")
	rootCmd.AddCommand(generateCmd)
}

// functionalCodes maps document types onto their group functional
// identifier (GS01).
var functionalCodes = map[string]string{
	"850": "PO",
	"855": "PR",
	"856": "SH",
	"810": "IN",
	"997": "FA",
}

func RunGenerate(w io.Writer, docType, recordPath, partnerName, sender, receiver, control string) error {
	data, err := os.ReadFile(recordPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", recordPath, err)
	}

	txn, std, err := buildTransaction(docType, data)
	if err != nil {
		return err
	}

	spec := edi.EnvelopeSpec{
		Standard:       std,
		Sender:         sender,
		Receiver:       receiver,
		ControlNumber:  control,
		FunctionalCode: functionalCodes[docType],
	}
	if std == edi.X12 {
		spec.SenderQualifier = "ZZ"
		spec.ReceiverQualifier = "ZZ"
	}

	opts := edi.Options{}
	if partnerName != "" {
		store, err := partner.Open(storeFlag)
		if err != nil {
			return err
		}
		defer store.Close()

		cfg, err := store.Get(partnerName)
		if err != nil {
			return err
		}
		pstd, err := cfg.EDIStandard()
		if err != nil {
			return err
		}
		if pstd != std {
			return fmt.Errorf("partner %s is configured for %s, but document type %s is %s",
				partnerName, pstd, docType, std)
		}
		if cfg.Identifier != "" {
			spec.Receiver = cfg.Identifier
		}
		if cfg.Qualifier != "" {
			spec.ReceiverQualifier = cfg.Qualifier
		}
		spec.Version = cfg.Version
		spec.UseGroups = cfg.UseGroups
		if opts, err = cfg.GenerationOptions(); err != nil {
			return err
		}
	}

	ic := edi.NewInterchange(spec, txn)
	out, err := edi.Generate(ic, opts)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, out)
	return err
}

func buildTransaction(docType string, data []byte) (*edi.TransactionSet, edi.Standard, error) {
	decode := func(v any) error {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing record: %w", err)
		}
		return nil
	}

	switch docType {
	case "850":
		var po docmap.PurchaseOrder
		if err := decode(&po); err != nil {
			return nil, 0, err
		}
		return docmap.To850(&po, "0001"), edi.X12, nil
	case "855":
		var ack docmap.Acknowledgment
		if err := decode(&ack); err != nil {
			return nil, 0, err
		}
		return docmap.To855(&ack, "0001"), edi.X12, nil
	case "856":
		var sn docmap.ShipNotice
		if err := decode(&sn); err != nil {
			return nil, 0, err
		}
		return docmap.To856(&sn, "0001"), edi.X12, nil
	case "810":
		var inv docmap.Invoice
		if err := decode(&inv); err != nil {
			return nil, 0, err
		}
		return docmap.To810(&inv, "0001"), edi.X12, nil
	case "997":
		var fa docmap.FunctionalAck
		if err := decode(&fa); err != nil {
			return nil, 0, err
		}
		return docmap.To997(&fa, "0001"), edi.X12, nil
	case "orders":
		var po docmap.PurchaseOrder
		if err := decode(&po); err != nil {
			return nil, 0, err
		}
		return docmap.ToOrders(&po, "1"), edi.EDIFACT, nil
	}
	return nil, 0, fmt.Errorf("unknown document type %q (want 850, 855, 856, 810, 997 or orders)", docType)
}
