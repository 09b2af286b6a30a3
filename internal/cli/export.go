package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"billsplit/internal/domain"
	"billsplit/internal/export"
	"billsplit/internal/extractor"
	"billsplit/internal/port"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <bill.pdf>",
		Short: "Parse a bill PDF and write the allocation report to a CSV or XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			billParser, err := newBillParser(&cfg.Parser)
			if err != nil {
				return err
			}
			ownerTable, err := os.ReadFile(cfg.Share.OwnersFile)
			if err != nil {
				return fmt.Errorf("reading owners file: %w", err)
			}

			text, err := extractor.New().Extract(args[0])
			if err != nil {
				return err
			}
			out, err := billParser.Parse(cmd.Context(), port.ParseInput{
				Text:       text,
				OwnerTable: string(ownerTable),
			})
			if err != nil {
				return err
			}

			if err := writeReport(output, out.Bill, cfg.Share.UserMappings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "allocation.csv", "report file to write (.csv or .xlsx)")
	return cmd
}

func writeReport(path string, bill *domain.Bill, mapping domain.OwnerMapping) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return export.WriteXLSX(path, bill, mapping)
	case ".csv":
		return writeCSV(path, bill, mapping)
	default:
		return fmt.Errorf("unsupported report format: %s (want .csv or .xlsx)", path)
	}
}

func writeCSV(path string, bill *domain.Bill, mapping domain.OwnerMapping) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(export.BOM); err != nil {
		return err
	}
	w := export.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteBill(bill, mapping); err != nil {
		return err
	}
	return w.Flush()
}
