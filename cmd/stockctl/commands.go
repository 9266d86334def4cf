package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"stockflow-api/internal/model"
	"stockflow-api/internal/service"
	"stockflow-api/internal/sheet"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Inspect and convert StockFlow backups and spreadsheets",
		SilenceUsage:  true,
	}
	root.AddCommand(newInspectCommand())
	root.AddCommand(newConvertCommand())
	root.AddCommand(newExportCommand())
	return root
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <backup.json>",
		Short: "Validate a backup file and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), snapshot)
		},
	}
}

func newConvertCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "convert <products.csv>",
		Short: "Turn a product spreadsheet export into a restorable backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			now := time.Now()
			products, err := sheet.ParseProducts(string(data), uuid.NewString, now)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				return service.ErrEmptyImport
			}
			snapshot := model.Snapshot{
				Products:     products,
				Transactions: []model.Transaction{},
				ExportedAt:   now,
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(snapshot)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Where to write the backup JSON (- for stdout)")
	return cmd
}

func newExportCommand() *cobra.Command {
	var logs bool
	cmd := &cobra.Command{
		Use:   "export <backup.json>",
		Short: "Write the products (or audit log) of a backup as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			if logs {
				return sheet.WriteLogs(cmd.OutOrStdout(), snapshot.Logs)
			}
			return sheet.WriteProducts(cmd.OutOrStdout(), snapshot.Products)
		},
	}
	cmd.Flags().BoolVar(&logs, "logs", false, "Export the audit log instead of products")
	return cmd
}

func readSnapshot(path string) (*model.Snapshot, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	snapshot, err := service.ParseSnapshot(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snapshot, nil
}

func printSummary(w io.Writer, snapshot *model.Snapshot) error {
	units := 0
	value := decimal.Zero
	var low []model.Product
	for _, p := range snapshot.Products {
		units += p.Quantity
		value = value.Add(p.Value())
		if p.IsLowStock() {
			low = append(low, p)
		}
	}

	fmt.Fprintf(w, "Products:     %d\n", len(snapshot.Products))
	fmt.Fprintf(w, "Transactions: %d\n", len(snapshot.Transactions))
	fmt.Fprintf(w, "Log entries:  %d\n", len(snapshot.Logs))
	fmt.Fprintf(w, "Units:        %d\n", units)
	fmt.Fprintf(w, "Value:        %s\n", value.StringFixed(2))
	if !snapshot.ExportedAt.IsZero() {
		fmt.Fprintf(w, "Exported at:  %s\n", snapshot.ExportedAt.Format(time.RFC3339))
	}
	for _, p := range low {
		fmt.Fprintf(w, "LOW  %-30s %d/%d\n", p.Name, p.Quantity, p.MinLevel)
	}
	return nil
}
