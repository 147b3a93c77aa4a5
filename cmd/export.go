package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"logtracker/output"
)

var (
	exportFormat string
	exportOutput string
	exportDBPath string
	exportDays   int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local time entries to CSV/Excel.",
	Long: `Export logged time entries.

Output format can be selected explicitly via --format or inferred from the
--output extension.`,
	Example: `
  # Export everything to CSV
  logtracker export --output ./entries.csv

  # Export the last month to Excel
  logtracker export --days 31 --output ./entries.xlsx

  # Force Excel format independent of extension
  logtracker export --format excel --output ./entries.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		store, err := openStore(exportDBPath, nil)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.ListEntries(exportDays)
		if err != nil {
			return err
		}

		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}
		if err := writer.Write(exportOutput, entries); err != nil {
			return err
		}

		fmt.Printf("Export completed. Rows: %d, Format: %s, File: %s\n", len(entries), format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to local SQLite database (default from config)")
	exportCmd.Flags().IntVar(&exportDays, "days", 0, "Limit to the last N days (0 = all)")

	_ = exportCmd.MarkFlagRequired("output")
}
