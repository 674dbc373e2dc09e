package main

import (
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved jobs",
	Long:  "Writes every saved job as JSON, CSV or plain text. With --out the format follows the file extension unless --format is given.",
	Example: `  jobplanner export --format csv --out saved.csv
  jobplanner export -o saved.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json, csv or txt")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(cmd, exportFormat, exportOut)
	if err != nil {
		return err
	}

	store, err := loadSaved()
	if err != nil {
		return err
	}

	return writeRecords(cmd, store.Jobs(), format, exportOut)
}
