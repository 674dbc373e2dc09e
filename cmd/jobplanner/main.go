// Command jobplanner filters the job catalog, manages the saved-jobs file
// and exports records as JSON, CSV or plain text.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"jobplanner/internal/config"
	"jobplanner/internal/formatter"
	"jobplanner/internal/logger"
	"jobplanner/internal/models"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "jobplanner",
	Short: "Browse, filter and export job postings",
	Long: "jobplanner narrows a job catalog by country, category, company, salary, role type and " +
		"posting date, keeps a list of saved jobs and exports records as JSON, CSV or plain text.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	catalogPath string
	savedPath   string
	logLevel    string

	log = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to the job catalog (default from CATALOG_PATH or config)")
	rootCmd.PersistentFlags().StringVar(&savedPath, "saved-file", "", "Path to the saved jobs file (default from SAVED_JOBS_PATH or config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
}

// setup fills unset paths from the config layers and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !cmd.Flags().Changed("catalog") {
		catalogPath = cfg.CatalogPath
	}
	if !cmd.Flags().Changed("saved-file") {
		savedPath = cfg.SavedJobsPath
	}

	log, err = logger.NewDevelopment(logLevel)
	if err != nil {
		return err
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// outputFormat resolves the --format flag. When the flag was not given and
// the output file has an extension, the extension decides.
func outputFormat(cmd *cobra.Command, name, out string) (formatter.Format, error) {
	if !cmd.Flags().Changed("format") && out != "" {
		if ext := filepath.Ext(out); ext != "" {
			if f, err := formatter.ParseFormat(ext); err == nil {
				return f, nil
			}
		}
	}
	return formatter.ParseFormat(name)
}

// writeRecords renders records to the file at out, or to the command's
// output when out is empty or "-".
func writeRecords(cmd *cobra.Command, records []models.JobRecord, format formatter.Format, out string) (err error) {
	var w io.Writer = cmd.OutOrStdout()

	if out != "" && out != "-" {
		file, cerr := os.Create(out)
		if cerr != nil {
			return fmt.Errorf("create output file: %w", cerr)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output file: %w", cerr)
			}
		}()
		w = file
	}

	if err := formatter.Write(w, records, format); err != nil {
		return err
	}

	log.Info("records written",
		zap.String("format", format.String()),
		zap.Int("count", len(records)),
		zap.String("out", out),
	)
	return nil
}
